package handlers

import (
	"net/http"
	"time"
	"wenda/internal/db"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Dashboard 管理面板首页
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var userCount, questionCount, answerCount, commentCount int64
	db.DB.Model(&models.User{}).Count(&userCount)
	db.DB.Model(&models.Question{}).Count(&questionCount)
	db.DB.Model(&models.Answer{}).Count(&answerCount)
	db.DB.Model(&models.Comment{}).Count(&commentCount)

	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":         "管理面板",
		"UserCount":     userCount,
		"QuestionCount": questionCount,
		"AnswerCount":   answerCount,
		"CommentCount":  commentCount,
	})
}

// ListUsers 用户管理列表，附带组信息
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	db.DB.Preload("Groups").Order("id ASC").Limit(100).Find(&users)

	Render(c, http.StatusOK, "admin/users.html", gin.H{
		"Title": "用户管理",
		"Users": users,
	})
}

// AddToGroup 把用户加进权限组，组关系变动后标志位自动对账
func (h *AdminHandler) AddToGroup(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	groupName := c.PostForm("group")

	if err := services.AddUserToGroup(userID, groupName); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// RemoveFromGroup 把用户移出权限组
func (h *AdminHandler) RemoveFromGroup(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	groupName := c.PostForm("group")

	if err := services.RemoveUserFromGroup(userID, groupName); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// PunishUser 惩罚用户（禁言、封禁）
func (h *AdminHandler) PunishUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	status := utils.StringToInt(c.PostForm("status")) // 0: 正常, 1: 禁言, 2: 封禁
	days := utils.StringToInt(c.PostForm("days"))

	updates := map[string]interface{}{
		"status": status,
	}

	if status != 0 && days > 0 {
		expires := time.Now().AddDate(0, 0, days)
		updates["punish_expires"] = &expires
	} else {
		updates["punish_expires"] = nil
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// DeleteQuestion 管理员删除问题并通知作者
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	admin := c.MustGet(middleware.CheckUserKey).(*models.User)
	qid := c.Param("qid")

	var question models.Question
	if err := db.DB.Where("qid = ?", qid).First(&question).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if question.UserID != admin.ID {
		services.Notify(question.UserID, nil, models.NotificationTypeSystem,
			"很抱歉，您的问题《"+question.Title+"》因违规已被管理员删除。如有疑问请联系管理。", "")
	}

	if err := services.CascadeDeleteQuestion(question.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	utils.GetCache().Delete("question:newest:page:1")

	c.Header("HX-Redirect", "/")
	c.Status(http.StatusOK)
}

// ListTags 标签管理
func (h *AdminHandler) ListTags(c *gin.Context) {
	var tags []models.Tag
	db.DB.Order("id ASC").Find(&tags)

	Render(c, http.StatusOK, "admin/tags.html", gin.H{
		"Title": "标签管理",
		"Tags":  tags,
	})
}

func (h *AdminHandler) CreateTag(c *gin.Context) {
	var form TagForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	tag := models.Tag{
		Name:        form.Name,
		Description: form.Description,
	}
	if err := db.DB.Create(&tag).Error; err != nil {
		c.Status(http.StatusConflict)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

func (h *AdminHandler) UpdateTag(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var tag models.Tag
	if err := db.DB.First(&tag, id).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var form TagForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	tag.Name = form.Name
	tag.Description = form.Description
	if err := db.DB.Save(&tag).Error; err != nil {
		c.Status(http.StatusConflict)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

func (h *AdminHandler) DeleteTag(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var tag models.Tag
	if err := db.DB.First(&tag, id).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	// 先清空与问题的关联，再删标签本身
	db.DB.Exec("DELETE FROM question_tags WHERE tag_id = ?", tag.ID)
	db.DB.Delete(&tag)

	c.Status(http.StatusOK)
}

// ListBadges 徽章管理
func (h *AdminHandler) ListBadges(c *gin.Context) {
	var badges []models.Badge
	db.DB.Order("id ASC").Find(&badges)

	Render(c, http.StatusOK, "admin/badges.html", gin.H{
		"Title":  "徽章管理",
		"Badges": badges,
	})
}

func (h *AdminHandler) CreateBadge(c *gin.Context) {
	var form BadgeForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	badge := models.Badge{
		Name:        form.Name,
		Description: form.Description,
		Icon:        form.Icon,
	}
	if err := db.DB.Create(&badge).Error; err != nil {
		c.Status(http.StatusConflict)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

func (h *AdminHandler) DeleteBadge(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var badge models.Badge
	if err := db.DB.First(&badge, id).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	db.DB.Exec("DELETE FROM profile_badges WHERE badge_id = ?", badge.ID)
	db.DB.Delete(&badge)

	c.Status(http.StatusOK)
}

// AwardBadge 给用户颁发徽章
func (h *AdminHandler) AwardBadge(c *gin.Context) {
	admin := c.MustGet(middleware.CheckUserKey).(*models.User)
	userID := utils.StringToUint(c.PostForm("user_id"))
	badgeID := utils.StringToUint(c.PostForm("badge_id"))

	if err := services.AwardBadge(userID, badgeID, &admin.ID); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}

// RevokeBadge 收回用户徽章
func (h *AdminHandler) RevokeBadge(c *gin.Context) {
	userID := utils.StringToUint(c.PostForm("user_id"))
	badgeID := utils.StringToUint(c.PostForm("badge_id"))

	if err := services.RevokeBadge(userID, badgeID); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Header("HX-Refresh", "true")
	c.Status(http.StatusOK)
}
