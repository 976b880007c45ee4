package handlers

import (
	"net/http"
	"wenda/internal/db"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile 用户公开主页
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	var profile models.Profile
	db.DB.Preload("Badges").Where("user_id = ?", user.ID).First(&profile)

	var questions []models.Question
	db.DB.Preload("Tags").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&questions)
	fillAnswerCounts(questions)

	var answers []models.Answer
	db.DB.Preload("Question").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&answers)

	var questionCount, answerCount int64
	db.DB.Model(&models.Question{}).Where("user_id = ?", user.ID).Count(&questionCount)
	db.DB.Model(&models.Answer{}).Where("user_id = ?", user.ID).Count(&answerCount)

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":         user.Username,
		"ProfileUser":   user,
		"Profile":       profile,
		"Questions":     questions,
		"Answers":       answers,
		"QuestionCount": questionCount,
		"AnswerCount":   answerCount,
		"JoinedDays":    utils.GetDaysSinceJoined(user.CreatedAt),
	})
}

func (h *UserHandler) ShowSettings(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var profile models.Profile
	db.DB.Where("user_id = ?", user.ID).First(&profile)

	Render(c, http.StatusOK, "user/settings.html", gin.H{
		"Title":   "设置",
		"Profile": profile,
		"Emojis":  utils.GetCommonEmojis(),
	})
}

// UpdateSettings 用户名和资料在一个事务里一起改
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var form SettingsForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		var profile models.Profile
		db.DB.Where("user_id = ?", user.ID).First(&profile)
		Render(c, http.StatusBadRequest, "user/settings.html", gin.H{
			"Error":   "资料不符合要求",
			"Profile": profile,
			"Emojis":  utils.GetCommonEmojis(),
		})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("username", form.Username).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).Where("user_id = ?", user.ID).
			Updates(map[string]interface{}{
				"bio":    form.Bio,
				"avatar": form.Avatar,
			}).Error
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	c.Redirect(http.StatusFound, "/settings")
}

// ChangePassword 登录状态下修改密码，需验证旧密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")

	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		var profile models.Profile
		db.DB.Where("user_id = ?", user.ID).First(&profile)
		Render(c, http.StatusBadRequest, "user/settings.html", gin.H{
			"Error":   "原密码错误",
			"Profile": profile,
			"Emojis":  utils.GetCommonEmojis(),
		})
		return
	}

	if len(newPassword) < 6 {
		var profile models.Profile
		db.DB.Where("user_id = ?", user.ID).First(&profile)
		Render(c, http.StatusBadRequest, "user/settings.html", gin.H{
			"Error":   "新密码至少6位",
			"Profile": profile,
			"Emojis":  utils.GetCommonEmojis(),
		})
		return
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	db.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("password", hash)

	c.Redirect(http.StatusFound, "/settings")
}
