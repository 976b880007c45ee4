package handlers

import (
	"fmt"
	"net/http"
	"os"
	"wenda/internal/db"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnswerHandler struct {
	mailService *services.MailService
}

func NewAnswerHandler() *AnswerHandler {
	return &AnswerHandler{
		mailService: services.NewMailService(),
	}
}

// Create 在问题下发布回答
func (h *AnswerHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	qid := c.Param("qid")

	if !ensureCanPost(c, user) {
		return
	}

	var question models.Question
	if err := db.DB.Preload("User").Where("qid = ?", qid).First(&question).Error; err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form AnswerForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		c.Redirect(http.StatusFound, "/q/"+qid)
		return
	}

	answer := models.Answer{
		Aid:        utils.RandStringBytesMaskImpr(8),
		QuestionID: question.ID,
		UserID:     user.ID,
		Content:    form.Content,
	}

	if err := db.DB.Create(&answer).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "发布失败")
		return
	}

	// 通知提问者（不通知自己）
	if question.UserID != user.ID {
		go func() {
			services.Notify(question.UserID, &user.ID, models.NotificationTypeAnswer,
				fmt.Sprintf("%s 回答了你的问题《%s》", user.Username, question.Title),
				fmt.Sprintf("/q/%s#answer-%d", question.Qid, answer.ID))

			questionLink := fmt.Sprintf("%s/q/%s#answer-%d", os.Getenv("SITE_URL"), question.Qid, answer.ID)
			h.mailService.SendAnswerNotification(
				question.User.Email,
				user.Username,
				question.Title,
				utils.Excerpt(form.Content, 150),
				questionLink,
			)
		}()
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/q/%s#answer-%d", qid, answer.ID))
}

func (h *AnswerHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	aid := c.Param("aid")

	var answer models.Answer
	if err := db.DB.Preload("Question").Where("aid = ?", aid).First(&answer).Error; err != nil {
		RenderError(c, http.StatusNotFound, "回答不存在")
		return
	}

	if err := services.AuthorizeMutation(&answer, user); err != nil {
		RenderError(c, http.StatusForbidden, "无权编辑此回答")
		return
	}

	Render(c, http.StatusOK, "answer/edit.html", gin.H{
		"Title":  "编辑回答",
		"Answer": answer,
	})
}

func (h *AnswerHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	aid := c.Param("aid")

	var answer models.Answer
	if err := db.DB.Preload("Question").Where("aid = ?", aid).First(&answer).Error; err != nil {
		RenderError(c, http.StatusNotFound, "回答不存在")
		return
	}

	if err := services.AuthorizeMutation(&answer, user); err != nil {
		RenderError(c, http.StatusForbidden, "无权编辑此回答")
		return
	}
	// 禁言中同样不能借编辑改旧回答
	if !ensureCanPost(c, user) {
		return
	}

	var form AnswerForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		Render(c, http.StatusBadRequest, "answer/edit.html", gin.H{
			"Error":  "内容不符合要求",
			"Answer": answer,
		})
		return
	}

	answer.Content = form.Content
	if err := db.DB.Save(&answer).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	c.Redirect(http.StatusFound, "/q/"+answer.Question.Qid)
}

// Delete 删除回答及其评论和投票
func (h *AnswerHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	aid := c.Param("aid")

	var answer models.Answer
	if err := db.DB.Preload("Question").Where("aid = ?", aid).First(&answer).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := services.AuthorizeMutation(&answer, user); err != nil {
		c.Status(http.StatusForbidden)
		return
	}

	if err := services.CascadeDeleteAnswer(answer.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	HtmxRedirect(c, "/q/"+answer.Question.Qid)
}

// Accept 提问者采纳回答，同一问题最多一个采纳
func (h *AnswerHandler) Accept(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	aid := c.Param("aid")

	var answer models.Answer
	if err := db.DB.Preload("Question").Where("aid = ?", aid).First(&answer).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	// 采纳权归提问者
	if err := services.AuthorizeMutation(&answer.Question, user); err != nil {
		c.Status(http.StatusForbidden)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ?", answer.QuestionID).
			Update("is_accepted", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Answer{}).
			Where("id = ?", answer.ID).
			Update("is_accepted", true).Error
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	// 通知回答者被采纳
	if answer.UserID != user.ID {
		services.Notify(answer.UserID, &user.ID, models.NotificationTypeSystem,
			fmt.Sprintf("你在《%s》下的回答被采纳了", answer.Question.Title),
			fmt.Sprintf("/q/%s#answer-%d", answer.Question.Qid, answer.ID))
	}

	HtmxRedirect(c, "/q/"+answer.Question.Qid)
}
