package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"wenda/internal/db"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// redirectToRoot 回到评论所在问题的详情页，找不到根问题就回首页
func redirectToRoot(c *gin.Context, kind models.TargetKind, id uint) {
	if question, ok := services.RootQuestion(kind, id); ok {
		c.Redirect(http.StatusFound, "/q/"+question.Qid)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Create 在问题、回答或一级评论下发表评论
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if !ensureCanPost(c, user) {
		return
	}

	var form CommentForm
	if err := bindAndValidate(&form, c.ShouldBind); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	kind := models.TargetKind(form.TargetKind)

	// 目标必须存在且允许被评论，评论楼中楼只允许一层
	target, err := services.CheckCommentTarget(kind, form.TargetID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNestingTooDeep):
			RenderError(c, http.StatusBadRequest, "该评论不能再被回复")
		case errors.Is(err, services.ErrTargetMissing):
			RenderError(c, http.StatusNotFound, "评论的目标不存在")
		default:
			RenderError(c, http.StatusBadRequest, "不支持的评论目标")
		}
		return
	}

	comment := models.Comment{
		Cid:        utils.RandStringBytesMaskImpr(8),
		UserID:     user.ID,
		TargetKind: kind,
		TargetID:   form.TargetID,
		Content:    form.Content,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "评论失败")
		return
	}

	// 通知被评论内容的作者（不通知自己）
	if target.RefAuthorID() != user.ID {
		go func() {
			url := "/"
			if question, ok := services.RootQuestion(kind, form.TargetID); ok {
				url = fmt.Sprintf("/q/%s#comment-%d", question.Qid, comment.ID)
			}
			services.Notify(target.RefAuthorID(), &user.ID, models.NotificationTypeComment,
				fmt.Sprintf("%s 评论了你的内容：%s", user.Username, utils.Excerpt(form.Content, 50)),
				url)
		}()
	}

	redirectToRoot(c, kind, form.TargetID)
}

func (h *CommentHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	cid := c.Param("cid")

	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		RenderError(c, http.StatusNotFound, "评论不存在")
		return
	}

	if err := services.AuthorizeMutation(&comment, user); err != nil {
		RenderError(c, http.StatusForbidden, "无权编辑此评论")
		return
	}
	// 禁言中同样不能借编辑改旧评论
	if !ensureCanPost(c, user) {
		return
	}

	content := c.PostForm("content")
	if content == "" {
		redirectToRoot(c, models.TargetComment, comment.ID)
		return
	}

	comment.Content = content
	if err := db.DB.Save(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	redirectToRoot(c, models.TargetComment, comment.ID)
}

// Delete 删除评论及其子评论和投票
func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	cid := c.Param("cid")

	var comment models.Comment
	if err := db.DB.Where("cid = ?", cid).First(&comment).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := services.AuthorizeMutation(&comment, user); err != nil {
		c.Status(http.StatusForbidden)
		return
	}

	// 删除前先记住根问题，删完还要跳回去
	question, hasRoot := services.RootQuestion(comment.TargetKind, comment.TargetID)

	if err := services.CascadeDeleteComment(comment.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	if hasRoot {
		HtmxRedirect(c, "/q/"+question.Qid)
		return
	}
	HtmxRedirect(c, "/")
}
