package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/services"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// countVotes 统计某个目标指定方向的票数
func countVotes(kind models.TargetKind, id uint, value int) int64 {
	var count int64
	db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ? AND value = ?", kind, id, value).
		Count(&count)
	return count
}

// vote 投票通用逻辑，value 为 1 或 -1
func (h *VoteHandler) vote(c *gin.Context, value int) {
	user := currentUser(c)
	if user == nil {
		c.Header("HX-Redirect", "/login")
		c.Status(http.StatusOK)
		return
	}

	kind := models.TargetKind(c.Param("kind"))
	id := utils.StringToUint(c.Param("id"))

	if !models.IsVoteTarget(kind) {
		c.Status(http.StatusBadRequest)
		return
	}

	// 目标必须存在
	target, err := services.ResolveTarget(kind, id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	newVote := models.Vote{
		UserID:     user.ID,
		TargetKind: kind,
		TargetID:   id,
		Value:      value,
	}

	if err := db.DB.Create(&newVote).Error; err != nil {
		// 唯一索引兜底：同一用户对同一目标只能投一票。
		// 票数照常返回，前端靠 HX-Trigger 事件提示"已投过"
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.Header("HX-Trigger", `{"voteRejected": "你已经投过这一票了"}`)
			c.String(http.StatusOK, fmt.Sprintf("%d", countVotes(kind, id, value)))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	// 赞的时候通知作者（不通知自己）
	if value == 1 && target.RefAuthorID() != user.ID {
		go func() {
			url := "/"
			if question, ok := services.RootQuestion(kind, id); ok {
				url = "/q/" + question.Qid
			}
			services.Notify(target.RefAuthorID(), &user.ID, models.NotificationTypeSystem,
				fmt.Sprintf("%s 赞了你的内容", user.Username), url)
		}()
	}

	c.String(http.StatusOK, fmt.Sprintf("%d", countVotes(kind, id, value)))
}

// Upvote 点赞
func (h *VoteHandler) Upvote(c *gin.Context) {
	h.vote(c, 1)
}

// Downvote 点踩
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.vote(c, -1)
}

// Unvote 撤销自己的投票
func (h *VoteHandler) Unvote(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Header("HX-Redirect", "/login")
		c.Status(http.StatusOK)
		return
	}

	kind := models.TargetKind(c.Param("kind"))
	id := utils.StringToUint(c.Param("id"))

	if !models.IsVoteTarget(kind) {
		c.Status(http.StatusBadRequest)
		return
	}

	db.DB.Where("user_id = ? AND target_kind = ? AND target_id = ?", user.ID, kind, id).
		Delete(&models.Vote{})

	c.String(http.StatusOK, fmt.Sprintf("%d", countVotes(kind, id, 1)))
}
