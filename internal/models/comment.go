package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Comment 评论。通过 (TargetKind, TargetID) 引用问题、回答或另一条评论
type Comment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Cid        string     `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	TargetKind TargetKind `gorm:"size:16;not null;index:idx_comment_target" json:"target_kind"`
	TargetID   uint       `gorm:"not null;index:idx_comment_target" json:"target_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Media      string     `json:"media"` // 可选配图地址
	CreatedAt  time.Time  `json:"created_at"`
}

// BeforeSave 入库前校验引用类型在允许范围内（与表单校验双保险）
func (c *Comment) BeforeSave(tx *gorm.DB) error {
	if !IsCommentTarget(c.TargetKind) {
		return fmt.Errorf("评论只能引用 %v 类型，收到 %q", CommentTargetKinds, c.TargetKind)
	}
	return nil
}

func (c *Comment) RefKind() TargetKind { return TargetComment }
func (c *Comment) RefID() uint         { return c.ID }
func (c *Comment) RefAuthorID() uint   { return c.UserID }
