package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Vote 投票。每个用户对同一目标只能投一次，由 (user_id, target_kind, target_id)
// 唯一索引兜底，并发重复提交时以数据库约束为准
type Vote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_vote_once" json:"user_id"`
	TargetKind TargetKind `gorm:"size:16;not null;uniqueIndex:idx_vote_once" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_vote_once" json:"target_id"`
	Value      int        `gorm:"not null" json:"value"` // 1 或 -1
	CreatedAt  time.Time  `json:"created_at"`
}

func (v *Vote) BeforeSave(tx *gorm.DB) error {
	if !IsVoteTarget(v.TargetKind) {
		return fmt.Errorf("投票只能针对 %v 类型，收到 %q", VoteTargetKinds, v.TargetKind)
	}
	if v.Value != 1 && v.Value != -1 {
		return fmt.Errorf("投票值必须为 1 或 -1，收到 %d", v.Value)
	}
	return nil
}
