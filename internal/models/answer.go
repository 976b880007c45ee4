package models

import (
	"time"
)

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Aid        string    `gorm:"uniqueIndex;size:8;not null" json:"aid"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"question"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsAccepted bool      `gorm:"default:false" json:"is_accepted"` // 提问者采纳
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Answer) RefKind() TargetKind { return TargetAnswer }
func (a *Answer) RefID() uint         { return a.ID }
func (a *Answer) RefAuthorID() uint   { return a.UserID }
