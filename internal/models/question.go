package models

import (
	"time"
)

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Qid       string    `gorm:"uniqueIndex;size:8;not null" json:"qid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Tags      []Tag     `gorm:"many2many:question_tags" json:"tags"`
	Media     string    `json:"media"` // 可选配图地址
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	AnswerCount int `gorm:"-" json:"answer_count"`
}

func (q *Question) RefKind() TargetKind { return TargetQuestion }
func (q *Question) RefID() uint         { return q.ID }
func (q *Question) RefAuthorID() uint   { return q.UserID }
