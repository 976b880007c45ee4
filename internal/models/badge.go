package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Badge 成就徽章，由管理员授予用户
type Badge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;unique" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Icon        string    `json:"icon"` // 可选图标地址
	Slug        string    `gorm:"size:40;not null;uniqueIndex" json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeSave 与 Tag 同策略：slug 始终由名称生成
func (b *Badge) BeforeSave(tx *gorm.DB) error {
	b.Slug = slug.Make(b.Name)
	return nil
}
