package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:30;not null;unique" json:"name"`
	Slug        string    `gorm:"size:40;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeSave 每次保存都按名称重新生成 slug，改名后链接随之更新
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Slug = slug.Make(t.Name)
	return nil
}
