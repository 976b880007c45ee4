package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeAnswer  NotificationType = "answer"  // 问题有了新回答
	NotificationTypeComment NotificationType = "comment" // 内容有了新评论
	NotificationTypeBadge   NotificationType = "badge"   // 获得徽章
	NotificationTypeSystem  NotificationType = "system"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // Sender
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"size:255;not null" json:"message"`
	URL       string           `gorm:"size:255" json:"url"` // 可选跳转链接
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
