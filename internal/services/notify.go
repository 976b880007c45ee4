package services

import (
	"log"
	"time"
	"wenda/internal/db"
	"wenda/internal/models"

	"github.com/samber/lo"
)

// Notify 给用户追加一条通知。通知只增不改，已读标记除外
func Notify(userID uint, actorID *uint, typ models.NotificationType, message, url string) {
	notification := models.Notification{
		UserID:  userID,
		ActorID: actorID,
		Type:    typ,
		Message: message,
		URL:     url,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
	}
}

// NotifyStaff 给所有管理面板用户发通知（如新内容待处理）
func NotifyStaff(actorID *uint, message, url string) {
	var staff []models.User
	if err := db.DB.Where("is_staff = ?", true).Find(&staff).Error; err != nil {
		return
	}
	staffIDs := lo.Map(staff, func(u models.User, _ int) uint { return u.ID })
	for _, id := range staffIDs {
		Notify(id, actorID, models.NotificationTypeSystem, message, url)
	}
}

// UnreadCount 未读通知数，导航栏角标用
func UnreadCount(userID uint) int64 {
	var count int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	return count
}

// CleanupNotifications 清理 retention 之前的已读通知，由定时任务调用
func CleanupNotifications(retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	result := db.DB.Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("Failed to cleanup notifications: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d read notifications", result.RowsAffected)
	}
}
