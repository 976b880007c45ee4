package services

import (
	"testing"
	"time"
	"wenda/internal/models"
)

func TestNotifyAndUnreadCount(t *testing.T) {
	d := newTestDB(t)
	alice := mustUser(t, d, "alice")
	bob := mustUser(t, d, "bob")

	Notify(alice.ID, &bob.ID, models.NotificationTypeComment, "bob 评论了你的内容", "/q/abc")
	Notify(alice.ID, nil, models.NotificationTypeSystem, "系统通知", "")

	if got := UnreadCount(alice.ID); got != 2 {
		t.Errorf("UnreadCount = %d, want 2", got)
	}
	if got := UnreadCount(bob.ID); got != 0 {
		t.Errorf("UnreadCount for bob = %d, want 0", got)
	}

	// 已读后不再计入
	d.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Update("is_read", true)
	if got := UnreadCount(alice.ID); got != 0 {
		t.Errorf("UnreadCount after read = %d, want 0", got)
	}
}

func TestCleanupNotifications(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "carol")

	Notify(user.ID, nil, models.NotificationTypeSystem, "旧的已读", "")
	Notify(user.ID, nil, models.NotificationTypeSystem, "旧的未读", "")
	Notify(user.ID, nil, models.NotificationTypeSystem, "新的已读", "")

	old := time.Now().Add(-60 * 24 * time.Hour)
	d.Model(&models.Notification{}).Where("message IN ?", []string{"旧的已读", "旧的未读"}).
		UpdateColumn("created_at", old)
	d.Model(&models.Notification{}).Where("message IN ?", []string{"旧的已读", "新的已读"}).
		Update("is_read", true)

	CleanupNotifications(30 * 24 * time.Hour)

	var messages []string
	d.Model(&models.Notification{}).Order("id ASC").Pluck("message", &messages)
	if len(messages) != 2 {
		t.Fatalf("remaining = %v, want 2 entries", messages)
	}
	// 只有「又旧又已读」的被清理
	for _, m := range messages {
		if m == "旧的已读" {
			t.Error("old read notification should be purged")
		}
	}
}
