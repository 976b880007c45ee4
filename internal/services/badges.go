package services

import (
	"errors"
	"fmt"
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

var ErrBadgeNotFound = errors.New("徽章不存在")

// AwardBadge 给用户授予徽章并发通知，重复授予直接跳过
func AwardBadge(userID, badgeID uint, actorID *uint) error {
	var badge models.Badge
	if err := db.DB.First(&badge, badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadgeNotFound
		}
		return err
	}

	var profile models.Profile
	if err := db.DB.Preload("Badges").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return err
	}
	for _, b := range profile.Badges {
		if b.ID == badge.ID {
			return nil
		}
	}

	if err := db.DB.Model(&profile).Association("Badges").Append(&badge); err != nil {
		return err
	}
	Notify(userID, actorID, models.NotificationTypeBadge,
		fmt.Sprintf("恭喜！你获得了徽章「%s」", badge.Name),
		"/badges/"+badge.Slug)
	return nil
}

// RevokeBadge 收回徽章，不存在的关联静默成功
func RevokeBadge(userID, badgeID uint) error {
	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return err
	}
	return db.DB.Model(&profile).Association("Badges").Delete(&models.Badge{ID: badgeID})
}
