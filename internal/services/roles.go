package services

import (
	"errors"
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

// ErrGroupNotFound 指定的权限组不存在
var ErrGroupNotFound = errors.New("权限组不存在")

// SyncUserGroups 组关系变化后的对账：
//   - 同时在 Super Admins 和 Staff Moderators 时，静默移出 Staff Moderators
//     （Super Admins 优先）；
//   - is_superuser/is_staff 按组关系重算，仅在与库中值不同时写入
//     （models.SyncGroupFlags 内部的幂等保护，防止钩子回环）。
//
// 所有组成员变更都必须经由 AddUserToGroup/RemoveUserFromGroup 走到这里
func SyncUserGroups(userID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return syncUserGroupsTx(tx, userID)
	})
}

func syncUserGroupsTx(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.Preload("Groups").First(&user, userID).Error; err != nil {
		return err
	}

	var super, staff *models.Group
	for i := range user.Groups {
		switch user.Groups[i].Name {
		case models.GroupSuperAdmins:
			super = &user.Groups[i]
		case models.GroupStaffMods:
			staff = &user.Groups[i]
		}
	}

	// 互斥：两个组同时在场时 Super Admins 胜出
	if super != nil && staff != nil {
		if err := tx.Model(&user).Association("Groups").Delete(staff); err != nil {
			return err
		}
	}

	return models.SyncGroupFlags(tx, userID)
}

// AddUserToGroup 把用户加入指定组并立即对账
func AddUserToGroup(userID uint, groupName string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		var group models.Group
		if err := tx.Where("name = ?", groupName).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if err := tx.Model(&user).Association("Groups").Append(&group); err != nil {
			return err
		}
		return syncUserGroupsTx(tx, userID)
	})
}

// RemoveUserFromGroup 把用户移出指定组并立即对账
func RemoveUserFromGroup(userID uint, groupName string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		var group models.Group
		if err := tx.Where("name = ?", groupName).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}
		if err := tx.Model(&user).Association("Groups").Delete(&group); err != nil {
			return err
		}
		return syncUserGroupsTx(tx, userID)
	})
}

// UserInGroup 查询用户是否在指定组内
func UserInGroup(userID uint, groupName string) (bool, error) {
	var count int64
	err := db.DB.Table("user_groups").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("user_groups.user_id = ? AND groups.name = ?", userID, groupName).
		Count(&count).Error
	return count > 0, err
}

// GroupPermissions 返回组的权限码清单（管理面板展示用）
func GroupPermissions(groupName string) ([]string, error) {
	var group models.Group
	if err := db.DB.Preload("Permissions").Where("name = ?", groupName).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	codenames := make([]string, 0, len(group.Permissions))
	for _, p := range group.Permissions {
		codenames = append(codenames, p.Codename)
	}
	return codenames, nil
}
