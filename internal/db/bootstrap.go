package db

import (
	"errors"
	"log"
	"os"
	"wenda/internal/models"
	"wenda/internal/utils"

	"gorm.io/gorm"
)

// Staff Moderators 固定权限清单。Super Admins 拥有全部权限
var staffModPermissions = []string{
	"view_user", "view_group", "view_profile", "change_profile",
	"view_question", "change_question",
	"view_answer", "change_answer",
	"view_comment", "change_comment",
	"add_tag", "change_tag", "delete_tag", "view_tag",
	"add_badge", "change_badge", "delete_badge", "view_badge",
}

var allPermissions = append([]string{
	"add_user", "change_user", "delete_user",
	"add_group", "change_group", "delete_group",
	"add_question", "delete_question",
	"add_answer", "delete_answer",
	"add_comment", "delete_comment",
}, staffModPermissions...)

// 社区预设标签
var defaultTags = []string{"Go", "数据库", "Web开发", "API", "部署"}

// Bootstrap 首次启动时创建内置权限组、默认管理员和预设标签。
// 借助 InitialSetup 标记行保证只执行一次；整个过程在一个事务里，
// 两个进程抢跑时后到者会看到标记已置位直接返回
func Bootstrap(d *gorm.DB) error {
	return d.Transaction(func(tx *gorm.DB) error {
		setup, err := claimSetupRow(tx)
		if err != nil {
			return err
		}
		if setup.GroupsCreated {
			return nil // 已初始化过，跳过
		}

		perms, err := ensurePermissions(tx, allPermissions)
		if err != nil {
			return err
		}

		// Super Admins：全部权限
		superGroup := models.Group{Name: models.GroupSuperAdmins}
		if err := tx.Where(models.Group{Name: models.GroupSuperAdmins}).FirstOrCreate(&superGroup).Error; err != nil {
			return err
		}
		if err := tx.Model(&superGroup).Association("Permissions").Replace(pickPermissions(perms, allPermissions)); err != nil {
			return err
		}

		// Staff Moderators：固定白名单
		staffGroup := models.Group{Name: models.GroupStaffMods}
		if err := tx.Where(models.Group{Name: models.GroupStaffMods}).FirstOrCreate(&staffGroup).Error; err != nil {
			return err
		}
		if err := tx.Model(&staffGroup).Association("Permissions").Replace(pickPermissions(perms, staffModPermissions)); err != nil {
			return err
		}

		// 没有任何超级管理员时，按环境变量创建默认管理员
		if err := ensureDefaultAdmin(tx); err != nil {
			return err
		}

		if !setup.TagsCreated {
			for _, name := range defaultTags {
				tag := models.Tag{Name: name}
				if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
					log.Printf("Failed to create tag %s: %v", name, err)
				}
			}
			setup.TagsCreated = true
		}

		setup.GroupsCreated = true
		return tx.Save(&setup).Error
	})
}

// claimSetupRow 取初始化标记行，不存在就创建。
// 两个空库进程同时抢跑：都没查到行，后插入的撞主键。
// 撞了说明别人正在（或已经）初始化，重读标记行即可
func claimSetupRow(tx *gorm.DB) (models.InitialSetup, error) {
	var setup models.InitialSetup
	if err := tx.FirstOrCreate(&setup, models.InitialSetup{ID: 1}).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return setup, err
		}
		if err := tx.First(&setup, 1).Error; err != nil {
			return setup, err
		}
	}
	return setup, nil
}

func ensurePermissions(tx *gorm.DB, codenames []string) (map[string]*models.Permission, error) {
	out := make(map[string]*models.Permission, len(codenames))
	for _, codename := range codenames {
		p := models.Permission{Codename: codename}
		if err := tx.Where(models.Permission{Codename: codename}).FirstOrCreate(&p).Error; err != nil {
			return nil, err
		}
		perm := p
		out[codename] = &perm
	}
	return out, nil
}

func pickPermissions(perms map[string]*models.Permission, codenames []string) []*models.Permission {
	picked := make([]*models.Permission, 0, len(codenames))
	for _, codename := range codenames {
		if p, ok := perms[codename]; ok {
			picked = append(picked, p)
		}
	}
	return picked
}

func ensureDefaultAdmin(tx *gorm.DB) error {
	email := os.Getenv("DEFAULT_ADMIN_EMAIL")
	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("is_superuser = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	username := os.Getenv("DEFAULT_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	admin := models.User{
		Username:    username,
		Email:       email,
		Password:    hash,
		IsStaff:     true,
		IsSuperuser: true,
		IsActivated: true,
	}
	// AfterSave 钩子会把管理员放进 Super Admins 组
	return tx.Create(&admin).Error
}
