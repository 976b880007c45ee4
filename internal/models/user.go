package models

import (
	"time"

	"gorm.io/gorm"
)

// 内置权限组名称
const (
	GroupSuperAdmins = "Super Admins"
	GroupStaffMods   = "Staff Moderators"
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"not null" json:"username"` // Username can be modified
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`                 // Hash
	IsStaff       bool       `gorm:"default:false" json:"is_staff"`     // 是否可进入管理面板
	IsSuperuser   bool       `gorm:"default:false" json:"is_superuser"` // 是否超级管理员
	Status        int        `gorm:"default:0" json:"status"`           // 0:正常, 1:禁言, 2:封禁
	PunishExpires *time.Time `json:"punish_expires"`                    // 惩罚到期时间
	IsActivated   bool       `gorm:"default:false" json:"is_activated"` // 是否已激活
	VerifyCode    string     `gorm:"size:20" json:"-"`                  // 验证码(激活/重置通用)
	Groups        []Group    `gorm:"many2many:user_groups" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	// No DeletedAt for hard delete
}

// Profile 用户资料，与用户一一对应，在用户创建时自动生成
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Bio       string    `gorm:"size:500" json:"bio"`                    // 个人简介
	Avatar    string    `gorm:"default:🌱" json:"avatar"`                // emoji 头像
	Badges    []Badge   `gorm:"many2many:profile_badges" json:"badges"` // 获得的徽章
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Group 权限组。Super Admins 与 Staff Moderators 互斥
type Group struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null;unique" json:"name"`
	Permissions []Permission `gorm:"many2many:group_permissions" json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
}

type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Codename string `gorm:"not null;unique;size:100" json:"codename"` // 如 view_question, change_answer
}

// InitialSetup 一次性初始化标记，保证内置组/管理员/默认标签只创建一次
type InitialSetup struct {
	ID            uint `gorm:"primaryKey"`
	GroupsCreated bool `gorm:"default:false"`
	TagsCreated   bool `gorm:"default:false"`
}

// AfterCreate 用户创建后自动生成对应的 Profile
func (u *User) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&Profile{UserID: u.ID, Bio: ""}).Error
}

// AfterSave 保证超级管理员始终在 Super Admins 组、不在 Staff Moderators 组。
// 这是从"标志位"方向的对账，与 services 层从"组关系"方向的对账互为补充
func (u *User) AfterSave(tx *gorm.DB) error {
	if !u.IsSuperuser {
		return nil
	}
	var super, staff Group
	if err := tx.Where("name = ?", GroupSuperAdmins).First(&super).Error; err != nil {
		return nil // 内置组尚未创建（首次初始化前），跳过
	}
	if err := tx.Where("name = ?", GroupStaffMods).First(&staff).Error; err != nil {
		return nil
	}
	if err := tx.Model(u).Association("Groups").Append(&super); err != nil {
		return err
	}
	if err := tx.Model(u).Association("Groups").Delete(&staff); err != nil {
		return err
	}
	return SyncGroupFlags(tx, u.ID)
}

// SyncGroupFlags 按当前组关系推导 is_superuser/is_staff，仅在与库中值不同时写入，
// 且用 UpdateColumns 跳过钩子，避免回环触发
func SyncGroupFlags(tx *gorm.DB, userID uint) error {
	var user User
	if err := tx.Preload("Groups").First(&user, userID).Error; err != nil {
		return err
	}

	inSuper, inStaff := false, false
	for _, g := range user.Groups {
		switch g.Name {
		case GroupSuperAdmins:
			inSuper = true
		case GroupStaffMods:
			inStaff = true
		}
	}

	isSuperuser := inSuper
	isStaff := inSuper || inStaff

	if user.IsSuperuser == isSuperuser && user.IsStaff == isStaff {
		return nil // 与库中一致，不写
	}
	return tx.Model(&User{}).Where("id = ?", userID).UpdateColumns(map[string]interface{}{
		"is_superuser": isSuperuser,
		"is_staff":     isStaff,
	}).Error
}
