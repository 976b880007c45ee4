package services

import (
	"errors"
	"testing"
	"wenda/internal/db"
	"wenda/internal/models"
)

func TestBootstrapIdempotent(t *testing.T) {
	d := newTestDB(t)

	if err := db.Bootstrap(d); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	if err := db.Bootstrap(d); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	var groupCount int64
	d.Model(&models.Group{}).Count(&groupCount)
	if groupCount != 2 {
		t.Errorf("group count = %d, want 2", groupCount)
	}

	perms, err := GroupPermissions(models.GroupStaffMods)
	if err != nil {
		t.Fatalf("GroupPermissions: %v", err)
	}
	for _, forbidden := range []string{"delete_question", "delete_user", "add_user"} {
		for _, p := range perms {
			if p == forbidden {
				t.Errorf("staff group should not hold %q", forbidden)
			}
		}
	}
}

func TestAddRemoveUserGroup(t *testing.T) {
	d := newTestDB(t)
	if err := db.Bootstrap(d); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	user := mustUser(t, d, "grace")

	if err := AddUserToGroup(user.ID, models.GroupStaffMods); err != nil {
		t.Fatalf("AddUserToGroup: %v", err)
	}

	var fresh models.User
	d.First(&fresh, user.ID)
	if !fresh.IsStaff || fresh.IsSuperuser {
		t.Errorf("after staff join: is_staff=%v is_superuser=%v, want true/false", fresh.IsStaff, fresh.IsSuperuser)
	}

	if err := RemoveUserFromGroup(user.ID, models.GroupStaffMods); err != nil {
		t.Fatalf("RemoveUserFromGroup: %v", err)
	}
	d.First(&fresh, user.ID)
	if fresh.IsStaff {
		t.Error("is_staff should be reset after leaving the group")
	}

	if err := AddUserToGroup(user.ID, "不存在的组"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("got %v, want ErrGroupNotFound", err)
	}
}

func TestGroupMutualExclusion(t *testing.T) {
	d := newTestDB(t)
	if err := db.Bootstrap(d); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	user := mustUser(t, d, "heidi")

	if err := AddUserToGroup(user.ID, models.GroupStaffMods); err != nil {
		t.Fatalf("add to staff: %v", err)
	}
	if err := AddUserToGroup(user.ID, models.GroupSuperAdmins); err != nil {
		t.Fatalf("add to super: %v", err)
	}

	inStaff, err := UserInGroup(user.ID, models.GroupStaffMods)
	if err != nil {
		t.Fatalf("UserInGroup: %v", err)
	}
	if inStaff {
		t.Error("Super Admins membership should evict Staff Moderators")
	}

	var fresh models.User
	d.First(&fresh, user.ID)
	if !fresh.IsSuperuser || !fresh.IsStaff {
		t.Errorf("super admin flags: is_superuser=%v is_staff=%v, want true/true", fresh.IsSuperuser, fresh.IsStaff)
	}
}

func TestSuperuserFlagJoinsGroup(t *testing.T) {
	d := newTestDB(t)
	if err := db.Bootstrap(d); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	// 置位 is_superuser 并保存，钩子应把用户放进 Super Admins 组
	user := mustUser(t, d, "ivan")
	user.IsSuperuser = true
	if err := d.Save(user).Error; err != nil {
		t.Fatalf("save superuser: %v", err)
	}

	inSuper, err := UserInGroup(user.ID, models.GroupSuperAdmins)
	if err != nil {
		t.Fatalf("UserInGroup: %v", err)
	}
	if !inSuper {
		t.Error("superuser should be placed into Super Admins group on save")
	}

	var fresh models.User
	d.First(&fresh, user.ID)
	if !fresh.IsStaff {
		t.Error("is_staff should follow is_superuser")
	}

	// 再保存一次不应报错也不应产生重复关联
	if err := d.Save(&fresh).Error; err != nil {
		t.Fatalf("second save: %v", err)
	}
	var linkCount int64
	d.Table("user_groups").Where("user_id = ?", user.ID).Count(&linkCount)
	if linkCount != 1 {
		t.Errorf("user_groups rows = %d, want 1", linkCount)
	}
}
