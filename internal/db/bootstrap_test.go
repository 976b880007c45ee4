package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"wenda/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	old := DB
	DB = d
	t.Cleanup(func() { DB = old })
	return d
}

func TestClaimSetupRowCreatesOnce(t *testing.T) {
	d := openTestDB(t)

	setup, err := claimSetupRow(d)
	if err != nil {
		t.Fatalf("claimSetupRow: %v", err)
	}
	if setup.ID != 1 || setup.GroupsCreated {
		t.Errorf("fresh row = %+v, want ID 1 and flags unset", setup)
	}

	// 行已存在时拿到的是同一行，不新建
	again, err := claimSetupRow(d)
	if err != nil {
		t.Fatalf("claimSetupRow again: %v", err)
	}
	if again.ID != 1 {
		t.Errorf("ID = %d, want 1", again.ID)
	}
	var count int64
	d.Model(&models.InitialSetup{}).Count(&count)
	if count != 1 {
		t.Errorf("setup rows = %d, want 1", count)
	}
}

func TestBootstrapSurvivesLostInsertRace(t *testing.T) {
	d := openTestDB(t)

	// 重复插入标记行必须被翻译成 ErrDuplicatedKey，
	// 抢跑失败的恢复分支就挂在这个哨兵上
	if err := d.Create(&models.InitialSetup{ID: 1}).Error; err != nil {
		t.Fatalf("seed setup row: %v", err)
	}
	err := d.Create(&models.InitialSetup{ID: 1}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert err = %v, want gorm.ErrDuplicatedKey", err)
	}

	// 别的进程已经初始化完成：本进程必须无事可做地成功返回
	if err := d.Model(&models.InitialSetup{}).Where("id = ?", 1).
		Updates(map[string]interface{}{"groups_created": true, "tags_created": true}).Error; err != nil {
		t.Fatalf("mark bootstrapped: %v", err)
	}
	if err := Bootstrap(d); err != nil {
		t.Fatalf("Bootstrap after lost race: %v", err)
	}
	var groups int64
	d.Model(&models.Group{}).Count(&groups)
	if groups != 0 {
		t.Errorf("groups = %d, want 0 (loser must no-op)", groups)
	}
}
