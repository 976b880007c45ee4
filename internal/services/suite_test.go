package services

import (
	"fmt"
	"strings"
	"testing"
	"wenda/internal/db"
	"wenda/internal/models"
	"wenda/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 建一个内存 sqlite 库并临时替换全局连接
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	old := db.DB
	db.DB = d
	t.Cleanup(func() { db.DB = old })
	return d
}

func mustUser(t *testing.T, d *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "x",
		IsActivated: true,
	}
	if err := d.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func mustQuestion(t *testing.T, d *gorm.DB, userID uint, title string) *models.Question {
	t.Helper()
	question := models.Question{
		Qid:    utils.RandStringBytesMaskImpr(8),
		UserID: userID,
		Title:  title,
		Body:   "内容 " + title,
	}
	if err := d.Create(&question).Error; err != nil {
		t.Fatalf("create question %s: %v", title, err)
	}
	return &question
}

func mustAnswer(t *testing.T, d *gorm.DB, questionID, userID uint) *models.Answer {
	t.Helper()
	answer := models.Answer{
		Aid:        utils.RandStringBytesMaskImpr(8),
		QuestionID: questionID,
		UserID:     userID,
		Content:    "回答内容",
	}
	if err := d.Create(&answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return &answer
}

func mustComment(t *testing.T, d *gorm.DB, userID uint, kind models.TargetKind, targetID uint) *models.Comment {
	t.Helper()
	comment := models.Comment{
		Cid:        utils.RandStringBytesMaskImpr(8),
		UserID:     userID,
		TargetKind: kind,
		TargetID:   targetID,
		Content:    "评论内容",
	}
	if err := d.Create(&comment).Error; err != nil {
		t.Fatalf("create comment on %s/%d: %v", kind, targetID, err)
	}
	return &comment
}
