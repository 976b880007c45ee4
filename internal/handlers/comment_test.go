package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"wenda/internal/middleware"
	"wenda/internal/models"
	"wenda/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newCommentRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse("{{.Error}}")))
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CheckUserKey, user)
	})
	commentHandler := NewCommentHandler()
	r.POST("/comment/:cid/edit", commentHandler.Update)
	return r
}

func seedComment(t *testing.T, d *gorm.DB, user *models.User) *models.Comment {
	t.Helper()
	question := models.Question{
		Qid:    utils.RandStringBytesMaskImpr(8),
		UserID: user.ID,
		Title:  "禁言测试问题",
		Body:   "正文",
	}
	if err := d.Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	comment := models.Comment{
		Cid:        utils.RandStringBytesMaskImpr(8),
		UserID:     user.ID,
		TargetKind: models.TargetQuestion,
		TargetID:   question.ID,
		Content:    "原始内容",
	}
	if err := d.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return &comment
}

func postEdit(t *testing.T, r *gin.Engine, cid, content string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"content": {content}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comment/"+cid+"/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestMutedUserCannotEditComment(t *testing.T) {
	d := newTestDB(t)

	expires := time.Now().Add(24 * time.Hour)
	user := models.User{
		Username:      "muted",
		Email:         "muted@example.com",
		Password:      "x",
		Status:        1,
		PunishExpires: &expires,
	}
	if err := d.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	comment := seedComment(t, d, &user)

	r := newCommentRouter(&user)
	w := postEdit(t, r, comment.Cid, "改掉")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var got models.Comment
	if err := d.First(&got, comment.ID).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	if got.Content != "原始内容" {
		t.Errorf("content = %q, muted edit must not persist", got.Content)
	}
}

func TestExpiredMuteRestoresOnEdit(t *testing.T) {
	d := newTestDB(t)

	expires := time.Now().Add(-time.Hour)
	user := models.User{
		Username:      "restored",
		Email:         "restored@example.com",
		Password:      "x",
		Status:        1,
		PunishExpires: &expires,
	}
	if err := d.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	comment := seedComment(t, d, &user)

	r := newCommentRouter(&user)
	w := postEdit(t, r, comment.Cid, "到期后的修改")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}

	var got models.Comment
	if err := d.First(&got, comment.ID).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	if got.Content != "到期后的修改" {
		t.Errorf("content = %q, want updated content", got.Content)
	}

	var fresh models.User
	if err := d.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.Status != 0 || fresh.PunishExpires != nil {
		t.Errorf("status = %d expires = %v, mute should be lifted", fresh.Status, fresh.PunishExpires)
	}
}
