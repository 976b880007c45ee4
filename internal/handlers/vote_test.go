package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"wenda/internal/middleware"
	"wenda/internal/models"

	"github.com/gin-gonic/gin"
)

func newVoteRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CheckUserKey, user)
	})
	voteHandler := NewVoteHandler()
	r.POST("/vote/:kind/:id", voteHandler.Upvote)
	return r
}

func TestVoteDuplicateSignalsAlreadyVoted(t *testing.T) {
	d := newTestDB(t)
	user := seedQuestions(t, d, 1)

	var question models.Question
	if err := d.First(&question).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}

	r := newVoteRouter(user)
	path := "/vote/question/" + strconv.Itoa(int(question.ID))

	// 第一票正常入库
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first vote status = %d", w.Code)
	}
	if w.Body.String() != "1" {
		t.Errorf("first vote count = %q, want 1", w.Body.String())
	}
	if w.Header().Get("HX-Trigger") != "" {
		t.Error("first vote should not carry a rejection event")
	}

	// 重复投票：票数不变，且必须带上"已投过"提示
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, path, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate vote status = %d", w.Code)
	}
	if w.Body.String() != "1" {
		t.Errorf("duplicate vote count = %q, want 1", w.Body.String())
	}
	if w.Header().Get("HX-Trigger") == "" {
		t.Error("duplicate vote must signal already-voted via HX-Trigger")
	}

	var voteCount int64
	d.Model(&models.Vote{}).Count(&voteCount)
	if voteCount != 1 {
		t.Errorf("vote rows = %d, want 1", voteCount)
	}
}
