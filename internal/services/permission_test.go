package services

import (
	"errors"
	"testing"
	"wenda/internal/models"
)

func TestAuthorizeMutation(t *testing.T) {
	d := newTestDB(t)
	author := mustUser(t, d, "judy")
	stranger := mustUser(t, d, "mallory")
	question := mustQuestion(t, d, author.ID, "权限测试")

	if err := AuthorizeMutation(question, author); err != nil {
		t.Errorf("author should pass: %v", err)
	}
	if err := AuthorizeMutation(question, stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: got %v, want ErrForbidden", err)
	}
	if err := AuthorizeMutation(question, nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("anonymous: got %v, want ErrForbidden", err)
	}

	// 回答和评论走同一套校验
	answer := mustAnswer(t, d, question.ID, author.ID)
	if err := AuthorizeMutation(answer, stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("answer stranger: got %v, want ErrForbidden", err)
	}
	comment := mustComment(t, d, author.ID, models.TargetQuestion, question.ID)
	if err := AuthorizeMutation(comment, author); err != nil {
		t.Errorf("comment author should pass: %v", err)
	}
}
