package services

import (
	"errors"
	"testing"
	"wenda/internal/models"
)

func TestIsNestingAllowed(t *testing.T) {
	tests := []struct {
		name         string
		parentKind   models.TargetKind
		parentTarget models.TargetKind
		want         bool
	}{
		{"comment on question", models.TargetQuestion, "", true},
		{"comment on answer", models.TargetAnswer, "", true},
		{"reply to question-level comment", models.TargetComment, models.TargetQuestion, true},
		{"reply to answer-level comment", models.TargetComment, models.TargetAnswer, false},
		{"reply to nested comment", models.TargetComment, models.TargetComment, false},
		{"unknown kind", models.TargetKind("post"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNestingAllowed(tt.parentKind, tt.parentTarget); got != tt.want {
				t.Errorf("IsNestingAllowed(%q, %q) = %v, want %v", tt.parentKind, tt.parentTarget, got, tt.want)
			}
		})
	}
}

func TestCheckCommentTarget(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "alice")
	question := mustQuestion(t, d, user.ID, "嵌套测试")
	answer := mustAnswer(t, d, question.ID, user.ID)

	// 问题下的一级评论可以被回复
	onQuestion := mustComment(t, d, user.ID, models.TargetQuestion, question.ID)
	if _, err := CheckCommentTarget(models.TargetComment, onQuestion.ID); err != nil {
		t.Errorf("reply to question-level comment: %v", err)
	}

	// 回答下的评论已到最大深度
	onAnswer := mustComment(t, d, user.ID, models.TargetAnswer, answer.ID)
	if _, err := CheckCommentTarget(models.TargetComment, onAnswer.ID); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("reply to answer-level comment: got %v, want ErrNestingTooDeep", err)
	}

	// 目标不存在
	if _, err := CheckCommentTarget(models.TargetQuestion, 9999); !errors.Is(err, ErrTargetMissing) {
		t.Errorf("missing target: got %v, want ErrTargetMissing", err)
	}

	// 不在允许清单里的类型
	if _, err := CheckCommentTarget(models.TargetKind("vote"), 1); !errors.Is(err, ErrBadTargetKind) {
		t.Errorf("bad kind: got %v, want ErrBadTargetKind", err)
	}
}
