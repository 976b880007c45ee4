package services

import (
	"testing"
	"wenda/internal/models"
)

func TestRootQuestion(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "carol")
	question := mustQuestion(t, d, user.ID, "寻根测试")
	answer := mustAnswer(t, d, question.ID, user.ID)
	onQuestion := mustComment(t, d, user.ID, models.TargetQuestion, question.ID)
	onAnswer := mustComment(t, d, user.ID, models.TargetAnswer, answer.ID)
	nested := mustComment(t, d, user.ID, models.TargetComment, onQuestion.ID)

	tests := []struct {
		name string
		kind models.TargetKind
		id   uint
	}{
		{"question itself", models.TargetQuestion, question.ID},
		{"answer", models.TargetAnswer, answer.ID},
		{"comment on question", models.TargetComment, onQuestion.ID},
		{"comment on answer", models.TargetComment, onAnswer.ID},
		{"nested comment", models.TargetComment, nested.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RootQuestion(tt.kind, tt.id)
			if !ok {
				t.Fatalf("RootQuestion(%q, %d): no root found", tt.kind, tt.id)
			}
			if got.ID != question.ID {
				t.Errorf("root = %d, want %d", got.ID, question.ID)
			}
		})
	}
}

func TestRootQuestionDangling(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "dave")
	question := mustQuestion(t, d, user.ID, "悬空引用")
	comment := mustComment(t, d, user.ID, models.TargetQuestion, question.ID)

	// 问题被直接删掉后，评论的引用链断裂
	if err := d.Delete(&models.Question{}, question.ID).Error; err != nil {
		t.Fatalf("delete question: %v", err)
	}

	if _, ok := RootQuestion(models.TargetComment, comment.ID); ok {
		t.Error("expected no root for dangling comment")
	}
	if _, ok := RootQuestion(models.TargetQuestion, 9999); ok {
		t.Error("expected no root for missing question")
	}
	if _, ok := RootQuestion(models.TargetKind("tag"), 1); ok {
		t.Error("expected no root for unknown kind")
	}
}

func TestCascadeDeleteQuestion(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "erin")
	question := mustQuestion(t, d, user.ID, "级联删除")
	answer := mustAnswer(t, d, question.ID, user.ID)
	onQuestion := mustComment(t, d, user.ID, models.TargetQuestion, question.ID)
	mustComment(t, d, user.ID, models.TargetAnswer, answer.ID)
	mustComment(t, d, user.ID, models.TargetComment, onQuestion.ID)

	votes := []models.Vote{
		{UserID: user.ID, TargetKind: models.TargetQuestion, TargetID: question.ID, Value: 1},
		{UserID: user.ID, TargetKind: models.TargetAnswer, TargetID: answer.ID, Value: 1},
	}
	for i := range votes {
		if err := d.Create(&votes[i]).Error; err != nil {
			t.Fatalf("create vote: %v", err)
		}
	}

	// 无关问题不应被波及
	other := mustQuestion(t, d, user.ID, "无关问题")
	otherComment := mustComment(t, d, user.ID, models.TargetQuestion, other.ID)

	if err := CascadeDeleteQuestion(question.ID); err != nil {
		t.Fatalf("CascadeDeleteQuestion: %v", err)
	}

	var questionCount, answerCount, commentCount, voteCount int64
	d.Model(&models.Question{}).Where("id = ?", question.ID).Count(&questionCount)
	d.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&answerCount)
	d.Model(&models.Comment{}).Count(&commentCount)
	d.Model(&models.Vote{}).Count(&voteCount)

	if questionCount != 0 || answerCount != 0 || voteCount != 0 {
		t.Errorf("leftovers after cascade: questions=%d answers=%d votes=%d", questionCount, answerCount, voteCount)
	}
	// 只剩无关问题下的那条评论
	if commentCount != 1 {
		t.Errorf("comment count = %d, want 1", commentCount)
	}
	var survivor models.Comment
	if err := d.First(&survivor, otherComment.ID).Error; err != nil {
		t.Errorf("unrelated comment should survive: %v", err)
	}
}

func TestCascadeDeleteQuestionClearsTagLinks(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "grace")
	question := mustQuestion(t, d, user.ID, "带标签的问题")
	other := mustQuestion(t, d, user.ID, "保留的问题")

	tag := models.Tag{Name: "数据库"}
	if err := d.Create(&tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	for _, q := range []*models.Question{question, other} {
		if err := d.Model(q).Association("Tags").Append(&tag); err != nil {
			t.Fatalf("tag question: %v", err)
		}
	}

	if err := CascadeDeleteQuestion(question.ID); err != nil {
		t.Fatalf("CascadeDeleteQuestion: %v", err)
	}

	// 关联行必须随问题一起删除，否则标签页的问题计数会虚高
	var orphaned, kept int64
	d.Table("question_tags").Where("question_id = ?", question.ID).Count(&orphaned)
	d.Table("question_tags").Where("question_id = ?", other.ID).Count(&kept)
	if orphaned != 0 {
		t.Errorf("question_tags rows for deleted question = %d, want 0", orphaned)
	}
	if kept != 1 {
		t.Errorf("question_tags rows for surviving question = %d, want 1", kept)
	}
}

func TestCascadeDeleteAnswer(t *testing.T) {
	d := newTestDB(t)
	user := mustUser(t, d, "frank")
	question := mustQuestion(t, d, user.ID, "删回答")
	answer := mustAnswer(t, d, question.ID, user.ID)
	mustComment(t, d, user.ID, models.TargetAnswer, answer.ID)

	if err := CascadeDeleteAnswer(answer.ID); err != nil {
		t.Fatalf("CascadeDeleteAnswer: %v", err)
	}

	var answerCount, commentCount int64
	d.Model(&models.Answer{}).Where("id = ?", answer.ID).Count(&answerCount)
	d.Model(&models.Comment{}).Count(&commentCount)
	if answerCount != 0 || commentCount != 0 {
		t.Errorf("leftovers after cascade: answers=%d comments=%d", answerCount, commentCount)
	}

	// 问题本身保留
	var q models.Question
	if err := d.First(&q, question.ID).Error; err != nil {
		t.Errorf("question should survive: %v", err)
	}
}
