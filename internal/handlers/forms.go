package handlers

import (
	"wenda/internal/models"

	"github.com/go-playground/validator/v10"
)

// 表单结构集中声明，gin 的 binding 用的也是这套 validator
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// targetkind: 字段必须是合法的评论/投票目标类型
	v.RegisterValidation("targetkind", func(fl validator.FieldLevel) bool {
		kind := models.TargetKind(fl.Field().String())
		return models.IsVoteTarget(kind) || models.IsCommentTarget(kind)
	})
	return v
}

type QuestionForm struct {
	Title string `form:"title" validate:"required,min=5,max=150"`
	Body  string `form:"body" validate:"required,min=10"`
	Tags  []uint `form:"tags" validate:"max=5"`
}

type AnswerForm struct {
	Content string `form:"content" validate:"required,min=2"`
}

type CommentForm struct {
	TargetKind string `form:"target_kind" validate:"required,targetkind"`
	TargetID   uint   `form:"target_id" validate:"required"`
	Content    string `form:"content" validate:"required,min=1,max=2000"`
}

type SettingsForm struct {
	Username string `form:"username" validate:"required,min=2,max=30"`
	Bio      string `form:"bio" validate:"max=500"`
	Avatar   string `form:"avatar" validate:"max=100"`
}

type TagForm struct {
	Name        string `form:"name" validate:"required,min=1,max=30"`
	Description string `form:"description" validate:"max=500"`
}

type BadgeForm struct {
	Name        string `form:"name" validate:"required,min=1,max=50"`
	Description string `form:"description" validate:"required,max=500"`
	Icon        string `form:"icon" validate:"max=100"`
}

// bindAndValidate 绑定表单并校验，出错返回第一条错误信息
func bindAndValidate(obj interface{}, bind func(interface{}) error) error {
	if err := bind(obj); err != nil {
		return err
	}
	return validate.Struct(obj)
}
