package services

import (
	"errors"
	"wenda/internal/models"
)

// MaxNestingDepth 评论嵌套深度上限：问题下允许一层"评论的评论"，
// 回答下不允许嵌套
const MaxNestingDepth = 1

// ErrNestingTooDeep 评论嵌套超出允许深度
var ErrNestingTooDeep = errors.New("该评论不能再被回复")

// IsNestingAllowed 判断新评论能否挂到指定父节点上。
// parentKind 是父节点类型；父节点本身是评论时，parentTargetKind
// 是父评论所引用的类型（其余情况传空串即可）。
// 规则：评论可以直接挂在问题或回答上；挂在评论上仅当那条评论
// 直接挂在问题上——即 回答下的评论 和 已嵌套过的评论 都不能再被评论
func IsNestingAllowed(parentKind, parentTargetKind models.TargetKind) bool {
	switch parentKind {
	case models.TargetQuestion, models.TargetAnswer:
		return true
	case models.TargetComment:
		return parentTargetKind == models.TargetQuestion
	default:
		return false
	}
}

// CheckCommentTarget 提交评论前的完整校验：类型在允许范围内、
// 目标仍然存在、嵌套深度合法。通过后返回解析出的目标实体，
// 失败时不会产生任何写入
func CheckCommentTarget(kind models.TargetKind, id uint) (models.Referable, error) {
	if !models.IsCommentTarget(kind) {
		return nil, ErrBadTargetKind
	}
	target, err := ResolveTarget(kind, id)
	if err != nil {
		return nil, err
	}

	var parentTargetKind models.TargetKind
	if kind == models.TargetComment {
		parent := target.(*models.Comment)
		parentTargetKind = parent.TargetKind
	}
	if !IsNestingAllowed(kind, parentTargetKind) {
		return nil, ErrNestingTooDeep
	}
	return target, nil
}
