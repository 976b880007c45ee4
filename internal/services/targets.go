package services

import (
	"errors"
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrTargetMissing 引用的目标已不存在（被删除或并发竞争）
	ErrTargetMissing = errors.New("引用的目标不存在")
	// ErrBadTargetKind 不在允许范围内的目标类型
	ErrBadTargetKind = errors.New("不支持的目标类型")
)

// ResolveTarget 把 (kind, id) 解析成具体实体。只读，不产生副作用；
// 目标已被删除时返回 ErrTargetMissing，由调用方决定兜底行为
func ResolveTarget(kind models.TargetKind, id uint) (models.Referable, error) {
	switch kind {
	case models.TargetQuestion:
		var q models.Question
		if err := db.DB.First(&q, id).Error; err != nil {
			return nil, missingOr(err)
		}
		return &q, nil
	case models.TargetAnswer:
		var a models.Answer
		if err := db.DB.First(&a, id).Error; err != nil {
			return nil, missingOr(err)
		}
		return &a, nil
	case models.TargetComment:
		var c models.Comment
		if err := db.DB.First(&c, id).Error; err != nil {
			return nil, missingOr(err)
		}
		return &c, nil
	default:
		return nil, ErrBadTargetKind
	}
}

func missingOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetMissing
	}
	return err
}
