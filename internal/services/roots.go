package services

import (
	"wenda/internal/db"
	"wenda/internal/models"

	"gorm.io/gorm"
)

// 沿引用链上溯的步数上限：评论链深度受 MaxNestingDepth 约束，
// 再加问题/回答各一跳的余量。超出上限一律按"无根"处理
const maxRootSteps = MaxNestingDepth + 3

// RootQuestion 沿 (kind, id) 引用链上溯，找到锚定整个讨论的问题。
// 迭代实现，带步数上限，深链/脏数据都不会栈溢出或死循环。
// 链上任何一环缺失（目标已删除）或类型非法时返回 (nil, false)，
// 调用方应回退到默认跳转（如首页）
func RootQuestion(kind models.TargetKind, id uint) (*models.Question, bool) {
	for step := 0; step < maxRootSteps; step++ {
		switch kind {
		case models.TargetQuestion:
			var q models.Question
			if err := db.DB.First(&q, id).Error; err != nil {
				return nil, false
			}
			return &q, true
		case models.TargetAnswer:
			var a models.Answer
			if err := db.DB.First(&a, id).Error; err != nil {
				return nil, false
			}
			kind, id = models.TargetQuestion, a.QuestionID
		case models.TargetComment:
			var c models.Comment
			if err := db.DB.First(&c, id).Error; err != nil {
				return nil, false
			}
			// 只有评论会成为中间环节，继续上溯
			kind, id = c.TargetKind, c.TargetID
		default:
			return nil, false
		}
	}
	return nil, false
}

// RootQuestionOf 对已加载实体的便捷封装
func RootQuestionOf(ref models.Referable) (*models.Question, bool) {
	return RootQuestion(ref.RefKind(), ref.RefID())
}

// CascadeDeleteQuestion 删除问题及其整棵讨论树：回答、问题和回答下的
// 评论（含评论的评论）、相关投票。泛型引用没有数据库级外键，
// 级联由这里显式完成，整个过程一个事务
func CascadeDeleteQuestion(questionID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var answerIDs []uint
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", questionID).Pluck("id", &answerIDs).Error; err != nil {
			return err
		}

		// 第一层：直接挂在问题/回答上的评论
		var commentIDs []uint
		q := tx.Model(&models.Comment{}).Where("target_kind = ? AND target_id = ?", models.TargetQuestion, questionID)
		if len(answerIDs) > 0 {
			q = q.Or("target_kind = ? AND target_id IN ?", models.TargetAnswer, answerIDs)
		}
		if err := q.Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		// 第二层：评论的评论（嵌套深度受限，一层即够）
		if len(commentIDs) > 0 {
			var childIDs []uint
			if err := tx.Model(&models.Comment{}).
				Where("target_kind = ? AND target_id IN ?", models.TargetComment, commentIDs).
				Pluck("id", &childIDs).Error; err != nil {
				return err
			}
			commentIDs = append(commentIDs, childIDs...)
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetQuestion, questionID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		// 标签关联表没有外键，问题删了行要跟着清，否则标签计数虚高
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", questionID).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?", models.TargetAnswer, answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", answerIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Question{}, questionID).Error
	})
}

// CascadeDeleteAnswer 删除回答及其评论树和投票
func CascadeDeleteAnswer(answerID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("target_kind = ? AND target_id = ?", models.TargetAnswer, answerID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?", models.TargetComment, commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetAnswer, answerID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Answer{}, answerID).Error
	})
}

// CascadeDeleteComment 删除评论及其子评论
func CascadeDeleteComment(commentID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetComment, commentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}
