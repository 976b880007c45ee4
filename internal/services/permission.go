package services

import (
	"errors"
	"wenda/internal/models"
)

// ErrForbidden 非作者尝试修改/删除内容
var ErrForbidden = errors.New("无权操作此内容")

// Authored 记录了作者的实体（问题、回答、评论）
type Authored interface {
	RefAuthorID() uint
}

// AuthorizeMutation 编辑/删除的作者校验。只看作者身份，
// 与权限组体系互不相干；拒绝时返回 ErrForbidden，
// 由 handler 渲染 403（区别于 404）
func AuthorizeMutation(entity Authored, actor *models.User) error {
	if actor == nil || entity.RefAuthorID() != actor.ID {
		return ErrForbidden
	}
	return nil
}
