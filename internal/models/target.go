package models

// TargetKind 标识评论/投票所引用的实体类型
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
	TargetComment  TargetKind = "comment"
)

// Referable 可以被评论或投票引用的实体（问题、回答、评论）
type Referable interface {
	RefKind() TargetKind
	RefID() uint
	RefAuthorID() uint
}

// CommentTargetKinds 评论允许引用的类型
var CommentTargetKinds = []TargetKind{TargetQuestion, TargetAnswer, TargetComment}

// VoteTargetKinds 投票允许引用的类型（不允许对评论投票）
var VoteTargetKinds = []TargetKind{TargetQuestion, TargetAnswer}

func kindIn(kind TargetKind, allowed []TargetKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// IsCommentTarget 判断类型是否在评论的允许范围内
func IsCommentTarget(kind TargetKind) bool {
	return kindIn(kind, CommentTargetKinds)
}

// IsVoteTarget 判断类型是否在投票的允许范围内
func IsVoteTarget(kind TargetKind) bool {
	return kindIn(kind, VoteTargetKinds)
}
