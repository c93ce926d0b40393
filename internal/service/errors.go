package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// 错误类别哨兵，handler 层据此映射HTTP状态码：
// ErrValidation→400, ErrForbidden→403, ErrNotFound→404，其余→500
var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)

// kindError 携带用户可见消息并归属到某个错误类别
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NotFoundError 构造404类错误
func NotFoundError(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// ForbiddenError 构造403类错误
func ForbiddenError(msg string) error {
	return &kindError{kind: ErrForbidden, msg: msg}
}

// ValidationError 构造400类错误
func ValidationError(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// isNoDocuments 判断mongo查询/更新是否未命中文档
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
