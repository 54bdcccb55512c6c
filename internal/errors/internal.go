package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrInternal 所有内部缺陷的哨兵错误，用于 errors.Is
var ErrInternal = stderrors.New("internal code generation error")

// InternalError 代码生成内部缺陷
type InternalError struct {
	Code    string   // 缺陷码 (J0003)
	Message string   // 主消息
	Notes   []string // 附加说明（节点、指令等现场信息）
}

// Error 实现 error 接口
func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is 使 errors.Is(err, ErrInternal) 成立
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// WithNote 追加说明
func (e *InternalError) WithNote(format string, args ...interface{}) *InternalError {
	e.Notes = append(e.Notes, fmt.Sprintf(format, args...))
	return e
}

// Panicf 以内部缺陷终止代码生成
func Panicf(code string, format string, args ...interface{}) {
	panic(&InternalError{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Assert 条件不成立时以内部缺陷终止代码生成
func Assert(cond bool, code string, format string, args ...interface{}) {
	if !cond {
		Panicf(code, format, args...)
	}
}

// Unreached 标记不可达路径
func Unreached(format string, args ...interface{}) {
	Panicf(J0001, "unreached: "+format, args...)
}

// AsInternal 从 recover() 的值中取出内部缺陷；其它值返回 nil
func AsInternal(r interface{}) *InternalError {
	if ie, ok := r.(*InternalError); ok {
		return ie
	}
	return nil
}
