package serializer

import (
	"errors"
	"fmt"
)

// AppError 应用错误，实现了error接口
type AppError struct {
	Code     int
	Msg      string
	RawError error
}

// NewError 返回新的错误对象
func NewError(code int, msg string, err error) AppError {
	return AppError{
		Code:     code,
		Msg:      msg,
		RawError: err,
	}
}

// WithError 将应用error携带标准库中的error
func (err *AppError) WithError(raw error) AppError {
	return AppError{
		Code:     err.Code,
		Msg:      err.Msg,
		RawError: raw,
	}
}

// Error 返回业务代码确定的可读错误信息
func (err AppError) Error() string {
	if err.RawError != nil {
		return fmt.Sprintf("%s: %s", err.Msg, err.RawError.Error())
	}
	return err.Msg
}

func (err AppError) Unwrap() error {
	return err.RawError
}

// CodeOf returns the application error code carried by err, or 0 if err is
// not an AppError.
func CodeOf(err error) int {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// 错误码
const (
	// CodeParamErr 各种奇奇怪怪的参数错误
	CodeParamErr = 40001
	// CodeEmptyName folder name is blank after trimming
	CodeEmptyName = 40002
	// CodeMissingNotes folder notes are required at creation
	CodeMissingNotes = 40003
	// CodeMissingID no identifier was supplied
	CodeMissingID = 40004
	// CodeInvalidID identifier is not a positive integer
	CodeInvalidID = 40005
	// CodeNoFieldsProvided update carries neither name nor notes
	CodeNoFieldsProvided = 40006
	// CodeEmptyTitle file title is blank after trimming
	CodeEmptyTitle = 40007
	// CodeParamTooLong a field exceeds its length limit
	CodeParamTooLong = 40008
	// CodeInvalidSort unknown list sort key
	CodeInvalidSort = 40009
	// CodeNotFound 资源未找到
	CodeNotFound = 40400
	// CodeFolderNotFound 目录不存在
	CodeFolderNotFound = 40401
	// CodeDuplicateName 同名目录已存在
	CodeDuplicateName = 40900
	// CodeDuplicateTitleInFolder 目录下已存在同名文件
	CodeDuplicateTitleInFolder = 40901
	// CodeDBError 数据库操作失败
	CodeDBError = 50001
)
