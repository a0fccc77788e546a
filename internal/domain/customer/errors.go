package customer

import (
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 读者领域错误定义
var (
	// ErrCustomerNotFound 读者不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "读者不存在")

	// ErrEmailDuplicate 邮箱已存在（后端唯一性约束，409）
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该邮箱已被注册")

	// ErrFirstNameRequired 名必填
	ErrFirstNameRequired = apperrors.New(apperrors.ErrCodeValidation, "名不能为空")

	// ErrLastNameRequired 姓必填
	ErrLastNameRequired = apperrors.New(apperrors.ErrCodeValidation, "姓不能为空")

	// ErrEmailRequired 邮箱必填
	ErrEmailRequired = apperrors.New(apperrors.ErrCodeValidation, "邮箱不能为空")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeValidation, "邮箱格式不正确")

	// ErrEmailSubjectRequired 邮件主题必填
	ErrEmailSubjectRequired = apperrors.New(apperrors.ErrCodeValidation, "邮件主题不能为空")

	// ErrEmailContentRequired 邮件内容必填
	ErrEmailContentRequired = apperrors.New(apperrors.ErrCodeValidation, "邮件内容不能为空")

	// ErrHasOpenLoans 读者存在在借记录，不能删除
	ErrHasOpenLoans = apperrors.New(apperrors.ErrCodeConflict, "该读者存在在借记录，不能删除")
)
