package book

import (
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在（后端唯一性约束，409）
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "ISBN号已存在")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeValidation, "书名不能为空")

	// ErrISBNRequired ISBN必填
	ErrISBNRequired = apperrors.New(apperrors.ErrCodeValidation, "ISBN不能为空")

	// ErrAuthorRequired 作者必填
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeValidation, "作者不能为空")

	// ErrCategoryRequired 分类必选
	ErrCategoryRequired = apperrors.New(apperrors.ErrCodeValidation, "必须选择图书分类")

	// ErrInvalidCopies 无效的副本数
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeValidation, "副本数不能为负数")

	// ErrReleaseDateRequired 出版日期必填
	ErrReleaseDateRequired = apperrors.New(apperrors.ErrCodeValidation, "出版日期不能为空")

	// ErrHasOpenLoans 图书存在在借记录，不能删除
	ErrHasOpenLoans = apperrors.New(apperrors.ErrCodeConflict, "该图书存在在借记录，不能删除")
)
