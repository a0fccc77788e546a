package loan

import (
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeNotFound, "借阅记录不存在")

	// ErrNotEligible 不满足借阅条件（无可借副本，或该读者已借此书未还）
	ErrNotEligible = apperrors.New(apperrors.ErrCodeNotEligible, "不满足借阅条件")

	// ErrNoAvailableCopies 无可借副本
	ErrNoAvailableCopies = apperrors.New(apperrors.ErrCodeNotEligible, "该图书已无可借副本")

	// ErrAlreadyBorrowed 该读者已借此书未还
	ErrAlreadyBorrowed = apperrors.New(apperrors.ErrCodeNotEligible, "该读者已借阅此书且尚未归还")

	// ErrInvalidTransition 非法状态迁移（归还不存在或已归还的借阅）
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "借阅记录不在在借状态，无法归还")

	// ErrBeginDateRequired 借出日期必填
	ErrBeginDateRequired = apperrors.New(apperrors.ErrCodeValidation, "借出日期不能为空")

	// ErrEndDateRequired 应还日期必填
	ErrEndDateRequired = apperrors.New(apperrors.ErrCodeValidation, "应还日期不能为空")

	// ErrEndBeforeBegin 应还日期必须晚于借出日期
	ErrEndBeforeBegin = apperrors.New(apperrors.ErrCodeValidation, "应还日期必须晚于借出日期")

	// ErrLoanConflict 后端借阅冲突（并发创建撞上了唯一性约束）
	ErrLoanConflict = apperrors.New(apperrors.ErrCodeConflict, "借阅记录已存在，请刷新后重试")
)
