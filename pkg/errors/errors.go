package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于调用方判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给前端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按业务错误码比较
// 说明：领域层用 errors.Is(err, ErrNotFound) 判断错误类别，
// 同一个错误码的不同实例（如带Wrap的内部错误）应视为同类
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如网络错误、后端服务错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端/传输错误（后端服务异常、网络失败、超时）
//
// 错误分类对照（控制台的五类错误）：
// - 校验错误（Validation）   ：本地规则校验失败，不会发起网络请求
// - 未找到（NotFound）       ：唯一字段查询无结果，非致命
// - 冲突（Conflict）         ：后端返回409（唯一字段重复、并发借阅冲突）
// - 传输错误（Transport）    ：超时、连接失败、5xx，可手动重试
// - 非法状态迁移（Transition）：对已归还/不存在的借阅执行归还

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal = 50000 // 内部错误

	// 传输/后端错误（50300-50399）
	ErrCodeTransport   = 50300 // 网络错误（连接失败、超时）
	ErrCodeUnavailable = 50301 // 后端服务不可用（5xx）
	ErrCodeCircuitOpen = 50302 // 熔断器打开，快速失败

	// 认证授权错误（40100-40199）
	// 说明：控制台本身不做登录，这两个码只用于透传后端的401/403
	ErrCodeUnauthorized = 40100
	ErrCodeForbidden    = 40104

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound     = 40402 // 图书不存在
	ErrCodeCustomerNotFound = 40404 // 读者不存在

	// 冲突错误（40900-40919）
	ErrCodeConflict       = 40900 // 冲突(通用，后端409)
	ErrCodeDuplicateEntry = 40909 // 唯一字段重复(ISBN、邮箱)

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeNotEligible       = 40001 // 不满足借阅条件（无可借副本或已有在借记录）
	ErrCodeInvalidTransition = 40002 // 非法状态迁移（归还不存在或已归还的借阅）

	// 参数错误（40920-40999）
	ErrCodeValidation = 40920 // 本地校验失败
	ErrCodeBindError  = 40921 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "系统内部错误")

	// 传输错误
	ErrTransport   = New(ErrCodeTransport, "网络连接失败")
	ErrUnavailable = New(ErrCodeUnavailable, "后端服务不可用")
	ErrCircuitOpen = New(ErrCodeCircuitOpen, "后端服务熔断中，请稍后重试")

	// 认证授权（透传）
	ErrUnauthorized = New(ErrCodeUnauthorized, "未授权")
	ErrForbidden    = New(ErrCodeForbidden, "访问被拒绝")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 冲突
	ErrConflict       = New(ErrCodeConflict, "资源冲突")
	ErrDuplicateEntry = New(ErrCodeDuplicateEntry, "唯一字段已存在")

	// 参数错误
	ErrValidation = New(ErrCodeValidation, "参数校验失败")
	ErrBindError  = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "系统内部错误")
}

// IsValidation 是否为本地校验错误（未发起网络请求）
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation) || hasCode(err, ErrCodeBindError)
}

// IsNotFound 是否为"未找到"（唯一字段查询无结果，非致命）
func IsNotFound(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code >= 40400 && appErr.Code < 40500
}

// IsConflict 是否为冲突错误（后端409，不应自动重试）
func IsConflict(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code >= 40900 && appErr.Code < 40920
}

// IsTransport 是否为传输错误（超时、连接失败、5xx，可手动重试）
func IsTransport(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code >= 50300 && appErr.Code < 50400
}

// IsInvalidTransition 是否为非法状态迁移
func IsInvalidTransition(err error) bool {
	return hasCode(err, ErrCodeInvalidTransition)
}

// IsMutationFailure 变更操作失败是否应保持弹窗（可重试）
// 读取失败 → 展示空列表/错误态；变更失败 → 保持弹窗让用户修改后重试
func IsMutationFailure(err error) bool {
	return IsValidation(err) || IsConflict(err) || IsInvalidTransition(err)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}
