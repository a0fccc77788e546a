package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便前端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := createLoanUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 记录内部错误到gin的错误链（Logger中间件会输出）
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
// 说明：Paginated=false 表示当前展示的是搜索结果，前端应禁用分页控件
type PageData struct {
	List      interface{} `json:"list"`      // 数据列表
	Total     int64       `json:"total"`     // 总记录数
	Page      int         `json:"page"`      // 当前页码
	PageSize  int         `json:"page_size"` // 每页大小
	Paginated bool        `json:"paginated"` // 是否启用分页控件
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	return &PageData{
		List:      list,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		Paginated: true,
	}
}

// NewSearchData 创建搜索结果数据（分页禁用）
// 搜索接口返回完整结果集，总数就是条目数
func NewSearchData[T any](items []T) *PageData {
	return &PageData{
		List:      items,
		Total:     int64(len(items)),
		Page:      1,
		PageSize:  len(items),
		Paginated: false,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, page *PageData) {
	Success(c, page)
}
