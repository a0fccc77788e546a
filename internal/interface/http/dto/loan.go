package dto

import (
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/domain/loan"
)

// CreateLoanRequest HTTP创建借阅请求
type CreateLoanRequest struct {
	BookID     int64  `json:"bookId" binding:"required" example:"1"`
	CustomerID int64  `json:"customerId" binding:"required" example:"7"`
	BeginDate  string `json:"beginDate" binding:"required" example:"2026-08-01"`
	EndDate    string `json:"endDate" binding:"required" example:"2026-08-15"`
}

// CloseLoanRequest HTTP归还请求
// 后端的归还接口只认(bookId, customerId)二元组，customerEmail用于
// 归还前的在借校验（借阅查询接口以邮箱定位读者）
type CloseLoanRequest struct {
	BookID        int64  `json:"bookId" binding:"required" example:"1"`
	CustomerID    int64  `json:"customerId" binding:"required" example:"7"`
	CustomerEmail string `json:"customerEmail" binding:"required,email" example:"zhangsan@example.com"`
}

// LoanResponse HTTP借阅记录响应
// 内嵌图书和读者的展示信息，列表页不用再发请求拼数据
type LoanResponse struct {
	Book             BookResponse     `json:"book"`
	Customer         CustomerResponse `json:"customer"`
	BeginDate        string           `json:"beginDate" example:"2026-08-01"`
	BeginDateDisplay string           `json:"beginDateDisplay" example:"01/08/2026"`
	EndDate          string           `json:"endDate" example:"2026-08-15"`
	EndDateDisplay   string           `json:"endDateDisplay" example:"15/08/2026"`
	Status           string           `json:"status" example:"OPEN"`
}

// NewLoanResponse 从领域实体构建响应
// categories用于把图书的分类编码翻译成展示名称
func NewLoanResponse(l *loan.Loan, categories []category.Category) LoanResponse {
	bookResp := NewBookResponse(&l.Book)
	bookResp.CategoryLabel = category.LabelOf(categories, l.Book.CategoryCode)
	return LoanResponse{
		Book:             bookResp,
		Customer:         NewCustomerResponse(&l.Customer),
		BeginDate:        l.BeginDate.String(),
		BeginDateDisplay: l.BeginDate.Display(),
		EndDate:          l.EndDate.String(),
		EndDateDisplay:   l.EndDate.Display(),
		Status:           string(l.Status),
	}
}

// NewLoanResponses 批量转换
func NewLoanResponses(loans []loan.Loan, categories []category.Category) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, NewLoanResponse(&loans[i], categories))
	}
	return out
}

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	Code  string `json:"code" example:"T"`
	Label string `json:"label" example:"技术"`
}

// NewCategoryResponses 批量转换
func NewCategoryResponses(categories []category.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{Code: c.Code, Label: c.Label})
	}
	return out
}
