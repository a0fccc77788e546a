package dto

import (
	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// SaveBookRequest HTTP图书新增/修改请求
// 日期字段走线上格式yyyy-MM-dd，展示格式的转换在响应侧做
type SaveBookRequest struct {
	ID           int64  `json:"id" example:"1"` // 修改时必填，新增时忽略
	Title        string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	ISBN         string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
	Author       string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	ReleaseDate  string `json:"releaseDate" binding:"required" example:"2017-03-01"`
	TotalCopies  int    `json:"totalCopies" binding:"min=0" example:"3"`
	CategoryCode string `json:"categoryCode" binding:"required" example:"T"`
}

// ToDomain 转换为领域实体
func (r SaveBookRequest) ToDomain() (*book.Book, error) {
	releaseDate, err := dateutil.Parse(r.ReleaseDate)
	if err != nil {
		return nil, book.ErrReleaseDateRequired
	}
	return &book.Book{
		ID:           r.ID,
		Title:        r.Title,
		ISBN:         r.ISBN,
		Author:       r.Author,
		ReleaseDate:  releaseDate,
		TotalCopies:  r.TotalCopies,
		CategoryCode: r.CategoryCode,
	}, nil
}

// BookResponse HTTP图书响应
// 日期同时给线上格式和展示格式（dd/MM/yyyy），前端直接渲染
type BookResponse struct {
	ID                 int64  `json:"id" example:"1"`
	Title              string `json:"title" example:"Go语言实战"`
	ISBN               string `json:"isbn" example:"9787115428028"`
	Author             string `json:"author" example:"威廉·肯尼迪"`
	ReleaseDate        string `json:"releaseDate" example:"2017-03-01"`
	ReleaseDateDisplay string `json:"releaseDateDisplay" example:"01/03/2017"`
	RegisterDate       string `json:"registerDate" example:"2026-01-15"`
	TotalCopies        int    `json:"totalCopies" example:"3"`
	CategoryCode       string `json:"categoryCode" example:"T"`
	CategoryLabel      string `json:"categoryLabel" example:"技术"`
}

// NewBookResponse 从领域实体构建响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:                 b.ID,
		Title:              b.Title,
		ISBN:               b.ISBN,
		Author:             b.Author,
		ReleaseDate:        b.ReleaseDate.String(),
		ReleaseDateDisplay: b.ReleaseDate.Display(),
		RegisterDate:       b.RegisterDate.String(),
		TotalCopies:        b.TotalCopies,
		CategoryCode:       b.CategoryCode,
	}
}

// NewBookResponses 批量转换
// categories用于把分类编码翻译成展示名称
func NewBookResponses(books []book.Book, categories []category.Category) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		resp := NewBookResponse(&books[i])
		resp.CategoryLabel = category.LabelOf(categories, books[i].CategoryCode)
		out = append(out, resp)
	}
	return out
}
