package remote

import (
	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// 后端接口的JSON字段名（totalExamplaries的拼写、loanBeginDate的
// 前缀等）是既有线上契约，不能修正，转换集中在这个文件里隔离。

// categoryDTO 分类
type categoryDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func (d categoryDTO) toDomain() category.Category {
	return category.Category{Code: d.Code, Label: d.Label}
}

// bookDTO 图书
type bookDTO struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	ISBN         string        `json:"isbn"`
	ReleaseDate  dateutil.Date `json:"releaseDate"`
	RegisterDate dateutil.Date `json:"registerDate"`
	// TotalExamplaries 后端如此拼写（应为exemplaries），线上契约不能改
	TotalExamplaries int          `json:"totalExamplaries"`
	Author           string       `json:"author"`
	Category         *categoryDTO `json:"category"`
}

func (d bookDTO) toDomain() book.Book {
	b := book.Book{
		ID:           d.ID,
		Title:        d.Title,
		ISBN:         d.ISBN,
		Author:       d.Author,
		ReleaseDate:  d.ReleaseDate,
		RegisterDate: d.RegisterDate,
		TotalCopies:  d.TotalExamplaries,
	}
	if d.Category != nil {
		b.CategoryCode = d.Category.Code
	}
	return b
}

func bookToDTO(b *book.Book) bookDTO {
	return bookDTO{
		ID:               b.ID,
		Title:            b.Title,
		ISBN:             b.ISBN,
		ReleaseDate:      b.ReleaseDate,
		RegisterDate:     b.RegisterDate,
		TotalExamplaries: b.TotalCopies,
		Author:           b.Author,
		Category:         &categoryDTO{Code: b.CategoryCode},
	}
}

// customerDTO 读者
type customerDTO struct {
	ID           int64         `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Job          string        `json:"job"`
	Address      string        `json:"address"`
	Email        string        `json:"email"`
	CreationDate dateutil.Date `json:"creationDate"`
}

func (d customerDTO) toDomain() customer.Customer {
	return customer.Customer{
		ID:           d.ID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Job:          d.Job,
		Address:      d.Address,
		Email:        d.Email,
		CreationDate: d.CreationDate,
	}
}

func customerToDTO(c *customer.Customer) customerDTO {
	return customerDTO{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Job:          c.Job,
		Address:      c.Address,
		Email:        c.Email,
		CreationDate: c.CreationDate,
	}
}

// loanDTO 借阅记录（读取用，内嵌完整图书与读者）
// 后端的借阅查询接口只返回在借记录，status字段缺失时默认OPEN
type loanDTO struct {
	Book      bookDTO       `json:"bookDTO"`
	Customer  customerDTO   `json:"customerDTO"`
	BeginDate dateutil.Date `json:"loanBeginDate"`
	EndDate   dateutil.Date `json:"loanEndDate"`
	Status    string        `json:"status,omitempty"`
}

func (d loanDTO) toDomain() loan.Loan {
	status := loan.Status(d.Status)
	if status == "" {
		status = loan.StatusOpen
	}
	return loan.Loan{
		Book:      d.Book.toDomain(),
		Customer:  d.Customer.toDomain(),
		BeginDate: d.BeginDate,
		EndDate:   d.EndDate,
		Status:    status,
	}
}

// simpleLoanDTO 借阅记录（写入用，只传业务标识和日期）
// 归还时只传业务标识，日期为零值时序列化为null
type simpleLoanDTO struct {
	BookID     int64         `json:"bookId"`
	CustomerID int64         `json:"customerId"`
	BeginDate  dateutil.Date `json:"beginDate"`
	EndDate    dateutil.Date `json:"endDate"`
}

// mailDTO 发送给读者的邮件
type mailDTO struct {
	CustomerID   int64  `json:"customerId"`
	EmailSubject string `json:"emailSubject"`
	EmailContent string `json:"emailContent"`
}
