package dto

import (
	"github.com/xiebiao/library-console/internal/domain/customer"
)

// SaveCustomerRequest HTTP读者建档/修改请求
type SaveCustomerRequest struct {
	ID        int64  `json:"id" example:"7"` // 修改时必填，新增时忽略
	FirstName string `json:"firstName" binding:"required,max=50" example:"三"`
	LastName  string `json:"lastName" binding:"required,max=50" example:"张"`
	Job       string `json:"job" binding:"max=100" example:"教师"`
	Address   string `json:"address" binding:"max=200" example:"朝阳区"`
	Email     string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
}

// ToDomain 转换为领域实体
func (r SaveCustomerRequest) ToDomain() *customer.Customer {
	return &customer.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Job:       r.Job,
		Address:   r.Address,
		Email:     r.Email,
	}
}

// SendEmailRequest HTTP发邮件请求
type SendEmailRequest struct {
	CustomerID int64  `json:"customerId" binding:"required" example:"7"`
	Subject    string `json:"emailSubject" binding:"required,max=200" example:"借阅到期提醒"`
	Content    string `json:"emailContent" binding:"required,max=5000" example:"您借阅的图书即将到期，请及时归还。"`
}

// CustomerResponse HTTP读者响应
type CustomerResponse struct {
	ID                  int64  `json:"id" example:"7"`
	FirstName           string `json:"firstName" example:"三"`
	LastName            string `json:"lastName" example:"张"`
	FullName            string `json:"fullName" example:"三 张"`
	Job                 string `json:"job" example:"教师"`
	Address             string `json:"address" example:"朝阳区"`
	Email               string `json:"email" example:"zhangsan@example.com"`
	CreationDate        string `json:"creationDate" example:"2025-11-02"`
	CreationDateDisplay string `json:"creationDateDisplay" example:"02/11/2025"`
}

// NewCustomerResponse 从领域实体构建响应
func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                  c.ID,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		FullName:            c.FullName(),
		Job:                 c.Job,
		Address:             c.Address,
		Email:               c.Email,
		CreationDate:        c.CreationDate.String(),
		CreationDateDisplay: c.CreationDate.Display(),
	}
}

// NewCustomerResponses 批量转换
func NewCustomerResponses(customers []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, NewCustomerResponse(&customers[i]))
	}
	return out
}
