package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/xiebiao/library-console/internal/domain/customer"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// CustomerAPI 读者仓储的后端实现
type CustomerAPI struct {
	client *Client
}

// NewCustomerAPI 创建读者仓储
func NewCustomerAPI(client *Client) customer.Repository {
	return &CustomerAPI{client: client}
}

// PaginatedList 分页查询读者列表
// 后端的分页参数是beginPage/endPage（页码从0开始的半开区间），
// 这里从页码+每页数量换算，换算逻辑不外泄到上层
func (a *CustomerAPI) PaginatedList(ctx context.Context, params customer.ListParams) (*customer.Page, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 {
		size = 10
	}

	query := url.Values{
		"beginPage": {strconv.Itoa(page - 1)},
		"endPage":   {strconv.Itoa(size)},
	}
	raw, err := a.client.get(ctx, "customer", "paginatedSearch", "customer/api/paginatedSearch", query)
	if err != nil {
		return nil, err
	}

	dtos, total, err := DecodeList[customerDTO](raw)
	if err != nil {
		return nil, err
	}

	items := make([]customer.Customer, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return &customer.Page{Items: items, Total: total}, nil
}

// SearchByEmail 按邮箱精确查询
// 后端命中时返回单个对象，未命中返回204（不是列表），
// 这里统一成切片返回：命中一条、未命中空切片，上层不用特判
func (a *CustomerAPI) SearchByEmail(ctx context.Context, email string) ([]customer.Customer, error) {
	query := url.Values{"email": {email}}
	raw, err := a.client.get(ctx, "customer", "searchByEmail", "customer/api/searchByEmail", query)
	if err != nil {
		return nil, err
	}

	dto, err := DecodeOne[customerDTO](raw)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, nil
	}
	return []customer.Customer{dto.toDomain()}, nil
}

// SearchByLastName 按姓氏关键词搜索
func (a *CustomerAPI) SearchByLastName(ctx context.Context, keyword string) ([]customer.Customer, error) {
	query := url.Values{"lastName": {keyword}}
	raw, err := a.client.get(ctx, "customer", "searchByLastName", "customer/api/searchByLastName", query)
	if err != nil {
		return nil, err
	}
	return decodeCustomers(raw)
}

// Add 新增读者
func (a *CustomerAPI) Add(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	raw, err := a.client.send(ctx, "customer", "addCustomer", http.MethodPost, "customer/api/addCustomer", customerToDTO(c))
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, customer.ErrEmailDuplicate
		}
		return nil, err
	}
	return decodeCustomer(raw)
}

// Update 更新读者信息
func (a *CustomerAPI) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	raw, err := a.client.send(ctx, "customer", "updateCustomer", http.MethodPut, "customer/api/updateCustomer", customerToDTO(c))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, customer.ErrCustomerNotFound
		}
		if apperrors.IsConflict(err) {
			return nil, customer.ErrEmailDuplicate
		}
		return nil, err
	}
	return decodeCustomer(raw)
}

// Delete 删除读者
// 后端对存在在借记录的读者返回409
func (a *CustomerAPI) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("customer/api/deleteCustomer/%d", id)
	_, err := a.client.send(ctx, "customer", "deleteCustomer", http.MethodDelete, path, nil)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return customer.ErrCustomerNotFound
		}
		if apperrors.IsConflict(err) {
			return customer.ErrHasOpenLoans
		}
		return err
	}
	return nil
}

// SendEmail 给指定读者发送邮件
func (a *CustomerAPI) SendEmail(ctx context.Context, customerID int64, msg customer.EmailMessage) error {
	dto := mailDTO{
		CustomerID:   customerID,
		EmailSubject: msg.Subject,
		EmailContent: msg.Content,
	}
	_, err := a.client.send(ctx, "customer", "sendEmailToCustomer", http.MethodPut, "customer/api/sendEmailToCustomer", dto)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return customer.ErrCustomerNotFound
		}
		return err
	}
	return nil
}

func decodeCustomers(raw []byte) ([]customer.Customer, error) {
	dtos, _, err := DecodeList[customerDTO](raw)
	if err != nil {
		return nil, err
	}
	customers := make([]customer.Customer, 0, len(dtos))
	for _, d := range dtos {
		customers = append(customers, d.toDomain())
	}
	return customers, nil
}

func decodeCustomer(raw []byte) (*customer.Customer, error) {
	dto, err := DecodeOne[customerDTO](raw)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, customer.ErrCustomerNotFound
	}
	c := dto.toDomain()
	return &c, nil
}
