package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/pkg/dateutil"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// LoanAPI 借阅仓储的后端实现
type LoanAPI struct {
	client *Client
}

// NewLoanAPI 创建借阅仓储
func NewLoanAPI(client *Client) loan.Repository {
	return &LoanAPI{client: client}
}

// ListUntil 查询应还日期早于maxEndDate的在借记录
func (a *LoanAPI) ListUntil(ctx context.Context, maxEndDate dateutil.Date) ([]loan.Loan, error) {
	query := url.Values{"date": {maxEndDate.String()}}
	raw, err := a.client.get(ctx, "loan", "maxEndDate", "loan/api/maxEndDate", query)
	if err != nil {
		return nil, err
	}
	return decodeLoans(raw)
}

// ListByCustomer 查询指定读者的借阅记录
// 后端以邮箱定位读者，不认customerId
func (a *LoanAPI) ListByCustomer(ctx context.Context, customerEmail string) ([]loan.Loan, error) {
	query := url.Values{"email": {customerEmail}}
	raw, err := a.client.get(ctx, "loan", "customerLoans", "loan/api/customerLoans", query)
	if err != nil {
		return nil, err
	}
	return decodeLoans(raw)
}

// Create 创建借阅记录
// 后端对重复的(图书, 读者)在借组合返回409——本地资格校验基于
// 缓存快照，可能滞后，这里是最终防线。409不重试，交给操作员刷新
func (a *LoanAPI) Create(ctx context.Context, params loan.CreateParams) error {
	dto := simpleLoanDTO{
		BookID:     params.Key.BookID,
		CustomerID: params.Key.CustomerID,
		BeginDate:  params.BeginDate,
		EndDate:    params.EndDate,
	}
	_, err := a.client.send(ctx, "loan", "addLoan", http.MethodPost, "loan/api/addLoan", dto)
	if err != nil {
		if apperrors.IsConflict(err) {
			return loan.ErrLoanConflict
		}
		return err
	}
	return nil
}

// Close 归还（关闭借阅记录）
// 归还日期由后端填写
func (a *LoanAPI) Close(ctx context.Context, key loan.Key) error {
	dto := simpleLoanDTO{
		BookID:     key.BookID,
		CustomerID: key.CustomerID,
	}
	_, err := a.client.send(ctx, "loan", "closeLoan", http.MethodPost, "loan/api/closeLoan", dto)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return loan.ErrInvalidTransition
		}
		return err
	}
	return nil
}

func decodeLoans(raw []byte) ([]loan.Loan, error) {
	dtos, _, err := DecodeList[loanDTO](raw)
	if err != nil {
		return nil, err
	}
	loans := make([]loan.Loan, 0, len(dtos))
	for _, d := range dtos {
		loans = append(loans, d.toDomain())
	}
	return loans, nil
}
