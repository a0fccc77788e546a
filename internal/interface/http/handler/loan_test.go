package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcategory "github.com/xiebiao/library-console/internal/application/category"
	apploan "github.com/xiebiao/library-console/internal/application/loan"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/pkg/dateutil"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 借阅接口测试
//
// 重点覆盖两条容易错的链路：
// 1. 按读者查借阅走邮箱参数（后端不认customerId）
// 2. 搜索结果整页替换分页数据（Paginated信号）

type stubLoanRepo struct {
	loans        []loan.Loan
	listedEmails []string
	closed       []loan.Key
}

func (s *stubLoanRepo) ListUntil(ctx context.Context, maxEndDate dateutil.Date) ([]loan.Loan, error) {
	var open []loan.Loan
	for _, l := range s.loans {
		if l.IsOpen() && l.EndDate.Before(maxEndDate) {
			open = append(open, l)
		}
	}
	return open, nil
}

func (s *stubLoanRepo) ListByCustomer(ctx context.Context, customerEmail string) ([]loan.Loan, error) {
	s.listedEmails = append(s.listedEmails, customerEmail)
	var result []loan.Loan
	for _, l := range s.loans {
		if l.Customer.Email == customerEmail {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *stubLoanRepo) Create(ctx context.Context, params loan.CreateParams) error {
	return nil
}

func (s *stubLoanRepo) Close(ctx context.Context, key loan.Key) error {
	s.closed = append(s.closed, key)
	return nil
}

func newLoanRouter(loanRepo *stubLoanRepo, bookRepo *stubBookRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	coordinator := cache.NewCoordinator(cache.NewMemoryStore(), time.Minute)
	loanService := loan.NewService(loanRepo)
	categoriesUseCase := appcategory.NewListCategoriesUseCase(&stubCategoryRepo{}, coordinator)
	h := NewLoanHandler(
		apploan.NewListLoansUseCase(loanRepo, coordinator),
		apploan.NewCreateLoanUseCase(loanService, bookRepo, coordinator),
		apploan.NewCloseLoanUseCase(loanService, coordinator),
		apploan.NewEligibleBooksUseCase(bookRepo, loanRepo),
		categoriesUseCase,
	)

	r := gin.New()
	r.GET("/api/v1/loans", h.List)
	r.POST("/api/v1/loans", h.Create)
	r.POST("/api/v1/loans/close", h.Close)
	return r
}

func testLoan(bookID, customerID int64, email string, status loan.Status) loan.Loan {
	return loan.Loan{
		Book:      testBook(bookID, "Go语言实战", "9787115428028", "T"),
		Customer:  customer.Customer{ID: customerID, LastName: "张", Email: email},
		BeginDate: dateutil.New(2026, time.August, 1),
		EndDate:   dateutil.New(2026, time.August, 15),
		Status:    status,
	}
}

func TestLoanHandler_List(t *testing.T) {
	loanRepo := &stubLoanRepo{loans: []loan.Loan{
		testLoan(1, 7, "zhang@example.com", loan.StatusOpen),
		testLoan(2, 8, "li@example.com", loan.StatusOpen),
	}}
	r := newLoanRouter(loanRepo, &stubBookRepo{})

	t.Run("默认列表走分页模式", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/loans", nil)

		assert.Equal(t, 0, resp.Code)
		page := decodePage(t, resp)
		require.Len(t, page.List, 2)
		assert.True(t, page.Paginated, "无搜索时分页控件可用")
	})

	t.Run("按读者邮箱搜索整页替换并禁用分页", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/loans?email=zhang%40example.com", nil)

		assert.Equal(t, 0, resp.Code)
		page := decodePage(t, resp)
		require.Len(t, page.List, 1)
		assert.False(t, page.Paginated, "搜索结果不分页")
		assert.Equal(t, int64(1), page.Total)
		// 后端按邮箱定位读者
		require.NotEmpty(t, loanRepo.listedEmails)
		assert.Equal(t, "zhang@example.com", loanRepo.listedEmails[len(loanRepo.listedEmails)-1])
	})

	t.Run("非法日期返回校验错误", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/loans?maxEndDate=2026-13-99", nil)

		assert.Equal(t, apperrors.ErrCodeValidation, resp.Code)
	})
}

func TestLoanHandler_Close(t *testing.T) {
	t.Run("正常归还", func(t *testing.T) {
		loanRepo := &stubLoanRepo{loans: []loan.Loan{
			testLoan(1, 7, "zhang@example.com", loan.StatusOpen),
		}}
		r := newLoanRouter(loanRepo, &stubBookRepo{})

		resp := doRequest(t, r, http.MethodPost, "/api/v1/loans/close", map[string]interface{}{
			"bookId":        1,
			"customerId":    7,
			"customerEmail": "zhang@example.com",
		})

		assert.Equal(t, 0, resp.Code)
		require.Len(t, loanRepo.closed, 1)
		assert.Equal(t, loan.Key{BookID: 1, CustomerID: 7}, loanRepo.closed[0])
		// 在借校验按邮箱查该读者的借阅记录
		assert.Equal(t, []string{"zhang@example.com"}, loanRepo.listedEmails)
	})

	t.Run("缺少邮箱返回绑定错误", func(t *testing.T) {
		loanRepo := &stubLoanRepo{loans: []loan.Loan{
			testLoan(1, 7, "zhang@example.com", loan.StatusOpen),
		}}
		r := newLoanRouter(loanRepo, &stubBookRepo{})

		resp := doRequest(t, r, http.MethodPost, "/api/v1/loans/close", map[string]interface{}{
			"bookId":     1,
			"customerId": 7,
		})

		assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
		assert.Empty(t, loanRepo.closed)
	})

	t.Run("归还已归还的记录", func(t *testing.T) {
		loanRepo := &stubLoanRepo{loans: []loan.Loan{
			testLoan(1, 7, "zhang@example.com", loan.StatusClosed),
		}}
		r := newLoanRouter(loanRepo, &stubBookRepo{})

		resp := doRequest(t, r, http.MethodPost, "/api/v1/loans/close", map[string]interface{}{
			"bookId":        1,
			"customerId":    7,
			"customerEmail": "zhang@example.com",
		})

		assert.Equal(t, apperrors.ErrCodeInvalidTransition, resp.Code)
		assert.Empty(t, loanRepo.closed)
	})
}
