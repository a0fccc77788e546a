package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/config"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 用httptest模拟后端，验证客户端的URL拼装、状态码映射和熔断行为

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.BackendConfig{
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
	})
	return client, server
}

// TestBookAPI_SearchByTitle 搜索接口的URL与解析
func TestBookAPI_SearchByTitle(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/api/searchByTitle", r.URL.Path)
		assert.Equal(t, "Go", r.URL.Query().Get("title"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Go程序设计","isbn":"9780134190440","totalExamplaries":2,"author":"Donovan","category":{"code":"T","label":"技术"}}]`))
	}))

	books, err := NewBookAPI(client).SearchByTitle(context.Background(), "Go")

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, 2, books[0].TotalCopies)
	assert.Equal(t, "T", books[0].CategoryCode)
}

// TestBookAPI_Conflict 后端409映射为ISBN重复
func TestBookAPI_Conflict(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	_, err := NewBookAPI(client).Add(context.Background(), &book.Book{Title: "重复书"})

	assert.ErrorIs(t, err, book.ErrISBNDuplicate)
}

// TestCustomerAPI_PaginatedList 分页参数换算与Spring包装解析
func TestCustomerAPI_PaginatedList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer/api/paginatedSearch", r.URL.Path)
		// 第3页、每页10条 → beginPage=2（从0开始）
		assert.Equal(t, "2", r.URL.Query().Get("beginPage"))
		assert.Equal(t, "10", r.URL.Query().Get("endPage"))
		_, _ = w.Write([]byte(`{"content":[{"id":7,"firstName":"三","lastName":"张","email":"zhang@example.com"}],"totalElements":21}`))
	}))

	page, err := NewCustomerAPI(client).PaginatedList(context.Background(), customer.ListParams{Page: 3, PageSize: 10})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(21), page.Total)
	assert.Equal(t, "张", page.Items[0].LastName)
}

// TestCustomerAPI_SearchByEmail 邮箱查询返回单个对象，不走列表信封
func TestCustomerAPI_SearchByEmail(t *testing.T) {
	t.Run("命中返回一条", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/customer/api/searchByEmail", r.URL.Path)
			assert.Equal(t, "zhang@example.com", r.URL.Query().Get("email"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"firstName":"三","lastName":"张","email":"zhang@example.com"}`))
		}))

		customers, err := NewCustomerAPI(client).SearchByEmail(context.Background(), "zhang@example.com")

		require.NoError(t, err)
		require.Len(t, customers, 1, "200命中的单个对象应解析为一条结果")
		assert.Equal(t, int64(7), customers[0].ID)
	})

	t.Run("未命中204返回空结果", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		customers, err := NewCustomerAPI(client).SearchByEmail(context.Background(), "none@example.com")

		require.NoError(t, err, "未命中不是错误")
		assert.Empty(t, customers)
	})
}

// TestLoanAPI_ListByCustomer 按读者查借阅以邮箱定位
func TestLoanAPI_ListByCustomer(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loan/api/customerLoans", r.URL.Path)
		assert.Equal(t, "zhang@example.com", r.URL.Query().Get("email"))
		assert.False(t, r.URL.Query().Has("customerId"), "后端只认email参数")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"bookDTO":{"id":1,"title":"Go程序设计"},"customerDTO":{"id":7,"email":"zhang@example.com"},"loanBeginDate":"2026-08-01","loanEndDate":"2026-08-15"}]`))
	}))

	loans, err := NewLoanAPI(client).ListByCustomer(context.Background(), "zhang@example.com")

	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, loan.StatusOpen, loans[0].Status, "status缺失默认在借")
	assert.Equal(t, "zhang@example.com", loans[0].Customer.Email)
}

// TestLoanAPI_Create409 借阅冲突不重试，映射为冲突错误
func TestLoanAPI_Create409(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
	}))

	err := NewLoanAPI(client).Create(context.Background(), loan.CreateParams{
		Key: loan.Key{BookID: 1, CustomerID: 7},
	})

	assert.ErrorIs(t, err, loan.ErrLoanConflict)
	assert.Equal(t, 1, calls, "409不应重试")
}

// TestLoanAPI_CloseNotFound 归还不存在的记录映射为非法迁移
func TestLoanAPI_CloseNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := NewLoanAPI(client).Close(context.Background(), loan.Key{BookID: 1, CustomerID: 7})

	assert.ErrorIs(t, err, loan.ErrInvalidTransition)
}

// TestClient_ServerError 后端5xx映射为服务不可用
func TestClient_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := NewCategoryAPI(client).ListAll(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err), "5xx应归入传输类错误: %v", err)
}

// TestClient_NetworkError 连接失败映射为网络错误
func TestClient_NetworkError(t *testing.T) {
	client, server := newTestClient(t, http.NewServeMux())
	server.Close() // 立刻关掉，模拟后端宕机

	_, err := NewCategoryAPI(client).ListAll(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err), "连接失败应归入传输类错误: %v", err)
}

// TestClient_CircuitBreaker 连续失败后熔断，快速失败不发请求
func TestClient_CircuitBreaker(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.BackendConfig{
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
		Breaker: config.BreakerConfig{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 3,
		},
	})
	api := NewCategoryAPI(client)

	// 3次失败触发熔断
	for i := 0; i < 3; i++ {
		_, err := api.ListAll(context.Background())
		require.Error(t, err)
	}
	require.Equal(t, 3, calls)

	// 熔断后快速失败，不再发请求
	_, err := api.ListAll(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrCircuitOpen)
	assert.Equal(t, 3, calls, "熔断期间不应发出网络请求")
}

// TestClient_BusinessErrorsDontTrip 业务错误不触发熔断
func TestClient_BusinessErrorsDontTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	t.Cleanup(server.Close)

	// 一次失败就熔断的配置，验证业务错误不计入失败
	client := NewClient(config.BackendConfig{
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
		Breaker: config.BreakerConfig{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 1,
		},
	})

	api := NewBookAPI(client)
	for i := 0; i < 10; i++ {
		_, err := api.Add(context.Background(), &book.Book{})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate, "409是业务错误，不应触发熔断")
	}
}
