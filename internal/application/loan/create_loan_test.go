package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// 验证借阅写操作与缓存失效的联动：创建/归还成功后，借阅和图书
// 两个类别的缓存都必须失效，下一次读取回源拉取

type stubBookRepo struct {
	books []book.Book
}

func (s *stubBookRepo) SearchByTitle(ctx context.Context, keyword string) ([]book.Book, error) {
	return s.books, nil
}
func (s *stubBookRepo) SearchByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (s *stubBookRepo) Add(ctx context.Context, b *book.Book) (*book.Book, error)    { return b, nil }
func (s *stubBookRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) { return b, nil }
func (s *stubBookRepo) Delete(ctx context.Context, id int64) error                   { return nil }

type stubLoanRepo struct {
	loans   []loan.Loan
	created int
	closed  int
}

func (s *stubLoanRepo) ListUntil(ctx context.Context, maxEndDate dateutil.Date) ([]loan.Loan, error) {
	return s.loans, nil
}
func (s *stubLoanRepo) ListByCustomer(ctx context.Context, customerEmail string) ([]loan.Loan, error) {
	var result []loan.Loan
	for _, l := range s.loans {
		if l.Customer.Email == customerEmail {
			result = append(result, l)
		}
	}
	return result, nil
}
func (s *stubLoanRepo) Create(ctx context.Context, params loan.CreateParams) error {
	s.created++
	return nil
}
func (s *stubLoanRepo) Close(ctx context.Context, key loan.Key) error {
	s.closed++
	return nil
}

func seedCache(t *testing.T, store cache.Store, kinds ...cache.Kind) {
	t.Helper()
	for _, kind := range kinds {
		err := store.Set(context.Background(), cache.Key{Kind: kind}, &cache.Entry{
			Payload:   []byte(`[]`),
			FetchedAt: time.Now(),
		})
		require.NoError(t, err)
	}
}

func cacheHas(t *testing.T, store cache.Store, kind cache.Kind) bool {
	t.Helper()
	entry, err := store.Get(context.Background(), cache.Key{Kind: kind})
	require.NoError(t, err)
	return entry != nil
}

func date(t *testing.T, s string) dateutil.Date {
	d, err := dateutil.Parse(s)
	require.NoError(t, err)
	return d
}

// TestCreateLoan_InvalidatesLoansAndBooks 创建成功后双类别失效
func TestCreateLoan_InvalidatesLoansAndBooks(t *testing.T) {
	store := cache.NewMemoryStore()
	coord := cache.NewCoordinator(store, 5*time.Minute)
	seedCache(t, store, cache.KindLoans, cache.KindBooks, cache.KindCustomers)

	bookRepo := &stubBookRepo{books: []book.Book{{ID: 1, Title: "Go程序设计", TotalCopies: 2}}}
	loanRepo := &stubLoanRepo{}
	uc := NewCreateLoanUseCase(loan.NewService(loanRepo), bookRepo, coord)

	err := uc.Execute(context.Background(), CreateLoanRequest{
		BookID:     1,
		CustomerID: 9,
		BeginDate:  date(t, "2026-08-01"),
		EndDate:    date(t, "2026-08-15"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, loanRepo.created)
	assert.False(t, cacheHas(t, store, cache.KindLoans), "借阅缓存应失效")
	assert.False(t, cacheHas(t, store, cache.KindBooks), "图书缓存应失效（可借数变了）")
	assert.True(t, cacheHas(t, store, cache.KindCustomers), "读者缓存不应被波及")
}

// TestCreateLoan_FailureKeepsCache 创建失败不碰缓存
func TestCreateLoan_FailureKeepsCache(t *testing.T) {
	store := cache.NewMemoryStore()
	coord := cache.NewCoordinator(store, 5*time.Minute)
	seedCache(t, store, cache.KindLoans, cache.KindBooks)

	bookRepo := &stubBookRepo{books: []book.Book{{ID: 1, Title: "Go程序设计", TotalCopies: 2}}}
	loanRepo := &stubLoanRepo{}
	uc := NewCreateLoanUseCase(loan.NewService(loanRepo), bookRepo, coord)

	// 日期非法，本地校验拦截
	err := uc.Execute(context.Background(), CreateLoanRequest{
		BookID:     1,
		CustomerID: 9,
		BeginDate:  date(t, "2026-08-15"),
		EndDate:    date(t, "2026-08-01"),
	})

	require.Error(t, err)
	assert.Equal(t, 0, loanRepo.created)
	assert.True(t, cacheHas(t, store, cache.KindLoans), "失败的写操作不应失效缓存")
	assert.True(t, cacheHas(t, store, cache.KindBooks))
}

// TestCreateLoan_BookNotFound 图书不存在
func TestCreateLoan_BookNotFound(t *testing.T) {
	store := cache.NewMemoryStore()
	coord := cache.NewCoordinator(store, 5*time.Minute)

	uc := NewCreateLoanUseCase(loan.NewService(&stubLoanRepo{}), &stubBookRepo{}, coord)

	err := uc.Execute(context.Background(), CreateLoanRequest{
		BookID:     404,
		CustomerID: 9,
		BeginDate:  date(t, "2026-08-01"),
		EndDate:    date(t, "2026-08-15"),
	})

	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestCloseLoan_InvalidatesLoansAndBooks 归还成功后双类别失效
func TestCloseLoan_InvalidatesLoansAndBooks(t *testing.T) {
	store := cache.NewMemoryStore()
	coord := cache.NewCoordinator(store, 5*time.Minute)
	seedCache(t, store, cache.KindLoans, cache.KindBooks)

	loanRepo := &stubLoanRepo{loans: []loan.Loan{
		{
			Book:     book.Book{ID: 1},
			Customer: customer.Customer{ID: 7, Email: "zhang@example.com"},
			EndDate:  date(t, "2026-09-01"),
			Status:   loan.StatusOpen,
		},
	}}
	uc := NewCloseLoanUseCase(loan.NewService(loanRepo), coord)

	err := uc.Execute(context.Background(), loan.Key{BookID: 1, CustomerID: 7}, "zhang@example.com")

	require.NoError(t, err)
	assert.Equal(t, 1, loanRepo.closed)
	assert.False(t, cacheHas(t, store, cache.KindLoans))
	assert.False(t, cacheHas(t, store, cache.KindBooks))
}
