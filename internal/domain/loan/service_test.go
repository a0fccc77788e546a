package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// fakeRepo 内存版借阅仓储（Mock后端）
type fakeRepo struct {
	loans        []Loan
	createErr    error
	closeErr     error
	created      []CreateParams
	closedKeys   []Key
	listedEmails []string
}

func (f *fakeRepo) ListUntil(ctx context.Context, maxEndDate dateutil.Date) ([]Loan, error) {
	var open []Loan
	for _, l := range f.loans {
		if l.IsOpen() && l.EndDate.Before(maxEndDate) {
			open = append(open, l)
		}
	}
	return open, nil
}

func (f *fakeRepo) ListByCustomer(ctx context.Context, customerEmail string) ([]Loan, error) {
	f.listedEmails = append(f.listedEmails, customerEmail)
	var result []Loan
	for _, l := range f.loans {
		if l.Customer.Email == customerEmail {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeRepo) Create(ctx context.Context, params CreateParams) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, params)
	return nil
}

func (f *fakeRepo) Close(ctx context.Context, key Key) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closedKeys = append(f.closedKeys, key)
	return nil
}

func mustDate(t *testing.T, s string) dateutil.Date {
	d, err := dateutil.Parse(s)
	require.NoError(t, err)
	return d
}

// TestBorrow 测试创建借阅
func TestBorrow(t *testing.T) {
	ctx := context.Background()
	b := makeBook(1, "Go程序设计", 2)

	t.Run("正常借阅", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		err := svc.Borrow(ctx, &b, 9, mustDate(t, "2026-08-01"), mustDate(t, "2026-08-15"))

		require.NoError(t, err)
		require.Len(t, repo.created, 1, "应该向后端发起一次创建请求")
		assert.Equal(t, Key{BookID: 1, CustomerID: 9}, repo.created[0].Key)
	})

	t.Run("应还日期不晚于借出日期", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		err := svc.Borrow(ctx, &b, 9, mustDate(t, "2026-08-15"), mustDate(t, "2026-08-15"))

		assert.ErrorIs(t, err, ErrEndBeforeBegin)
		assert.Empty(t, repo.created, "本地校验失败不应发起网络请求")
	})

	t.Run("日期缺失", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		err := svc.Borrow(ctx, &b, 9, dateutil.Date{}, mustDate(t, "2026-08-15"))
		assert.ErrorIs(t, err, ErrBeginDateRequired)

		err = svc.Borrow(ctx, &b, 9, mustDate(t, "2026-08-01"), dateutil.Date{})
		assert.ErrorIs(t, err, ErrEndDateRequired)
	})

	t.Run("无剩余副本", func(t *testing.T) {
		single := makeBook(2, "单册书", 1)
		repo := &fakeRepo{loans: []Loan{
			{Book: book.Book{ID: 2}, Customer: customer.Customer{ID: 7}, EndDate: mustDate(t, "2026-09-01"), Status: StatusOpen},
		}}
		svc := NewService(repo)

		err := svc.Borrow(ctx, &single, 9, mustDate(t, "2026-08-01"), mustDate(t, "2026-08-15"))

		assert.ErrorIs(t, err, ErrNoAvailableCopies)
		assert.Empty(t, repo.created)
	})

	t.Run("该读者已借此书未还", func(t *testing.T) {
		repo := &fakeRepo{loans: []Loan{
			{Book: book.Book{ID: 1}, Customer: customer.Customer{ID: 7}, EndDate: mustDate(t, "2026-09-01"), Status: StatusOpen},
		}}
		svc := NewService(repo)

		err := svc.Borrow(ctx, &b, 7, mustDate(t, "2026-08-01"), mustDate(t, "2026-08-15"))

		assert.ErrorIs(t, err, ErrAlreadyBorrowed)
		assert.Empty(t, repo.created)
	})

	t.Run("后端校验冲突时透传错误", func(t *testing.T) {
		repo := &fakeRepo{createErr: ErrLoanConflict}
		svc := NewService(repo)

		err := svc.Borrow(ctx, &b, 9, mustDate(t, "2026-08-01"), mustDate(t, "2026-08-15"))

		assert.ErrorIs(t, err, ErrLoanConflict)
	})
}

// TestReturn 测试归还
func TestReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("正常归还", func(t *testing.T) {
		repo := &fakeRepo{loans: []Loan{
			{Book: book.Book{ID: 1}, Customer: customer.Customer{ID: 7, Email: "zhang@example.com"}, EndDate: mustDate(t, "2026-09-01"), Status: StatusOpen},
		}}
		svc := NewService(repo)

		err := svc.Return(ctx, Key{BookID: 1, CustomerID: 7}, "zhang@example.com")

		require.NoError(t, err)
		require.Len(t, repo.closedKeys, 1)
		assert.Equal(t, Key{BookID: 1, CustomerID: 7}, repo.closedKeys[0])
		// 在借校验按邮箱查借阅记录
		assert.Equal(t, []string{"zhang@example.com"}, repo.listedEmails)
	})

	t.Run("归还不存在的记录", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		err := svc.Return(ctx, Key{BookID: 1, CustomerID: 7}, "zhang@example.com")

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.closedKeys, "非法迁移不应发起网络请求")
	})

	t.Run("归还已归还的记录", func(t *testing.T) {
		repo := &fakeRepo{loans: []Loan{
			{Book: book.Book{ID: 1}, Customer: customer.Customer{ID: 7, Email: "zhang@example.com"}, EndDate: mustDate(t, "2026-09-01"), Status: StatusClosed},
		}}
		svc := NewService(repo)

		err := svc.Return(ctx, Key{BookID: 1, CustomerID: 7}, "zhang@example.com")

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.closedKeys)
	})
}
