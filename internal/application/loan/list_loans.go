package loan

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// ListLoansUseCase 借阅列表查询用例
// 设计说明:
// 1. 默认列表用3000-01-01哨兵值查询（等于"全部在借记录"），
//    操作员也可以传具体日期筛选即将到期的借阅
// 2. 按读者查询用于归还界面：操作员输入读者邮箱，列出该读者的
//    借阅记录（后端以邮箱定位读者）
type ListLoansUseCase struct {
	repo  loan.Repository
	cache *cache.Coordinator
}

// NewListLoansUseCase 创建借阅列表查询用例
func NewListLoansUseCase(repo loan.Repository, coordinator *cache.Coordinator) *ListLoansUseCase {
	return &ListLoansUseCase{repo: repo, cache: coordinator}
}

// ByMaxEndDate 查询应还日期早于指定日期的在借记录
// maxEndDate为零值时用哨兵值查询全部
func (uc *ListLoansUseCase) ByMaxEndDate(ctx context.Context, maxEndDate dateutil.Date) ([]loan.Loan, error) {
	if maxEndDate.IsZero() {
		maxEndDate = loan.DefaultMaxEndDate()
	}

	key := cache.Key{
		Kind:  cache.KindLoans,
		Query: cache.NormalizeQuery(map[string]string{"maxEndDate": maxEndDate.String()}),
	}
	loans, _, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]loan.Loan, int64, error) {
		loans, err := uc.repo.ListUntil(ctx, maxEndDate)
		return loans, int64(len(loans)), err
	})
	return loans, err
}

// ByCustomer 按读者邮箱查询借阅记录
func (uc *ListLoansUseCase) ByCustomer(ctx context.Context, customerEmail string) ([]loan.Loan, error) {
	key := cache.Key{
		Kind:  cache.KindLoans,
		Query: cache.NormalizeQuery(map[string]string{"email": customerEmail}),
	}
	loans, _, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]loan.Loan, int64, error) {
		loans, err := uc.repo.ListByCustomer(ctx, customerEmail)
		return loans, int64(len(loans)), err
	})
	return loans, err
}
