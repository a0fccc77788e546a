package dashboard

import (
	"context"
	"sync"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/domain/loan"
)

// OverviewUseCase 首页概览用例
// 四个统计数字来自四个不同的后端接口，串行要等四次往返，
// 并发拉取把首页加载时间压到单次往返
type OverviewUseCase struct {
	bookRepo     book.Repository
	customerRepo customer.Repository
	categoryRepo category.Repository
	loanRepo     loan.Repository
}

// NewOverviewUseCase 创建概览用例
func NewOverviewUseCase(
	bookRepo book.Repository,
	customerRepo customer.Repository,
	categoryRepo category.Repository,
	loanRepo loan.Repository,
) *OverviewUseCase {
	return &OverviewUseCase{
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		categoryRepo: categoryRepo,
		loanRepo:     loanRepo,
	}
}

// Overview 概览统计
type Overview struct {
	BookCount     int   `json:"book_count"`      // 馆藏图书种数
	CustomerCount int64 `json:"customer_count"`  // 在档读者数
	CategoryCount int   `json:"category_count"`  // 分类数
	OpenLoanCount int   `json:"open_loan_count"` // 在借记录数
}

// Execute 并发拉取四项统计
// 任何一项失败都让整个概览失败：首页展示残缺的数字比暂时
// 打不开更误导人
func (uc *OverviewUseCase) Execute(ctx context.Context) (*Overview, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		overview Overview
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)

	go func() {
		defer wg.Done()
		books, err := uc.bookRepo.SearchByTitle(ctx, "")
		if err != nil {
			fail(err)
			return
		}
		overview.BookCount = len(books)
	}()

	go func() {
		defer wg.Done()
		// 只要totalElements，拉第一页最小页即可
		page, err := uc.customerRepo.PaginatedList(ctx, customer.ListParams{Page: 1, PageSize: 1})
		if err != nil {
			fail(err)
			return
		}
		overview.CustomerCount = page.Total
	}()

	go func() {
		defer wg.Done()
		categories, err := uc.categoryRepo.ListAll(ctx)
		if err != nil {
			fail(err)
			return
		}
		overview.CategoryCount = len(categories)
	}()

	go func() {
		defer wg.Done()
		loans, err := uc.loanRepo.ListUntil(ctx, loan.DefaultMaxEndDate())
		if err != nil {
			fail(err)
			return
		}
		overview.OpenLoanCount = len(loans)
	}()

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &overview, nil
}
