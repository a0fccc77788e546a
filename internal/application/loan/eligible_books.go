package loan

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/loan"
)

// EligibleBooksUseCase 可借图书查询用例
// 借阅录入界面的图书下拉框只展示"这位读者现在能借的书"：
// 有剩余副本，且该读者没有在借的同一本书
type EligibleBooksUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
}

// NewEligibleBooksUseCase 创建可借图书查询用例
func NewEligibleBooksUseCase(bookRepo book.Repository, loanRepo loan.Repository) *EligibleBooksUseCase {
	return &EligibleBooksUseCase{bookRepo: bookRepo, loanRepo: loanRepo}
}

// Execute 查询指定读者可借的图书
// 直连后端不走缓存：录入界面对准确性的要求高于速度，
// 过期快照会让操作员选中一本实际已借完的书
func (uc *EligibleBooksUseCase) Execute(ctx context.Context, customerID int64) ([]book.Book, error) {
	books, err := uc.bookRepo.SearchByTitle(ctx, "")
	if err != nil {
		return nil, err
	}

	openLoans, err := uc.loanRepo.ListUntil(ctx, loan.DefaultMaxEndDate())
	if err != nil {
		return nil, err
	}

	return loan.EligibleBooks(books, openLoans, customerID), nil
}
