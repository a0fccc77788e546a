package loan

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// CreateLoanUseCase 创建借阅用例
// 设计说明:
// 1. 请求只带bookId，图书详情从图书仓储取（资格校验需要馆藏数）
// 2. 创建成功后同时失效借阅和图书两个缓存类别：这本书的可借数
//    变了，图书列表的缓存数据已经失真
type CreateLoanUseCase struct {
	loanService loan.Service
	bookRepo    book.Repository
	cache       *cache.Coordinator
}

// NewCreateLoanUseCase 创建借阅用例
func NewCreateLoanUseCase(loanService loan.Service, bookRepo book.Repository, coordinator *cache.Coordinator) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanService: loanService,
		bookRepo:    bookRepo,
		cache:       coordinator,
	}
}

// CreateLoanRequest 创建借阅请求
type CreateLoanRequest struct {
	BookID     int64
	CustomerID int64
	BeginDate  dateutil.Date
	EndDate    dateutil.Date
}

// Execute 创建借阅
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) error {
	b, err := uc.findBook(ctx, req.BookID)
	if err != nil {
		return err
	}

	if err := uc.loanService.Borrow(ctx, b, req.CustomerID, req.BeginDate, req.EndDate); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, cache.KindLoans, cache.KindBooks)
	return nil
}

// findBook 按ID定位图书
// 后端没有按ID查图书的接口，空关键词的书名搜索返回全部图书，
// 在结果里找（图书总量是馆藏规模，全量拉取可以接受）
func (uc *CreateLoanUseCase) findBook(ctx context.Context, bookID int64) (*book.Book, error) {
	books, err := uc.bookRepo.SearchByTitle(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == bookID {
			return &books[i], nil
		}
	}
	return nil, book.ErrBookNotFound
}
