package loan

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// CloseLoanUseCase 归还用例
// 归还成功后同样要失效借阅和图书两个缓存类别（可借数变了）
type CloseLoanUseCase struct {
	loanService loan.Service
	cache       *cache.Coordinator
}

// NewCloseLoanUseCase 创建归还用例
func NewCloseLoanUseCase(loanService loan.Service, coordinator *cache.Coordinator) *CloseLoanUseCase {
	return &CloseLoanUseCase{loanService: loanService, cache: coordinator}
}

// Execute 归还
// customerEmail用于在借校验（后端的借阅查询以邮箱定位读者）
func (uc *CloseLoanUseCase) Execute(ctx context.Context, key loan.Key, customerEmail string) error {
	if err := uc.loanService.Return(ctx, key, customerEmail); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, cache.KindLoans, cache.KindBooks)
	return nil
}
