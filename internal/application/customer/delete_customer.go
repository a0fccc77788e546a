package customer

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// DeleteCustomerUseCase 读者销档用例
// 有在借记录的读者不能销档，后端返回409，仓储层已映射为ErrHasOpenLoans
type DeleteCustomerUseCase struct {
	repo  customer.Repository
	cache *cache.Coordinator
}

// NewDeleteCustomerUseCase 创建读者销档用例
func NewDeleteCustomerUseCase(repo customer.Repository, coordinator *cache.Coordinator) *DeleteCustomerUseCase {
	return &DeleteCustomerUseCase{repo: repo, cache: coordinator}
}

// Execute 删除读者档案
func (uc *DeleteCustomerUseCase) Execute(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, cache.KindCustomers)
	return nil
}
