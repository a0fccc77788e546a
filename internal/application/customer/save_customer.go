package customer

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// SaveCustomerUseCase 读者建档/修改用例
type SaveCustomerUseCase struct {
	repo  customer.Repository
	cache *cache.Coordinator
}

// NewSaveCustomerUseCase 创建读者保存用例
func NewSaveCustomerUseCase(repo customer.Repository, coordinator *cache.Coordinator) *SaveCustomerUseCase {
	return &SaveCustomerUseCase{repo: repo, cache: coordinator}
}

// Add 新建读者档案
func (uc *SaveCustomerUseCase) Add(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Add(ctx, c)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, cache.KindCustomers)
	return created, nil
}

// Update 修改读者档案
func (uc *SaveCustomerUseCase) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, cache.KindCustomers)
	return updated, nil
}
