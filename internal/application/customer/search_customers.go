package customer

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// SearchCustomersUseCase 读者搜索用例
// 搜索接口返回完整结果集（不分页），前端据此禁用分页控件
type SearchCustomersUseCase struct {
	repo  customer.Repository
	cache *cache.Coordinator
}

// NewSearchCustomersUseCase 创建读者搜索用例
func NewSearchCustomersUseCase(repo customer.Repository, coordinator *cache.Coordinator) *SearchCustomersUseCase {
	return &SearchCustomersUseCase{repo: repo, cache: coordinator}
}

// ByEmail 按邮箱精确查询（命中一条或空结果）
func (uc *SearchCustomersUseCase) ByEmail(ctx context.Context, keyword string) ([]customer.Customer, error) {
	key := cache.Key{
		Kind:  cache.KindCustomers,
		Query: cache.NormalizeQuery(map[string]string{"email": keyword}),
	}
	items, _, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]customer.Customer, int64, error) {
		items, err := uc.repo.SearchByEmail(ctx, keyword)
		return items, int64(len(items)), err
	})
	return items, err
}

// ByLastName 按姓氏关键词搜索
func (uc *SearchCustomersUseCase) ByLastName(ctx context.Context, keyword string) ([]customer.Customer, error) {
	key := cache.Key{
		Kind:  cache.KindCustomers,
		Query: cache.NormalizeQuery(map[string]string{"lastName": keyword}),
	}
	items, _, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]customer.Customer, int64, error) {
		items, err := uc.repo.SearchByLastName(ctx, keyword)
		return items, int64(len(items)), err
	})
	return items, err
}
