package customer

import (
	"context"
	"strconv"

	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// ListCustomersUseCase 读者列表查询用例
// 读者是唯一由后端分页的实体（数据量大），缓存键里带页码和每页
// 数量，不同页各自缓存
type ListCustomersUseCase struct {
	repo  customer.Repository
	cache *cache.Coordinator
}

// NewListCustomersUseCase 创建读者列表查询用例
func NewListCustomersUseCase(repo customer.Repository, coordinator *cache.Coordinator) *ListCustomersUseCase {
	return &ListCustomersUseCase{repo: repo, cache: coordinator}
}

// ListCustomersResponse 列表查询结果
type ListCustomersResponse struct {
	Items []customer.Customer
	Total int64
}

// Execute 分页查询读者列表
func (uc *ListCustomersUseCase) Execute(ctx context.Context, params customer.ListParams) (*ListCustomersResponse, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	key := cache.Key{
		Kind: cache.KindCustomers,
		Query: cache.NormalizeQuery(map[string]string{
			"page": strconv.Itoa(params.Page),
			"size": strconv.Itoa(params.PageSize),
		}),
	}
	items, total, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]customer.Customer, int64, error) {
		page, err := uc.repo.PaginatedList(ctx, params)
		if err != nil {
			return nil, 0, err
		}
		return page.Items, page.Total, nil
	})
	if err != nil {
		return nil, err
	}
	return &ListCustomersResponse{Items: items, Total: total}, nil
}
