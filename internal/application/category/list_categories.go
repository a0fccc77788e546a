package category

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// ListCategoriesUseCase 分类列表用例
// 分类是只读参考数据，没有写操作会失效它，靠新鲜期过期自动刷新
type ListCategoriesUseCase struct {
	repo  category.Repository
	cache *cache.Coordinator
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(repo category.Repository, coordinator *cache.Coordinator) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{repo: repo, cache: coordinator}
}

// Execute 获取全部分类
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]category.Category, error) {
	key := cache.Key{Kind: cache.KindCategories}
	categories, _, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]category.Category, int64, error) {
		categories, err := uc.repo.ListAll(ctx)
		return categories, int64(len(categories)), err
	})
	return categories, err
}
