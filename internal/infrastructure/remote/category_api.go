package remote

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/category"
)

// CategoryAPI 分类仓储的后端实现
type CategoryAPI struct {
	client *Client
}

// NewCategoryAPI 创建分类仓储
func NewCategoryAPI(client *Client) category.Repository {
	return &CategoryAPI{client: client}
}

// ListAll 获取全部分类
func (a *CategoryAPI) ListAll(ctx context.Context) ([]category.Category, error) {
	raw, err := a.client.get(ctx, "category", "allCategories", "category/api/allCategories", nil)
	if err != nil {
		return nil, err
	}

	dtos, _, err := DecodeList[categoryDTO](raw)
	if err != nil {
		return nil, err
	}

	categories := make([]category.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, d.toDomain())
	}
	return categories, nil
}
