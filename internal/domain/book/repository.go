package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层通过远端后端HTTP接口实现
// 2. 便于Mock测试，application层不感知网络细节
// 3. 后端搜索接口返回完整结果集（不分页），与读者仓储不同
type Repository interface {
	// SearchByTitle 按书名关键词搜索（后端模糊匹配）
	SearchByTitle(ctx context.Context, keyword string) ([]Book, error)

	// SearchByISBN 按ISBN精确查找
	SearchByISBN(ctx context.Context, isbn string) (*Book, error)

	// Add 新增图书，返回后端分配ID后的完整实体
	Add(ctx context.Context, b *Book) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete 删除图书
	Delete(ctx context.Context, id int64) error
}
