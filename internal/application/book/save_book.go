package book

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// SaveBookUseCase 图书新增/修改用例
// 设计说明:
// 1. 本地校验 → 发往后端 → 成功后失效图书缓存
// 2. 失效只在后端确认成功后执行：失败的写操作不碰缓存，
//    页面上看到的还是上一次的有效数据
type SaveBookUseCase struct {
	repo  book.Repository
	cache *cache.Coordinator
}

// NewSaveBookUseCase 创建图书保存用例
func NewSaveBookUseCase(repo book.Repository, coordinator *cache.Coordinator) *SaveBookUseCase {
	return &SaveBookUseCase{repo: repo, cache: coordinator}
}

// Add 新增图书
func (uc *SaveBookUseCase) Add(ctx context.Context, b *book.Book) (*book.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Add(ctx, b)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, cache.KindBooks)
	return created, nil
}

// Update 修改图书
func (uc *SaveBookUseCase) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, b)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, cache.KindBooks)
	return updated, nil
}
