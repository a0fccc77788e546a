package book

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// DeleteBookUseCase 图书删除用例
// 有在借记录的图书不能删，后端返回409，仓储层已映射为ErrHasOpenLoans
type DeleteBookUseCase struct {
	repo  book.Repository
	cache *cache.Coordinator
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(repo book.Repository, coordinator *cache.Coordinator) *DeleteBookUseCase {
	return &DeleteBookUseCase{repo: repo, cache: coordinator}
}

// Execute 删除图书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, cache.KindBooks)
	return nil
}
