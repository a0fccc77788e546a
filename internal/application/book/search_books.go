package book

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
)

// SearchBooksUseCase 图书查询用例
// 设计说明:
// 1. 后端的书名搜索是模糊匹配，空关键词等于"列出全部图书"，
//    默认列表页就是这么加载的
// 2. 查询结果走缓存（5分钟新鲜期），写操作成功后按类别失效
type SearchBooksUseCase struct {
	repo  book.Repository
	cache *cache.Coordinator
}

// NewSearchBooksUseCase 创建图书查询用例
func NewSearchBooksUseCase(repo book.Repository, coordinator *cache.Coordinator) *SearchBooksUseCase {
	return &SearchBooksUseCase{repo: repo, cache: coordinator}
}

// ByTitle 按书名关键词搜索（空关键词返回全部）
func (uc *SearchBooksUseCase) ByTitle(ctx context.Context, keyword string) ([]book.Book, error) {
	key := cache.Key{
		Kind:  cache.KindBooks,
		Query: cache.NormalizeQuery(map[string]string{"title": keyword}),
	}
	books, _, err := cache.Lookup(ctx, uc.cache, key, func(ctx context.Context) ([]book.Book, int64, error) {
		books, err := uc.repo.SearchByTitle(ctx, keyword)
		return books, int64(len(books)), err
	})
	return books, err
}

// ByISBN 按ISBN精确查找
// 单实体查询不进缓存：ISBN查询用于录入前查重，必须拿最新数据
func (uc *SearchBooksUseCase) ByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return uc.repo.SearchByISBN(ctx, isbn)
}
