package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xiebiao/library-console/internal/domain/book"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// BookAPI 图书仓储的后端实现
type BookAPI struct {
	client *Client
}

// NewBookAPI 创建图书仓储
func NewBookAPI(client *Client) book.Repository {
	return &BookAPI{client: client}
}

// SearchByTitle 按书名关键词搜索
func (a *BookAPI) SearchByTitle(ctx context.Context, keyword string) ([]book.Book, error) {
	query := url.Values{"title": {keyword}}
	raw, err := a.client.get(ctx, "book", "searchByTitle", "book/api/searchByTitle", query)
	if err != nil {
		return nil, err
	}
	return decodeBooks(raw)
}

// SearchByISBN 按ISBN精确查找
func (a *BookAPI) SearchByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	query := url.Values{"isbn": {isbn}}
	raw, err := a.client.get(ctx, "book", "searchByIsbn", "book/api/searchByIsbn", query)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}

	dto, err := DecodeOne[bookDTO](raw)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, book.ErrBookNotFound
	}
	b := dto.toDomain()
	return &b, nil
}

// Add 新增图书
func (a *BookAPI) Add(ctx context.Context, b *book.Book) (*book.Book, error) {
	raw, err := a.client.send(ctx, "book", "addBook", http.MethodPost, "book/api/addBook", bookToDTO(b))
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, book.ErrISBNDuplicate
		}
		return nil, err
	}
	return decodeBook(raw)
}

// Update 更新图书信息
func (a *BookAPI) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	raw, err := a.client.send(ctx, "book", "updateBook", http.MethodPut, "book/api/updateBook", bookToDTO(b))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		if apperrors.IsConflict(err) {
			return nil, book.ErrISBNDuplicate
		}
		return nil, err
	}
	return decodeBook(raw)
}

// Delete 删除图书
// 后端对存在在借记录的图书返回409
func (a *BookAPI) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("book/api/deleteBook/%d", id)
	_, err := a.client.send(ctx, "book", "deleteBook", http.MethodDelete, path, nil)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return book.ErrBookNotFound
		}
		if apperrors.IsConflict(err) {
			return book.ErrHasOpenLoans
		}
		return err
	}
	return nil
}

func decodeBooks(raw []byte) ([]book.Book, error) {
	dtos, _, err := DecodeList[bookDTO](raw)
	if err != nil {
		return nil, err
	}
	books := make([]book.Book, 0, len(dtos))
	for _, d := range dtos {
		books = append(books, d.toDomain())
	}
	return books, nil
}

func decodeBook(raw []byte) (*book.Book, error) {
	dto, err := DecodeOne[bookDTO](raw)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, book.ErrBookNotFound
	}
	b := dto.toDomain()
	return &b, nil
}
