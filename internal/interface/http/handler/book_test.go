package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/library-console/internal/application/book"
	appcategory "github.com/xiebiao/library-console/internal/application/category"
	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/category"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/pkg/dateutil"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 图书接口测试
//
// 用桩仓储替代远端后端，验证的是HTTP层的行为：
// 路由、参数绑定、错误码映射、分类名称翻译。

type stubBookRepo struct {
	books    []book.Book
	addErr   error
	lastAdd  *book.Book
	searched string
}

func (s *stubBookRepo) SearchByTitle(ctx context.Context, keyword string) ([]book.Book, error) {
	s.searched = keyword
	if keyword == "" {
		return s.books, nil
	}
	var matched []book.Book
	for _, b := range s.books {
		if strings.Contains(b.Title, keyword) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (s *stubBookRepo) SearchByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for i := range s.books {
		if s.books[i].ISBN == isbn {
			return &s.books[i], nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *stubBookRepo) Add(ctx context.Context, b *book.Book) (*book.Book, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.lastAdd = b
	created := *b
	created.ID = 101
	return &created, nil
}

func (s *stubBookRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	return b, nil
}

func (s *stubBookRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type stubCategoryRepo struct{}

func (s *stubCategoryRepo) ListAll(ctx context.Context) ([]category.Category, error) {
	return []category.Category{
		{Code: "T", Label: "技术"},
		{Code: "W", Label: "文学"},
	}, nil
}

func newBookRouter(repo *stubBookRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	coordinator := cache.NewCoordinator(cache.NewMemoryStore(), time.Minute)
	categoriesUseCase := appcategory.NewListCategoriesUseCase(&stubCategoryRepo{}, coordinator)
	h := NewBookHandler(
		appbook.NewSearchBooksUseCase(repo, coordinator),
		appbook.NewSaveBookUseCase(repo, coordinator),
		appbook.NewDeleteBookUseCase(repo, coordinator),
		categoriesUseCase,
	)

	r := gin.New()
	r.GET("/api/v1/books", h.List)
	r.GET("/api/v1/books/by-isbn", h.SearchByISBN)
	r.POST("/api/v1/books", h.Add)
	r.DELETE("/api/v1/books/:id", h.Delete)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// pageView 列表接口的分页视图
type pageView struct {
	List      []map[string]interface{} `json:"list"`
	Total     int64                    `json:"total"`
	Page      int                      `json:"page"`
	PageSize  int                      `json:"page_size"`
	Paginated bool                     `json:"paginated"`
}

func decodePage(t *testing.T, resp envelope) pageView {
	t.Helper()
	var page pageView
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	return page
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) envelope {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "信封模式下HTTP状态码固定200")

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testBook(id int64, title, isbn, code string) book.Book {
	return book.Book{
		ID:           id,
		Title:        title,
		ISBN:         isbn,
		Author:       "作者",
		ReleaseDate:  dateutil.New(2020, time.January, 1),
		TotalCopies:  3,
		CategoryCode: code,
	}
}

func TestBookHandler_List(t *testing.T) {
	repo := &stubBookRepo{books: []book.Book{
		testBook(1, "Go语言实战", "9787115428028", "T"),
		testBook(2, "活着", "9787506365437", "W"),
	}}
	r := newBookRouter(repo)

	t.Run("默认列表走分页模式", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books", nil)

		assert.Equal(t, 0, resp.Code)
		page := decodePage(t, resp)
		require.Len(t, page.List, 2)
		assert.True(t, page.Paginated, "无搜索时分页控件可用")
		assert.Equal(t, "", repo.searched)
	})

	t.Run("书名搜索整页替换并禁用分页", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books?title=Go", nil)

		assert.Equal(t, 0, resp.Code)
		page := decodePage(t, resp)
		require.Len(t, page.List, 1)
		assert.Equal(t, "Go语言实战", page.List[0]["title"])
		assert.False(t, page.Paginated, "搜索结果不分页")
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, "Go", repo.searched)
	})

	t.Run("分类编码翻译为展示名称", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books", nil)

		page := decodePage(t, resp)
		require.Len(t, page.List, 2)
		assert.Equal(t, "技术", page.List[0]["categoryLabel"])
		assert.Equal(t, "文学", page.List[1]["categoryLabel"])
	})

	t.Run("日期同时输出线上格式和展示格式", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books", nil)

		page := decodePage(t, resp)
		require.Len(t, page.List, 2)
		assert.Equal(t, "2020-01-01", page.List[0]["releaseDate"])
		assert.Equal(t, "01/01/2020", page.List[0]["releaseDateDisplay"])
	})
}

func TestBookHandler_SearchByISBN(t *testing.T) {
	repo := &stubBookRepo{books: []book.Book{
		testBook(1, "Go语言实战", "9787115428028", "T"),
	}}
	r := newBookRouter(repo)

	t.Run("命中返回单本图书", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books/by-isbn?isbn=9787115428028", nil)

		assert.Equal(t, 0, resp.Code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "Go语言实战", data["title"])
	})

	t.Run("未找到返回图书不存在错误码", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books/by-isbn?isbn=0000000000", nil)

		assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
	})

	t.Run("缺少isbn参数返回校验错误", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodGet, "/api/v1/books/by-isbn", nil)

		assert.Equal(t, apperrors.ErrCodeValidation, resp.Code)
	})
}

func TestBookHandler_Add(t *testing.T) {
	t.Run("正常新增", func(t *testing.T) {
		repo := &stubBookRepo{}
		r := newBookRouter(repo)

		resp := doRequest(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
			"title":        "Go语言实战",
			"isbn":         "9787115428028",
			"author":       "威廉·肯尼迪",
			"releaseDate":  "2017-03-01",
			"totalCopies":  3,
			"categoryCode": "T",
		})

		assert.Equal(t, 0, resp.Code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, float64(101), data["id"], "应返回后端分配的ID")
		require.NotNil(t, repo.lastAdd)
		assert.Equal(t, "9787115428028", repo.lastAdd.ISBN)
	})

	t.Run("缺少必填字段返回绑定错误", func(t *testing.T) {
		repo := &stubBookRepo{}
		r := newBookRouter(repo)

		resp := doRequest(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
			"isbn": "9787115428028",
		})

		assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
		assert.Nil(t, repo.lastAdd, "校验失败不应调用后端")
	})

	t.Run("ISBN冲突透传冲突错误码", func(t *testing.T) {
		repo := &stubBookRepo{addErr: book.ErrISBNDuplicate}
		r := newBookRouter(repo)

		resp := doRequest(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
			"title":        "Go语言实战",
			"isbn":         "9787115428028",
			"author":       "威廉·肯尼迪",
			"releaseDate":  "2017-03-01",
			"totalCopies":  3,
			"categoryCode": "T",
		})

		assert.Equal(t, apperrors.ErrCodeDuplicateEntry, resp.Code)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	repo := &stubBookRepo{}
	r := newBookRouter(repo)

	t.Run("非数字ID返回校验错误", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodDelete, "/api/v1/books/abc", nil)

		assert.Equal(t, apperrors.ErrCodeValidation, resp.Code)
	})

	t.Run("正常删除", func(t *testing.T) {
		resp := doRequest(t, r, http.MethodDelete, "/api/v1/books/1", nil)

		assert.Equal(t, 0, resp.Code)
	})
}
