package book

import (
	"strings"

	"github.com/xiebiao/library-console/pkg/dateutil"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 数据权威在远端借阅后端，控制台持有的是后端状态的本地视图
// 2. TotalCopies为馆藏总副本数，可借数量需结合在借记录计算（见loan包）
// 3. ISBN作为业务唯一标识（后端保证唯一性，重复时返回409）
type Book struct {
	ID           int64
	Title        string
	ISBN         string
	Author       string
	ReleaseDate  dateutil.Date // 出版日期
	RegisterDate dateutil.Date // 入馆登记日期
	TotalCopies  int           // 馆藏总副本数
	CategoryCode string        // 分类编码（关联category包）
}

// Validate 本地校验（在发往后端之前执行，减少无效网络请求）
// 业务规则:
// - 书名、ISBN、作者、分类必填
// - 副本数不能为负数
// - 出版日期必填
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return ErrISBNRequired
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrAuthorRequired
	}
	if b.CategoryCode == "" {
		return ErrCategoryRequired
	}
	if b.TotalCopies < 0 {
		return ErrInvalidCopies
	}
	if b.ReleaseDate.IsZero() {
		return ErrReleaseDateRequired
	}
	return nil
}

// HasCopies 馆藏副本数是否大于0
// 注意：这不等于"可借"，可借还要求扣除在借数量后仍有剩余
func (b *Book) HasCopies() bool {
	return b.TotalCopies > 0
}
