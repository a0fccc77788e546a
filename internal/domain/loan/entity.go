package loan

import (
	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/internal/domain/customer"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// Status 借阅状态
// 状态机只有一条合法迁移：OPEN → CLOSED（归还后不可重开）
type Status string

const (
	// StatusOpen 在借中
	StatusOpen Status = "OPEN"
	// StatusClosed 已归还（终态）
	StatusClosed Status = "CLOSED"
)

// Key 借阅业务标识
// 后端以(图书, 读者)二元组定位借阅记录：同一读者对同一本书
// 最多只有一条在借记录，这也是借阅资格规则的一部分
type Key struct {
	BookID     int64
	CustomerID int64
}

// Loan 借阅记录实体(聚合根)
// 设计说明:
// 1. 后端返回借阅时内嵌完整的图书与读者信息，控制台直接持有
// 2. EndDate为应还日期（创建时设定），不是实际归还日期
type Loan struct {
	Book      book.Book
	Customer  customer.Customer
	BeginDate dateutil.Date
	EndDate   dateutil.Date
	Status    Status
}

// Key 提取借阅业务标识
func (l *Loan) Key() Key {
	return Key{BookID: l.Book.ID, CustomerID: l.Customer.ID}
}

// IsOpen 是否在借中
func (l *Loan) IsOpen() bool {
	return l.Status == StatusOpen
}

// DefaultMaxEndDate 默认借阅列表的截止日期哨兵值
// 后端的列表接口按"应还日期早于maxEndDate"过滤，传这个极大值
// 等于"列出全部在借记录"，是前后端的既有约定，不能改
func DefaultMaxEndDate() dateutil.Date {
	d, _ := dateutil.Parse("3000-01-01")
	return d
}
