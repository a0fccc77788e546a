package loan

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/book"
	"github.com/xiebiao/library-console/pkg/dateutil"
)

// Service 借阅生命周期领域服务接口
// 设计说明:
// 1. 封装创建/归还的业务规则校验，本地先拦截明显非法的请求，
//    再发往后端（减少无效网络请求，也给操作员更准确的错误提示）
// 2. 本地快照可能滞后，后端是最终权威：本地校验通过但后端返回
//    409时，仍然报冲突错误，不重试
type Service interface {
	// Borrow 创建借阅
	// 业务规则:
	// - 借出/应还日期必填，应还日期必须晚于借出日期
	// - 图书必须有可借副本（馆藏扣除全馆在借后有剩余）
	// - 该读者没有这本书的在借记录
	Borrow(ctx context.Context, b *book.Book, customerID int64, begin, end dateutil.Date) error

	// Return 归还
	// 业务规则:只有在借状态的记录可以归还，归还已归还或不存在的
	// 记录属于非法状态迁移。在借校验要查该读者的借阅记录，
	// 后端以邮箱定位读者，所以除了(图书, 读者)二元组还要带邮箱
	Return(ctx context.Context, key Key, customerEmail string) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建借阅领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Borrow 创建借阅
func (s *service) Borrow(ctx context.Context, b *book.Book, customerID int64, begin, end dateutil.Date) error {
	// 1. 日期校验（不发网络请求就能拦截）
	if begin.IsZero() {
		return ErrBeginDateRequired
	}
	if end.IsZero() {
		return ErrEndDateRequired
	}
	if !end.After(begin) {
		return ErrEndBeforeBegin
	}

	// 2. 借阅资格校验（基于全馆在借快照）
	openLoans, err := s.repo.ListUntil(ctx, DefaultMaxEndDate())
	if err != nil {
		return err
	}
	if err := CheckEligibility(b, openLoans, customerID); err != nil {
		return err
	}

	// 3. 发往后端（后端做最终校验，快照滞后时可能仍返回冲突）
	return s.repo.Create(ctx, CreateParams{
		Key:       Key{BookID: b.ID, CustomerID: customerID},
		BeginDate: begin,
		EndDate:   end,
	})
}

// Return 归还
func (s *service) Return(ctx context.Context, key Key, customerEmail string) error {
	// 确认存在对应的在借记录（归还已归还/不存在的记录是非法迁移）
	loans, err := s.repo.ListByCustomer(ctx, customerEmail)
	if err != nil {
		return err
	}
	if !HasOpenLoan(loans, key) {
		return ErrInvalidTransition
	}

	return s.repo.Close(ctx, key)
}
