package loan

import (
	"context"

	"github.com/xiebiao/library-console/pkg/dateutil"
)

// CreateParams 创建借阅的请求参数
type CreateParams struct {
	Key       Key
	BeginDate dateutil.Date
	EndDate   dateutil.Date
}

// Repository 借阅仓储接口(依赖倒置原则)
// 设计说明:
// 1. 后端没有"按图书查借阅"的接口，资格校验需要拉全量在借记录
//    （ListUntil + DefaultMaxEndDate哨兵）后在本地过滤
// 2. Close以(图书, 读者)二元组定位记录，归还日期由后端填写
type Repository interface {
	// ListUntil 查询应还日期早于maxEndDate的在借记录
	ListUntil(ctx context.Context, maxEndDate dateutil.Date) ([]Loan, error)

	// ListByCustomer 查询指定读者的全部借阅记录（含已归还）
	// 后端以邮箱定位读者
	ListByCustomer(ctx context.Context, customerEmail string) ([]Loan, error)

	// Create 创建借阅记录
	Create(ctx context.Context, params CreateParams) error

	// Close 归还（关闭借阅记录）
	Close(ctx context.Context, key Key) error
}
