package customer

import (
	"context"
)

// Page 分页结果
// Total为后端统计的满足条件的总条数（用于分页控件），而非当前页条数
type Page struct {
	Items []Customer
	Total int64
}

// ListParams 分页查询参数
type ListParams struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// Repository 读者仓储接口(依赖倒置原则)
// 设计说明:
// 1. 读者列表由后端分页（数据量大），搜索接口返回完整结果集（不分页）
// 2. SendEmail虽然不是CRUD操作，但收件人属于读者聚合，放在同一仓储
type Repository interface {
	// PaginatedList 分页查询读者列表
	PaginatedList(ctx context.Context, params ListParams) (*Page, error)

	// SearchByEmail 按邮箱精确查询（命中一条或空结果，不报错）
	SearchByEmail(ctx context.Context, email string) ([]Customer, error)

	// SearchByLastName 按姓氏关键词搜索
	SearchByLastName(ctx context.Context, keyword string) ([]Customer, error)

	// Add 新增读者，返回后端分配ID后的完整实体
	Add(ctx context.Context, c *Customer) (*Customer, error)

	// Update 更新读者信息
	Update(ctx context.Context, c *Customer) (*Customer, error)

	// Delete 删除读者
	Delete(ctx context.Context, id int64) error

	// SendEmail 给指定读者发送邮件（由后端邮件服务投递）
	SendEmail(ctx context.Context, customerID int64, msg EmailMessage) error
}
