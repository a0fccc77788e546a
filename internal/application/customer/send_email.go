package customer

import (
	"context"

	"github.com/xiebiao/library-console/internal/domain/customer"
)

// SendEmailUseCase 给读者发邮件用例（逾期提醒等）
// 实际投递由后端的邮件服务完成；发邮件不改变任何实体数据，
// 所以不触发缓存失效
type SendEmailUseCase struct {
	repo customer.Repository
}

// NewSendEmailUseCase 创建发邮件用例
func NewSendEmailUseCase(repo customer.Repository) *SendEmailUseCase {
	return &SendEmailUseCase{repo: repo}
}

// Execute 发送邮件
func (uc *SendEmailUseCase) Execute(ctx context.Context, customerID int64, msg customer.EmailMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return uc.repo.SendEmail(ctx, customerID, msg)
}
