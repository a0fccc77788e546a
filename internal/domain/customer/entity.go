package customer

import (
	"regexp"
	"strings"

	"github.com/xiebiao/library-console/pkg/dateutil"
)

// Customer 读者实体(聚合根)
// 设计说明:
// 1. 邮箱作为业务唯一标识（后端保证唯一性，重复时返回409）
// 2. CreationDate由后端在建档时生成，控制台只读展示
type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	Job          string
	Address      string
	Email        string
	CreationDate dateutil.Date // 建档日期
}

// emailPattern 简单邮箱格式校验（严格校验交给后端）
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate 本地校验（在发往后端之前执行）
// 业务规则:
// - 姓、名、邮箱必填
// - 邮箱格式必须合法
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrLastNameRequired
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(c.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// FullName 展示用全名
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// EmailMessage 发送给读者的邮件（逾期提醒等）
// 实际投递由后端的邮件服务完成，控制台只负责内容校验和转发
type EmailMessage struct {
	Subject string
	Content string
}

// Validate 邮件内容校验
func (m *EmailMessage) Validate() error {
	if strings.TrimSpace(m.Subject) == "" {
		return ErrEmailSubjectRequired
	}
	if strings.TrimSpace(m.Content) == "" {
		return ErrEmailContentRequired
	}
	return nil
}
