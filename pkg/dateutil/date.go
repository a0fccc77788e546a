// Package dateutil 提供与后端交换日期的编解码工具
//
// 约定：
// 1. 与后端交换的所有日期均为 YYYY-MM-DD（日历日期，不含时间）
// 2. 展示格式为 DD/MM/YYYY，时间戳展示为 DD/MM/YYYY HH:mm
// 3. 借阅结束日期为null时表示"在借"，用 *Date 表达
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// WireLayout 与后端交换的日期格式
	WireLayout = "2006-01-02"
	// DisplayLayout 展示用日期格式
	DisplayLayout = "02/01/2006"
	// DisplayTimeLayout 展示用日期时间格式
	DisplayTimeLayout = "02/01/2006 15:04"
)

// Date 日历日期（不含时间、不含时区语义）
// 零值表示"未设置"
type Date struct {
	t time.Time
}

// New 构造指定的日历日期
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today 当前日历日期
func Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// Parse 从 YYYY-MM-DD 解析日期
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(WireLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("解析日期失败 %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero 是否未设置
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// After 是否严格晚于other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Before 是否严格早于other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal 日期是否相同
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String 返回wire格式（YYYY-MM-DD）
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(WireLayout)
}

// Display 返回展示格式（DD/MM/YYYY）
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DisplayLayout)
}

// MarshalJSON 序列化为 "YYYY-MM-DD"，零值序列化为null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(WireLayout) + `"`), nil
}

// UnmarshalJSON 解析 "YYYY-MM-DD"，null与空串解析为零值
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DisplayTime 时间戳展示格式（DD/MM/YYYY HH:mm）
// 用于读者创建时间等含时间的字段
func DisplayTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayTimeLayout)
}

// ParseTimestamp 解析后端时间戳
// 后端（Spring）的LocalDateTime序列化不带时区，按本地时间解析；
// 同时兼容RFC3339
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("解析时间戳失败 %q: %w", s, err)
	}
	return t, nil
}
