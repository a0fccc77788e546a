// Package category 图书分类领域
//
// 分类是只读的参考数据（后端维护），控制台只用它填充下拉框和
// 展示图书的分类标签，所以这个包只有实体和一个读取接口。
package category

import (
	"context"
)

// Category 图书分类
// Code为业务标识（如"A"、"B"），Label为展示名称
type Category struct {
	Code  string
	Label string
}

// Repository 分类仓储接口(依赖倒置原则)
// 由domain层定义接口，infrastructure层通过远端后端HTTP接口实现
type Repository interface {
	// ListAll 获取全部分类
	ListAll(ctx context.Context) ([]Category, error)
}

// LabelOf 在分类列表中查找code对应的展示名称
// 找不到时返回code本身（数据不一致时页面仍可展示）
func LabelOf(categories []Category, code string) string {
	for _, c := range categories {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}
