package remote

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/xiebiao/library-console/pkg/errors"
)

// 响应归一化
//
// 远端后端的列表接口返回形态不统一，这是历史包袱：
//   - 搜索类接口直接返回裸JSON数组: [{...}, {...}]
//   - 分页类接口返回Spring Data的Page包装: {"content": [...], "totalElements": N}
//   - 无结果时可能返回204空响应体、"null"或空数组
//
// 归一化层把三种形态统一成 (items, total)，上层代码不再感知差异。
// 区分方式是嗅探首个非空白字节：'['为裸数组，'{'为分页包装。

// pageEnvelope Spring Data分页包装
type pageEnvelope struct {
	Content       json.RawMessage `json:"content"`
	TotalElements int64           `json:"totalElements"`
}

// DecodeList 归一化解析列表响应
// 返回的total：分页包装取totalElements，裸数组取元素个数
func DecodeList[T any](raw []byte) ([]T, int64, error) {
	raw = bytes.TrimSpace(raw)

	// 204空响应体或"null" → 空结果
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, 0, nil
	}

	switch raw[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "解析后端列表响应失败")
		}
		if items == nil {
			items = []T{}
		}
		return items, int64(len(items)), nil

	case '{':
		var envelope pageEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "解析后端分页响应失败")
		}
		items, _, err := DecodeList[T](envelope.Content)
		if err != nil {
			return nil, 0, err
		}
		return items, envelope.TotalElements, nil

	default:
		return nil, 0, apperrors.New(apperrors.ErrCodeInternal, "无法识别的后端响应格式")
	}
}

// DecodeOne 解析单实体响应
// 204空响应体或"null"返回(nil, nil)，由调用方决定是否视为未找到
func DecodeOne[T any](raw []byte) (*T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "解析后端响应失败")
	}
	return &item, nil
}
