package listview

import (
	"reflect"
	"testing"
)

// TestCompose_NoSearch 无搜索结果时展示默认分页数据
func TestCompose_NoSearch(t *testing.T) {
	defaults := []string{"a", "b", "c"}

	view := Compose(defaults, 30, 2, 3, nil)

	if !view.Paginated {
		t.Error("无搜索时期望Paginated=true")
	}
	if !reflect.DeepEqual(view.Items, defaults) {
		t.Errorf("期望展示默认数据%v，实际%v", defaults, view.Items)
	}
	if view.Total != 30 {
		t.Errorf("期望总数30，实际%d", view.Total)
	}
	if view.Page != 2 || view.PageSize != 3 {
		t.Errorf("期望页码2/页大小3，实际%d/%d", view.Page, view.PageSize)
	}
}

// TestCompose_SearchReplaces 搜索结果非空时整体替换默认数据并禁用分页
func TestCompose_SearchReplaces(t *testing.T) {
	defaults := []string{"a", "b", "c"}
	results := []string{"x", "y"}

	view := Compose(defaults, 30, 2, 3, results)

	if view.Paginated {
		t.Error("有搜索结果时期望Paginated=false")
	}
	if !reflect.DeepEqual(view.Items, results) {
		t.Errorf("期望展示搜索结果%v，实际%v", results, view.Items)
	}
	if view.Total != 2 {
		t.Errorf("搜索模式下总数应为结果数2，实际%d", view.Total)
	}
	if view.Page != 1 {
		t.Errorf("搜索模式下页码应固定为1，实际%d", view.Page)
	}
}

// TestCompose_EmptySearch 搜索结果为空切片时等同于无搜索
func TestCompose_EmptySearch(t *testing.T) {
	defaults := []int{1, 2, 3}

	view := Compose(defaults, 3, 1, 10, []int{})

	if !view.Paginated {
		t.Error("搜索结果为空时期望回落到默认分页数据")
	}
	if !reflect.DeepEqual(view.Items, defaults) {
		t.Errorf("期望展示默认数据%v，实际%v", defaults, view.Items)
	}
}
