// Package listview 列表视图合成
//
// 控制台的列表页同时维护两份数据：默认分页数据和搜索结果。
// 视图合成规则很简单但容易写错：
//   - 搜索结果非空时，完全替换默认分页数据展示，并禁用分页控件
//     （搜索接口返回的是完整结果集，不分页）
//   - 搜索结果为空时，展示默认分页数据，分页控件可用
//
// 把这条规则收敛到一个泛型函数里，三个实体列表（图书/读者/借阅）共用。
package listview

// View 合成后的列表视图
type View[T any] struct {
	Items     []T   // 实际展示的条目
	Total     int64 // 总条数（分页模式下为后端总数，搜索模式下为结果数）
	Page      int   // 当前页码（从1开始，搜索模式下固定为1）
	PageSize  int
	Paginated bool // false表示搜索模式，前端应禁用分页控件
}

// Compose 合成列表视图
//
// defaultItems/total/page/pageSize 为默认分页数据，
// searchResults 为当前搜索结果（nil或空切片表示无搜索）
func Compose[T any](defaultItems []T, total int64, page, pageSize int, searchResults []T) View[T] {
	if len(searchResults) > 0 {
		return View[T]{
			Items:     searchResults,
			Total:     int64(len(searchResults)),
			Page:      1,
			PageSize:  len(searchResults),
			Paginated: false,
		}
	}
	return View[T]{
		Items:     defaultItems,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		Paginated: true,
	}
}
