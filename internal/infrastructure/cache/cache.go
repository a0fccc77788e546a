// Package cache 列表缓存与失效协调
//
// 控制台的列表数据全部来自远端后端，同一个列表页反复刷新会产生
// 大量重复请求。缓存层以(数据类别, 规范化查询参数)为键缓存列表
// 响应，5分钟内直接命中；过了新鲜期的条目仍然先返回旧数据，同时
// 在后台刷新（stale-while-revalidate），页面永远不会因为缓存过期
// 而卡在加载态。
//
// 一致性规则：
// 1. 写操作成功后按类别整体失效（删缓存而不是改缓存，见DON'T）
// 2. 借阅的创建/归还会同时改变图书可借数，所以要同时失效
//    借阅和图书两个类别（由application层负责触发）
// 3. 后台刷新失败时保留上一次的有效数据
// 4. 并发刷新按发起顺序的序号做last-write-wins，旧响应不会覆盖新响应
//
// DON'T（错误做法）：
// - 写操作后原地更新缓存条目（并发写会导致新旧数据交错）
// - 刷新失败时清空条目（后端抖动时页面会退化成全量miss）
package cache

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/xiebiao/library-console/pkg/errors"
	"github.com/xiebiao/library-console/pkg/metrics"
)

// Kind 缓存数据类别（失效的粒度）
type Kind string

const (
	KindBooks      Kind = "books"
	KindCustomers  Kind = "customers"
	KindCategories Kind = "categories"
	KindLoans      Kind = "loans"
)

// Key 缓存键
// Query必须是规范化后的参数串（见NormalizeQuery），保证语义相同
// 的查询落在同一个条目上
type Key struct {
	Kind  Kind
	Query string
}

func (k Key) String() string {
	return string(k.Kind) + "?" + k.Query
}

// NormalizeQuery 规范化查询参数
// 按键名排序后拼接，参数顺序不同的等价查询得到相同的键
func NormalizeQuery(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}

// Entry 缓存条目
type Entry struct {
	Payload   []byte    `json:"payload"` // 列表数据的JSON
	Total     int64     `json:"total"`   // 总条数（分页场景）
	FetchedAt time.Time `json:"fetched_at"`
	Seq       uint64    `json:"seq"` // 发起拉取时的序号，用于last-write-wins
}

// Store 缓存存储接口
// 默认用进程内实现（memory.go），多实例部署时换Redis实现（redis.go）
type Store interface {
	// Get 读取条目，不存在时返回(nil, nil)
	Get(ctx context.Context, key Key) (*Entry, error)

	// Set 写入条目
	Set(ctx context.Context, key Key, entry *Entry) error

	// DeleteKind 删除某类别下的全部条目
	DeleteKind(ctx context.Context, kind Kind) error
}

// Coordinator 缓存协调器
type Coordinator struct {
	store    Store
	freshTTL time.Duration
	seq      atomic.Uint64

	mu         sync.Mutex
	refreshing map[string]bool // 正在后台刷新的键，避免重复刷新
}

// NewCoordinator 创建缓存协调器
func NewCoordinator(store Store, freshTTL time.Duration) *Coordinator {
	return &Coordinator{
		store:      store,
		freshTTL:   freshTTL,
		refreshing: make(map[string]bool),
	}
}

// FetchFunc 从后端拉取数据
type FetchFunc[T any] func(ctx context.Context) ([]T, int64, error)

// Lookup 读穿缓存
//
// 命中且新鲜 → 直接返回
// 命中但过期 → 返回旧数据，后台异步刷新
// 未命中     → 同步拉取后写入
func Lookup[T any](ctx context.Context, c *Coordinator, key Key, fetch FetchFunc[T]) ([]T, int64, error) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		// 缓存故障降级为直连后端，不让缓存层拖垮读路径
		log.Printf("[cache] 读取%s失败，降级直连: %v", key, err)
		entry = nil
	}

	if entry != nil {
		items, decodeErr := decodeEntry[T](entry)
		if decodeErr == nil {
			if time.Since(entry.FetchedAt) < c.freshTTL {
				metrics.ObserveCacheLookup(string(key.Kind), "hit")
				return items, entry.Total, nil
			}
			// 过期：旧数据先用，后台刷新
			metrics.ObserveCacheLookup(string(key.Kind), "stale")
			refreshAsync(c, key, fetch)
			return items, entry.Total, nil
		}
		log.Printf("[cache] 条目%s损坏，按miss处理: %v", key, decodeErr)
	}

	metrics.ObserveCacheLookup(string(key.Kind), "miss")
	return fetchAndStore(ctx, c, key, fetch)
}

// Invalidate 按类别失效
// 写操作成功后调用；失效哪些类别由调用方决定（借阅变更要同时
// 失效loans和books）
func (c *Coordinator) Invalidate(ctx context.Context, kinds ...Kind) {
	for _, kind := range kinds {
		if err := c.store.DeleteKind(ctx, kind); err != nil {
			// 失效失败只记日志：条目还有新鲜期兜底，过期后会自动刷新
			log.Printf("[cache] 失效%s失败: %v", kind, err)
			continue
		}
		metrics.ObserveCacheInvalidation(string(kind))
	}
}

// refreshAsync 后台刷新过期条目
// 同一个键同时只有一个刷新在跑；刷新失败保留旧数据
func refreshAsync[T any](c *Coordinator, key Key, fetch FetchFunc[T]) {
	c.mu.Lock()
	if c.refreshing[key.String()] {
		c.mu.Unlock()
		return
	}
	c.refreshing[key.String()] = true
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, key.String())
			c.mu.Unlock()
		}()

		// 刷新脱离请求生命周期，用独立的超时
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if _, _, err := fetchAndStore(ctx, c, key, fetch); err != nil {
			log.Printf("[cache] 后台刷新%s失败，保留旧数据: %v", key, err)
		}
	}()
}

// fetchAndStore 拉取并写入
// 序号在发起拉取前分配，写入时只允许覆盖序号更小的条目，
// 保证慢的旧响应不会盖掉快的新响应
func fetchAndStore[T any](ctx context.Context, c *Coordinator, key Key, fetch FetchFunc[T]) ([]T, int64, error) {
	seq := c.seq.Add(1)

	items, total, err := fetch(ctx)
	if err != nil {
		return nil, 0, err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeInternal, "序列化缓存条目失败")
	}
	entry := &Entry{
		Payload:   payload,
		Total:     total,
		FetchedAt: time.Now(),
		Seq:       seq,
	}

	existing, _ := c.store.Get(ctx, key)
	if existing != nil && existing.Seq > seq {
		// 已有更新的数据，放弃本次写入
		return items, total, nil
	}
	if err := c.store.Set(ctx, key, entry); err != nil {
		// 写缓存失败不影响本次读取结果
		log.Printf("[cache] 写入%s失败: %v", key, err)
	}
	return items, total, nil
}

func decodeEntry[T any](entry *Entry) ([]T, error) {
	var items []T
	if err := json.Unmarshal(entry.Payload, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
