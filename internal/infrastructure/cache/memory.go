package cache

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore 进程内缓存存储
// 单实例部署的默认选择，读多写少，用读写锁
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore 创建进程内缓存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

// Get 读取条目
func (s *MemoryStore) Get(ctx context.Context, key Key) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key.String()]
	if !ok {
		return nil, nil
	}
	// 拷贝一份，避免调用方持有的指针被后续Set影响
	copied := *entry
	return &copied, nil
}

// Set 写入条目
func (s *MemoryStore) Set(ctx context.Context, key Key, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	s.entries[key.String()] = &copied
	return nil
}

// DeleteKind 删除某类别下的全部条目
func (s *MemoryStore) DeleteKind(ctx context.Context, kind Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := string(kind) + "?"
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
	return nil
}
