package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore Redis缓存存储
// 多实例部署时使用：任意实例的写操作失效缓存后，其它实例立刻可见
//
// 键布局：{prefix}{kind}:{query}，按类别失效时用SCAN匹配前缀
type RedisStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

// NewRedisStore 创建Redis缓存存储
// retention为条目在Redis中的保留时间，必须远大于新鲜期：过期条目
// 还要承担stale-while-revalidate的兜底数据，不能到新鲜期即删
func NewRedisStore(client *redis.Client, prefix string, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &RedisStore{client: client, prefix: prefix, retention: retention}
}

func (s *RedisStore) redisKey(key Key) string {
	return s.prefix + string(key.Kind) + ":" + key.Query
}

// Get 读取条目
func (s *RedisStore) Get(ctx context.Context, key Key) (*Entry, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("读取缓存失败: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(val, &entry); err != nil {
		return nil, fmt.Errorf("反序列化缓存条目失败: %w", err)
	}
	return &entry, nil
}

// Set 写入条目
func (s *RedisStore) Set(ctx context.Context, key Key, entry *Entry) error {
	val, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("序列化缓存条目失败: %w", err)
	}

	if err := s.client.Set(ctx, s.redisKey(key), val, s.retention).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// DeleteKind 删除某类别下的全部条目
// 用SCAN+UNLINK而不是KEYS：KEYS会阻塞Redis，UNLINK异步回收内存
func (s *RedisStore) DeleteKind(ctx context.Context, kind Kind) error {
	pattern := s.prefix + string(kind) + ":*"

	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := s.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("删除缓存失败: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存键失败: %w", err)
	}
	if len(keys) > 0 {
		if err := s.client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
	}
	return nil
}
