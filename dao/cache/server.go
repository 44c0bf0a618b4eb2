package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const serverKey = "server:health"

// ServerStorage 各 conn-server 节点的心跳上报
type ServerStorage struct {
	redis *redis.Client
}

func NewServerStorage(rds *redis.Client) *ServerStorage {
	return &ServerStorage{redis: rds}
}

func (s *ServerStorage) Set(ctx context.Context, sid string, at int64) error {
	return s.redis.HSet(ctx, serverKey, sid, at).Err()
}

// All 最近 expire 秒内上报过的节点
func (s *ServerStorage) All(ctx context.Context, expire int64) []string {
	var servers []string

	now := time.Now().Unix()
	items, err := s.redis.HGetAll(ctx, serverKey).Result()
	if err != nil {
		return servers
	}

	for sid, v := range items {
		var at int64
		if err := scanInt(v, &at); err != nil {
			continue
		}
		if now-at <= expire {
			servers = append(servers, sid)
		}
	}

	return servers
}

func (s *ServerStorage) Del(ctx context.Context, sid string) error {
	return s.redis.HDel(ctx, serverKey, sid).Err()
}
