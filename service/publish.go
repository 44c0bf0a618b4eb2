package service

import (
	"context"
	"encoding/json"

	"Mivo/types"

	"github.com/redis/go-redis/v9"
)

// DanmuEventChannel 弹幕变更的 redis 广播频道，
// 所有 conn-server 节点订阅后各自落到本地房间
const DanmuEventChannel = "danmu:events"

var _ IEventPublisher = (*RedisEventBus)(nil)

type RedisEventBus struct {
	Redis *redis.Client
}

func NewRedisEventBus(rds *redis.Client) *RedisEventBus {
	return &RedisEventBus{Redis: rds}
}

func (b *RedisEventBus) Publish(ctx context.Context, ev *types.DanmuEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.Redis.Publish(ctx, DanmuEventChannel, payload).Err()
}
