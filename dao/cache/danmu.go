package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const danmuStatsKey = "danmu:stats:%d" // hash: motion -> count

// DanmuStatsStorage 单视频弹幕计数缓存。
// 创建和隐藏时增减，读取时缓存缺失再回源数据库。
type DanmuStatsStorage struct {
	redis *redis.Client
}

func NewDanmuStatsStorage(rds *redis.Client) *DanmuStatsStorage {
	return &DanmuStatsStorage{redis: rds}
}

func (s *DanmuStatsStorage) key(videoID int64) string {
	return fmt.Sprintf(danmuStatsKey, videoID)
}

func (s *DanmuStatsStorage) Incr(ctx context.Context, videoID int64, motion string) error {
	return s.redis.HIncrBy(ctx, s.key(videoID), motion, 1).Err()
}

func (s *DanmuStatsStorage) Decr(ctx context.Context, videoID int64, motion string) error {
	return s.redis.HIncrBy(ctx, s.key(videoID), motion, -1).Err()
}

// Get 返回 motion -> count，缓存不存在时 ok=false
func (s *DanmuStatsStorage) Get(ctx context.Context, videoID int64) (map[string]int64, bool, error) {
	vals, err := s.redis.HGetAll(ctx, s.key(videoID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(vals) == 0 {
		return nil, false, nil
	}

	result := make(map[string]int64, len(vals))
	for motion, v := range vals {
		var n int64
		if err := scanInt(v, &n); err == nil {
			result[motion] = n
		}
	}
	return result, true, nil
}

// Fill 用数据库统计回填缓存
func (s *DanmuStatsStorage) Fill(ctx context.Context, videoID int64, counts map[string]int64) error {
	if len(counts) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(counts))
	for motion, n := range counts {
		fields[motion] = n
	}
	return s.redis.HSet(ctx, s.key(videoID), fields).Err()
}
