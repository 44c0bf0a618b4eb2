package process

import (
	"context"

	"Mivo/pkg/log"
	"Mivo/service"
	"Mivo/socket/room"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DanmuSubscribe 订阅弹幕事件并广播给本节点该视频的所有连接。
// 多节点各自订阅同一个 channel，广播只发本地房间，重复投递由客户端按 ID 去重。
type DanmuSubscribe struct {
	Redis *redis.Client
	Rooms *room.Storage
}

func (d *DanmuSubscribe) Init() error {
	return nil
}

func (d *DanmuSubscribe) Setup(ctx context.Context) error {

	log.L.Info("Start DanmuSubscribe", zap.String("channel", service.DanmuEventChannel))

	sub := d.Redis.Subscribe(ctx, service.DanmuEventChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			d.dispatch(msg.Payload)
		}
	}
}

func (d *DanmuSubscribe) dispatch(payload string) {
	videoID := gjson.Get(payload, "video_id").Int()
	if videoID <= 0 {
		log.L.Warn("danmu event missing video_id", zap.String("payload", payload))
		return
	}

	d.Rooms.Broadcast(videoID, []byte(payload))
}
