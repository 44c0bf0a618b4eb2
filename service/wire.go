//go:build wireinject

package service

import (
	"Mivo/dao"
	"Mivo/dao/cache"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(DanmuService), "*"),
	wire.Bind(new(IDanmuService), new(*DanmuService)),

	NewRedisEventBus,
	wire.Bind(new(IEventPublisher), new(*RedisEventBus)),

	wire.Bind(new(IDanmuStore), new(*dao.Danmu)),
	wire.Bind(new(IVideoStore), new(*dao.Video)),
	wire.Bind(new(IUserStore), new(*dao.User)),
	wire.Bind(new(IStatsCache), new(*cache.DanmuStatsStorage)),
)
