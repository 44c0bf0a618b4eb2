//go:build wireinject
// +build wireinject

package main

import (
	"Mivo/config"
	"Mivo/dao"
	"Mivo/dao/cache"
	"Mivo/handler"
	"Mivo/pkg/client"
	"Mivo/pkg/database"
	"Mivo/pkg/server"
	"Mivo/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		server.NewGinEngine,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.DanmuHandler), "*"),
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
