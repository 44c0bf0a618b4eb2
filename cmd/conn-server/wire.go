//go:build wireinject
// +build wireinject

package main

import (
	"Mivo/config"
	"Mivo/dao"
	"Mivo/dao/cache"
	"Mivo/pkg/client"
	"Mivo/pkg/database"
	"Mivo/service"
	"Mivo/socket"

	"github.com/google/wire"
)

func InitSocketServer(cfg *config.Config) *socket.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		dao.ProviderSet,
		cache.ProviderSet,
		socket.ProviderSet,
		service.ProviderSet,
	)
	return nil
}
