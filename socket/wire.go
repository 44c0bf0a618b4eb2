//go:build wireinject

package socket

import (
	"Mivo/socket/handler"
	"Mivo/socket/process"
	"Mivo/socket/room"
	"Mivo/socket/router"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	router.NewRouter,
	room.NewStorage,
	wire.Struct(new(handler.Handler), "*"),

	// process
	wire.Struct(new(process.SubServers), "*"),
	process.NewServer,
	process.NewHealthSubscribe,
	wire.Struct(new(process.DanmuSubscribe), "*"),

	handler.ProviderSet,

	// AppProvider
	wire.Struct(new(AppProvider), "*"),
)
