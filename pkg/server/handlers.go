package server

import (
	"Mivo/handler"
)

type Handlers struct {
	Danmu *handler.DanmuHandler
}
