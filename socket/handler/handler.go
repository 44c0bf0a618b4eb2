package handler

import (
	"Mivo/config"
)

type Handler struct {
	Danmu  *DanmuChannel
	Config *config.Config
}
