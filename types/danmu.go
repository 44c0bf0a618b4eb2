package types

import (
	"time"

	"Mivo/engine"
)

// CreateDanmuRequest 发送弹幕请求
type CreateDanmuRequest struct {
	Text      string  `json:"text" binding:"required,min=1,max=200"`
	Timestamp float64 `json:"timestamp"`          // 视频时间轴偏移，秒
	Color     string  `json:"color"`              // #RRGGBB，非法时落默认色
	Size      string  `json:"size"`               // small / medium / large
	Position  string  `json:"position"`           // scroll / top / bottom
	Speed     float64 `json:"speed"`              // 正数，默认 1.0
}

// DanmuResponse 弹幕响应
type DanmuResponse struct {
	ID        int64     `json:"id,string"`
	VideoID   int64     `json:"video_id,string"`
	AuthorID  int64     `json:"author_id,string"`
	Text      string    `json:"text"`
	Timestamp float64   `json:"timestamp"`
	Motion    string    `json:"position"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Speed     float64   `json:"speed"`
	CreatedAt time.Time `json:"created_at"`
}

// ListDanmuRequest 弹幕列表请求，since_id 为增量同步游标
type ListDanmuRequest struct {
	SinceID int64 `form:"since_id"`
}

type DanmuListResponse struct {
	Danmus []*DanmuResponse `json:"danmus"`
	// LastID 本页最大的弹幕 ID，断线重连时作为 since_id 传回
	LastID int64 `json:"last_id,string"`
}

// DanmuStatsResponse 单视频弹幕统计
type DanmuStatsResponse struct {
	VideoID int64 `json:"video_id,string"`
	Total   int64 `json:"total"`
	Scroll  int64 `json:"scroll"`
	Top     int64 `json:"top"`
	Bottom  int64 `json:"bottom"`
}

// DanmuEvent redis 广播与 ws 下发共用的事件载荷
type DanmuEvent struct {
	Kind    engine.EventKind `json:"kind"` // created / hidden
	VideoID int64            `json:"video_id,string"`
	Comment *engine.Comment  `json:"comment"`
}
