package models

import "time"

// Video 视频表。上传转码由外部媒体管线负责，
// 这里只保留弹幕链路需要的字段。
type Video struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id,string"`
	AuthorID  int64     `gorm:"column:author_id;not null;index:idx_author_id" json:"author_id,string"`
	Title     string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	PlayURL   string    `gorm:"column:play_url;type:varchar(500)" json:"play_url"`
	Duration  float64   `gorm:"column:duration;default:0" json:"duration"` // 秒
	Status    int8      `gorm:"column:status;default:1" json:"status"`     // 1-正常 0-下架
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}
