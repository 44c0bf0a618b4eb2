package models

import (
	"time"

	"Mivo/engine"
)

// Danmu 弹幕表结构，除隐藏标记外创建后不再修改
type Danmu struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id,string"`                                      // 雪花ID，创建时分配
	VideoID   int64     `gorm:"column:video_id;not null;index:idx_video_id_timestamp" json:"video_id,string"` // 所属视频
	AuthorID  int64     `gorm:"column:author_id;not null;index:idx_author_id" json:"author_id,string"`      // 发送者
	Text      string    `gorm:"column:text;type:varchar(200);not null" json:"text"`                         // 弹幕内容，1-200 字符
	Timestamp float64   `gorm:"column:timestamp;not null;index:idx_video_id_timestamp" json:"timestamp"`    // 视频时间轴偏移，秒
	Motion    string    `gorm:"column:motion;type:varchar(10);not null" json:"motion"`                      // scroll / top / bottom
	Color     string    `gorm:"column:color;type:varchar(7);not null;default:'#FFFFFF'" json:"color"`
	Size      string    `gorm:"column:size;type:varchar(10);not null;default:'medium'" json:"size"`
	Speed     float64   `gorm:"column:speed;not null;default:1" json:"speed"`
	Hidden    bool      `gorm:"column:hidden;not null;default:false;index:idx_hidden" json:"-"` // 审核隐藏标记，隐藏后对所有读取不可见
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Danmu) TableName() string {
	return "danmus"
}

// ToEngine 转成引擎侧的只读记录
func (d *Danmu) ToEngine() *engine.Comment {
	return &engine.Comment{
		ID:        d.ID,
		VideoID:   d.VideoID,
		AuthorID:  d.AuthorID,
		Text:      d.Text,
		Timestamp: d.Timestamp,
		Motion:    engine.MotionClass(d.Motion),
		Color:     d.Color,
		Size:      engine.SizeClass(d.Size),
		Speed:     d.Speed,
		CreatedAt: d.CreatedAt.UnixMilli(),
	}
}
