package engine

// MotionClass 弹幕运动类型
type MotionClass string

const (
	MotionScroll MotionClass = "scroll" // 横向滚动
	MotionTop    MotionClass = "top"    // 顶部固定
	MotionBottom MotionClass = "bottom" // 底部固定
)

func (m MotionClass) Valid() bool {
	switch m {
	case MotionScroll, MotionTop, MotionBottom:
		return true
	}
	return false
}

// SizeClass 弹幕字号档位
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

func (s SizeClass) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Comment 引擎内的弹幕记录，只读
type Comment struct {
	ID        int64       `json:"id,string"`
	VideoID   int64       `json:"video_id,string"`
	AuthorID  int64       `json:"author_id,string"`
	Text      string      `json:"text"`
	Timestamp float64     `json:"timestamp"` // 视频时间轴偏移，秒
	Motion    MotionClass `json:"motion"`
	Color     string      `json:"color"`
	Size      SizeClass   `json:"size"`
	Speed     float64     `json:"speed"`
	CreatedAt int64       `json:"created_at"` // 服务端创建时间，Unix 毫秒
}

// less 时间轴排序：timestamp 升序，同刻按 created_at 再按 id
func less(a, b *Comment) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}
