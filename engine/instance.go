package engine

// Instance 一条正在展示的弹幕，会话私有，不落库。
// 弹幕离开窗口或会话销毁时随之释放。
type Instance struct {
	Comment *Comment `json:"comment"`
	Line    int      `json:"line"`

	// StartedAt 即弹幕时间轴上的窗口起点
	StartedAt float64 `json:"started_at"`

	// Duration 动画时长 = window / speed，speed 越大滚得越快
	Duration float64 `json:"duration"`
}

func newInstance(c *Comment, line int, window float64) *Instance {
	speed := c.Speed
	if speed <= 0 {
		speed = 1.0
	}
	return &Instance{
		Comment:   c,
		Line:      line,
		StartedAt: c.Timestamp,
		Duration:  window / speed,
	}
}

// Progress 滚动类弹幕的横向进度 [0,1]
func (i *Instance) Progress(now float64) float64 {
	if i.Duration <= 0 {
		return 1
	}
	p := (now - i.StartedAt) / i.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Alpha 固定类弹幕的透明度包络：前 10% 淡入，中间 80% 保持，后 10% 淡出
func (i *Instance) Alpha(now float64) float64 {
	p := i.Progress(now)
	switch {
	case p < 0.1:
		return p / 0.1
	case p > 0.9:
		return (1 - p) / 0.1
	default:
		return 1
	}
}
