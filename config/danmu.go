package config

// Danmu 弹幕引擎参数
type Danmu struct {
	// 弹幕从出现到消失的基准窗口，单位秒
	WindowSeconds float64 `json:"window_seconds" yaml:"window_seconds"`

	// 默认视口几何，客户端不上报时用它计算行数
	ViewportHeight int `json:"viewport_height" yaml:"viewport_height"`
	LineHeight     int `json:"line_height" yaml:"line_height"`
	Padding        int `json:"padding" yaml:"padding"`

	// 单用户每分钟发送上限，超出返回 429
	RatePerMinute int `json:"rate_per_minute" yaml:"rate_per_minute"`
}

func DefaultDanmu() *Danmu {
	d := &Danmu{}
	d.fillDefaults()
	return d
}

func (d *Danmu) fillDefaults() {
	if d.WindowSeconds <= 0 {
		d.WindowSeconds = 8.0
	}
	if d.ViewportHeight <= 0 {
		d.ViewportHeight = 720
	}
	if d.LineHeight <= 0 {
		d.LineHeight = 40
	}
	if d.Padding <= 0 {
		d.Padding = 20
	}
	if d.RatePerMinute <= 0 {
		d.RatePerMinute = 20
	}
}
