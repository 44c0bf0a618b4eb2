package engine

import (
	"math/rand"
	"sort"
	"sync"
)

// Options 会话参数，零值取默认
type Options struct {
	Window         float64
	ViewportHeight int
	Padding        int
	LineHeight     int

	// Seed 行降级随机源的种子，测试用固定值保证可复现
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = DefaultWindowSeconds
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = 720
	}
	if o.LineHeight <= 0 {
		o.LineHeight = 40
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}

// Session 一次观看会话的弹幕状态：自己的播放时钟、时间轴索引、
// 行分配表和活跃实例表。会话之间不共享任何可变状态。
type Session struct {
	mu sync.Mutex

	videoID   int64
	timeline  *Timeline
	lanes     *LaneAllocator
	instances map[int64]*Instance

	now    float64
	paused bool
	closed bool

	onClose []func()
}

func NewSession(videoID int64, opts Options) *Session {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	return &Session{
		videoID:   videoID,
		timeline:  NewTimeline(opts.Window),
		lanes:     NewLaneAllocator(opts.ViewportHeight, opts.Padding, opts.LineHeight, rng),
		instances: make(map[int64]*Instance),
	}
}

func (s *Session) VideoID() int64 {
	return s.videoID
}

// Ingest 接收一条弹幕（快照或实时推送均走这里），按 ID 去重。
// 当前播放点已在其窗口内则立即上屏；窗口已过则只入索引不分配行。
func (s *Session) Ingest(c *Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || c == nil || c.VideoID != s.videoID {
		return false
	}
	if !s.timeline.Add(c) {
		return false
	}
	if c.Timestamp <= s.now && s.now < c.Timestamp+s.timeline.Window() {
		s.spawn(c)
	}
	return true
}

func (s *Session) IngestBatch(cs []*Comment) {
	for _, c := range cs {
		s.Ingest(c)
	}
}

// Remove 弹幕被隐藏或删除时立即移出会话，包括已上屏的实例
func (s *Session) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.timeline.Remove(id)
	if _, ok := s.instances[id]; ok {
		s.lanes.Release(id)
		delete(s.instances, id)
	}
}

// Consume 投递通道事件入口
func (s *Session) Consume(ev Event) {
	switch ev.Kind {
	case EventCreated:
		s.Ingest(ev.Comment)
	case EventHidden:
		if ev.Comment != nil {
			s.Remove(ev.Comment.ID)
		}
	}
}

// Tick 播放时钟推进到 now，单次遍历完成离场与进场，
// 保证同一条弹幕不会跨 tick 占两行或悬空。暂停期间不动。
func (s *Session) Tick(now float64) []*Instance {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if s.paused {
		return s.activeLocked()
	}
	return s.advanceLocked(now)
}

// Seek 播放位置跳变（快进/快退），按新位置整体重算活跃集。
// ActiveAt 是按位置二分而不是单向推进指针，所以与 Tick 同一条路径。
func (s *Session) Seek(now float64) []*Instance {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	return s.advanceLocked(now)
}

func (s *Session) advanceLocked(now float64) []*Instance {
	if now < 0 {
		now = 0
	}
	s.now = now

	active := s.timeline.ActiveAt(now)
	keep := make(map[int64]struct{}, len(active))
	for _, c := range active {
		keep[c.ID] = struct{}{}
	}

	// 离场：窗口不再覆盖当前播放点的先释放行
	for id := range s.instances {
		if _, ok := keep[id]; !ok {
			s.lanes.Release(id)
			delete(s.instances, id)
		}
	}

	// 进场：时间轴顺序分配，先到的占小行号
	for _, c := range active {
		if _, ok := s.instances[c.ID]; !ok {
			s.spawn(c)
		}
	}

	return s.activeLocked()
}

func (s *Session) spawn(c *Comment) {
	line := s.lanes.Assign(c.ID, c.Motion)
	s.instances[c.ID] = newInstance(c, line, s.timeline.Window())
}

// Pause 随视频暂停冻结播放时钟
func (s *Session) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *Session) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Session) PlaybackTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Active 当前活跃实例，按时间轴顺序返回
func (s *Session) Active() []*Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() []*Instance {
	out := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].Comment, out[j].Comment)
	})
	return out
}

// OnClose 注册销毁回调（取消订阅等），Close 时同步执行
func (s *Session) OnClose(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.onClose = append(s.onClose, fn)
	s.mu.Unlock()
}

// Close 幂等销毁：释放全部行与实例，执行注册的清理回调
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.instances = make(map[int64]*Instance)
	s.lanes.ReleaseAll()
	fns := s.onClose
	s.onClose = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
