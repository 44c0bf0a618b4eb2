package engine

import "math/rand"

// LaneAllocator 会话内的弹幕行分配。
// 同一时刻一行只放一条弹幕；分区：顶部弹幕占上三分之一，
// 底部弹幕占下三分之一，滚动弹幕优先中段、满了再借整个行区。
type LaneAllocator struct {
	maxLines  int
	rng       *rand.Rand
	byLine    map[int]int64
	byComment map[int64]int
}

// NewLaneAllocator 行数由视口高度推出：(height - 2*padding) / lineHeight
func NewLaneAllocator(viewportHeight, padding, lineHeight int, rng *rand.Rand) *LaneAllocator {
	maxLines := 0
	if lineHeight > 0 {
		maxLines = (viewportHeight - 2*padding) / lineHeight
	}
	if maxLines < 1 {
		maxLines = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &LaneAllocator{
		maxLines:  maxLines,
		rng:       rng,
		byLine:    make(map[int]int64),
		byComment: make(map[int64]int),
	}
}

func (a *LaneAllocator) MaxLines() int {
	return a.maxLines
}

// zone 返回该运动类型的候选行区间 [lo, hi)
func (a *LaneAllocator) zone(motion MotionClass) (int, int) {
	third := a.maxLines / 3
	switch motion {
	case MotionTop:
		return 0, third
	case MotionBottom:
		return 2 * third, a.maxLines
	default:
		return third, 2 * third
	}
}

// Assign 为新进入窗口的弹幕分配行。
// 先在分区内取最小空闲行，分区满了扫整个行区，
// 全满时在分区内随机挑一行接受重叠，不丢弹幕。
// 同一条弹幕重复分配返回已有的行。
func (a *LaneAllocator) Assign(id int64, motion MotionClass) int {
	if line, ok := a.byComment[id]; ok {
		return line
	}

	lo, hi := a.zone(motion)

	line, ok := a.firstFree(lo, hi)
	if !ok {
		line, ok = a.firstFree(0, a.maxLines)
	}
	if !ok {
		// 降级：行区全满，分区内随机放置
		if hi <= lo {
			lo, hi = 0, a.maxLines
		}
		line = lo + a.rng.Intn(hi-lo)
		a.byComment[id] = line
		return line
	}

	a.byLine[line] = id
	a.byComment[id] = line
	return line
}

func (a *LaneAllocator) firstFree(lo, hi int) (int, bool) {
	for line := lo; line < hi; line++ {
		if _, busy := a.byLine[line]; !busy {
			return line, true
		}
	}
	return 0, false
}

// Release 弹幕离开窗口时归还行
func (a *LaneAllocator) Release(id int64) {
	line, ok := a.byComment[id]
	if !ok {
		return
	}
	delete(a.byComment, id)
	if owner, busy := a.byLine[line]; busy && owner == id {
		delete(a.byLine, line)
	}
}

func (a *LaneAllocator) ReleaseAll() {
	a.byLine = make(map[int]int64)
	a.byComment = make(map[int64]int)
}

func (a *LaneAllocator) Line(id int64) (int, bool) {
	line, ok := a.byComment[id]
	return line, ok
}
