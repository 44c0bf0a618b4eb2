package engine

import "sort"

const DefaultWindowSeconds = 8.0

// Timeline 按时间轴排序的弹幕索引。
// 每个播放 tick 都要查询一次活跃集，所以用二分定位窗口起点，
// 不依赖播放时间单调前进，回退 seek 直接重新定位。
type Timeline struct {
	window float64
	items  []*Comment
	byID   map[int64]*Comment
}

func NewTimeline(window float64) *Timeline {
	if window <= 0 {
		window = DefaultWindowSeconds
	}
	return &Timeline{
		window: window,
		byID:   make(map[int64]*Comment),
	}
}

func (t *Timeline) Window() float64 {
	return t.window
}

func (t *Timeline) Len() int {
	return len(t.items)
}

// Add 插入弹幕并保持有序，按 ID 去重
func (t *Timeline) Add(c *Comment) bool {
	if c == nil {
		return false
	}
	if _, ok := t.byID[c.ID]; ok {
		return false
	}

	idx := sort.Search(len(t.items), func(i int) bool {
		return less(c, t.items[i])
	})
	t.items = append(t.items, nil)
	copy(t.items[idx+1:], t.items[idx:])
	t.items[idx] = c
	t.byID[c.ID] = c
	return true
}

// Remove 按 ID 删除，不存在时返回 false
func (t *Timeline) Remove(id int64) bool {
	c, ok := t.byID[id]
	if !ok {
		return false
	}

	// 先二分到同序位置，再在相等区间内找到目标
	idx := sort.Search(len(t.items), func(i int) bool {
		return !less(t.items[i], c)
	})
	for idx < len(t.items) && t.items[idx].ID != id {
		idx++
	}
	if idx == len(t.items) {
		return false
	}

	t.items = append(t.items[:idx], t.items[idx+1:]...)
	delete(t.byID, id)
	return true
}

func (t *Timeline) Get(id int64) (*Comment, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// ActiveAt 返回在播放时间 now 处于展示窗口内的弹幕：
// timestamp <= now < timestamp + window，起点闭、终点开。
// 结果保持时间轴顺序。
func (t *Timeline) ActiveAt(now float64) []*Comment {
	if len(t.items) == 0 || now < 0 {
		return nil
	}

	// 第一个 timestamp > now-window 的位置
	lo := sort.Search(len(t.items), func(i int) bool {
		return t.items[i].Timestamp > now-t.window
	})

	var active []*Comment
	for i := lo; i < len(t.items); i++ {
		if t.items[i].Timestamp > now {
			break
		}
		active = append(active, t.items[i])
	}
	return active
}
