package engine

import (
	"testing"
)

func mkComment(id int64, ts float64, createdAt int64) *Comment {
	return &Comment{
		ID:        id,
		VideoID:   1,
		AuthorID:  100,
		Text:      "hi",
		Timestamp: ts,
		Motion:    MotionScroll,
		Color:     "#FFFFFF",
		Size:      SizeMedium,
		Speed:     1.0,
		CreatedAt: createdAt,
	}
}

// 窗口边界：起点闭，终点开
func TestTimeline_ActiveAt_Boundaries(t *testing.T) {
	tl := NewTimeline(8.0)
	tl.Add(mkComment(1, 10.0, 1))

	cases := []struct {
		now    float64
		active bool
	}{
		{10.0, true},   // 恰好到达
		{17.999, true}, // 临近窗口末端
		{18.0, false},  // 窗口终点不含
		{9.999, false}, // 还没到
		{13.0, true},
	}

	for _, c := range cases {
		got := tl.ActiveAt(c.now)
		if (len(got) == 1) != c.active {
			t.Fatalf("now=%v: expected active=%v, got %d comments", c.now, c.active, len(got))
		}
	}
}

// 同一时间戳的弹幕按 created_at 再按 id 排序
func TestTimeline_DeterministicOrder(t *testing.T) {
	tl := NewTimeline(8.0)
	tl.Add(mkComment(3, 5.0, 200))
	tl.Add(mkComment(2, 5.0, 100))
	tl.Add(mkComment(1, 5.0, 100))
	tl.Add(mkComment(9, 4.0, 999))

	got := tl.ActiveAt(5.0)
	want := []int64{9, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
		}
	}
}

func TestTimeline_AddDedup(t *testing.T) {
	tl := NewTimeline(8.0)
	if !tl.Add(mkComment(1, 3.0, 1)) {
		t.Fatal("first add should succeed")
	}
	if tl.Add(mkComment(1, 3.0, 1)) {
		t.Fatal("duplicate add should be rejected")
	}
	if tl.Len() != 1 {
		t.Fatalf("expected len 1, got %d", tl.Len())
	}
}

func TestTimeline_Remove(t *testing.T) {
	tl := NewTimeline(8.0)
	tl.Add(mkComment(1, 5.0, 10))
	tl.Add(mkComment(2, 5.0, 10)) // 与 1 同序位，只差 id
	tl.Add(mkComment(3, 6.0, 11))

	if !tl.Remove(2) {
		t.Fatal("remove existing comment should succeed")
	}
	if tl.Remove(2) {
		t.Fatal("second remove should report missing")
	}

	got := tl.ActiveAt(6.0)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected comments after remove: %+v", got)
	}
}

// 播放时间回退后按新位置查询，不依赖单调前进
func TestTimeline_BackwardLookup(t *testing.T) {
	tl := NewTimeline(8.0)
	tl.Add(mkComment(1, 5.0, 1))
	tl.Add(mkComment(2, 40.0, 2))

	if got := tl.ActiveAt(45.0); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("at t=45 expected only comment 2, got %+v", got)
	}
	if got := tl.ActiveAt(6.0); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("at t=6 expected only comment 1, got %+v", got)
	}
}
