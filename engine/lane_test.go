package engine

import (
	"math/rand"
	"testing"
)

func newTestAllocator(t *testing.T, lines int) *LaneAllocator {
	t.Helper()
	// lineHeight=1, padding=0 -> maxLines = viewportHeight
	a := NewLaneAllocator(lines, 0, 1, rand.New(rand.NewSource(42)))
	if a.MaxLines() != lines {
		t.Fatalf("expected %d lines, got %d", lines, a.MaxLines())
	}
	return a
}

// 行数小于上限时任意两条同时活跃的弹幕不同行
func TestLaneAllocator_NoCollisionUnderCap(t *testing.T) {
	const maxLines = 18
	rng := rand.New(rand.NewSource(7))
	motions := []MotionClass{MotionScroll, MotionTop, MotionBottom}

	for round := 0; round < 200; round++ {
		a := newTestAllocator(t, maxLines)
		n := 1 + rng.Intn(maxLines-1) // 严格小于行数上限

		used := make(map[int]int64, n)
		for id := int64(1); id <= int64(n); id++ {
			line := a.Assign(id, motions[rng.Intn(len(motions))])
			if line < 0 || line >= maxLines {
				t.Fatalf("line %d out of range [0,%d)", line, maxLines)
			}
			if owner, busy := used[line]; busy {
				t.Fatalf("round %d: line %d assigned to both %d and %d", round, line, owner, id)
			}
			used[line] = id
		}
	}
}

// 顶部弹幕只要上三分之一有空行就必须落在那里
func TestLaneAllocator_TopZoneConfinement(t *testing.T) {
	const maxLines = 18
	a := newTestAllocator(t, maxLines)
	third := maxLines / 3

	for id := int64(1); id <= int64(third); id++ {
		line := a.Assign(id, MotionTop)
		if line < 0 || line >= third {
			t.Fatalf("top comment %d assigned line %d outside [0,%d)", id, line, third)
		}
	}

	// 区内满了才允许借用其它行
	line := a.Assign(100, MotionTop)
	if line < third {
		t.Fatalf("zone is full, expected spill outside [0,%d), got %d", third, line)
	}
}

// 滚动弹幕优先中段
func TestLaneAllocator_ScrollPrefersMiddle(t *testing.T) {
	const maxLines = 18
	a := newTestAllocator(t, maxLines)
	third := maxLines / 3

	line := a.Assign(1, MotionScroll)
	if line < third || line >= 2*third {
		t.Fatalf("scroll comment expected in [%d,%d), got %d", third, 2*third, line)
	}
}

func TestLaneAllocator_BottomZone(t *testing.T) {
	const maxLines = 18
	a := newTestAllocator(t, maxLines)
	third := maxLines / 3

	line := a.Assign(1, MotionBottom)
	if line < 2*third || line >= maxLines {
		t.Fatalf("bottom comment expected in [%d,%d), got %d", 2*third, maxLines, line)
	}
}

// 全满时在分区内随机放置，接受重叠但不丢弹幕
func TestLaneAllocator_DegradedMode(t *testing.T) {
	const maxLines = 6
	a := newTestAllocator(t, maxLines)

	for id := int64(1); id <= maxLines; id++ {
		a.Assign(id, MotionScroll)
	}

	third := maxLines / 3
	line := a.Assign(999, MotionTop)
	if line < 0 || line >= third {
		t.Fatalf("degraded top comment expected within its zone [0,%d), got %d", third, line)
	}

	// 降级弹幕释放时不能抢走原主的行
	owner, ok := a.byLine[line]
	if !ok {
		t.Fatalf("line %d should still have its original owner", line)
	}
	a.Release(999)
	if got, busy := a.byLine[line]; !busy || got != owner {
		t.Fatalf("release of degraded comment must not free line %d", line)
	}
}

// 先到的弹幕占小行号，释放后行号可复用
func TestLaneAllocator_FirstFitAndRelease(t *testing.T) {
	a := newTestAllocator(t, 18)

	l1 := a.Assign(1, MotionTop)
	l2 := a.Assign(2, MotionTop)
	if l1 != 0 || l2 != 1 {
		t.Fatalf("expected first-fit lines 0,1, got %d,%d", l1, l2)
	}

	a.Release(1)
	if l3 := a.Assign(3, MotionTop); l3 != 0 {
		t.Fatalf("released line 0 should be reused, got %d", l3)
	}
}

// 同一条弹幕重复分配拿到同一行
func TestLaneAllocator_AssignIdempotent(t *testing.T) {
	a := newTestAllocator(t, 18)

	l1 := a.Assign(1, MotionScroll)
	l2 := a.Assign(1, MotionScroll)
	if l1 != l2 {
		t.Fatalf("expected stable line for same comment, got %d then %d", l1, l2)
	}
	if len(a.byComment) != 1 {
		t.Fatalf("expected single assignment record, got %d", len(a.byComment))
	}
}
