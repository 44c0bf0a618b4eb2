package room

import (
	"testing"
)

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case p := <-c.Outbox():
			out = append(out, p)
		default:
			return out
		}
	}
}

// 广播只进同视频的房间
func TestStorage_BroadcastIsolation(t *testing.T) {
	s := NewStorage()

	c1 := NewClient("c1", 100, 1, nil)
	c2 := NewClient("c2", 101, 1, nil)
	c3 := NewClient("c3", 102, 2, nil)
	s.Join(c1)
	s.Join(c2)
	s.Join(c3)

	s.Broadcast(1, []byte("hello"))

	if got := len(drain(c1)); got != 1 {
		t.Fatalf("c1 expected 1 frame, got %d", got)
	}
	if got := len(drain(c2)); got != 1 {
		t.Fatalf("c2 expected 1 frame, got %d", got)
	}
	if got := len(drain(c3)); got != 0 {
		t.Fatalf("c3 should not receive frames for video 1, got %d", got)
	}
}

// 退出幂等，空房间回收
func TestStorage_LeaveIdempotent(t *testing.T) {
	s := NewStorage()

	c := NewClient("c1", 100, 1, nil)
	s.Join(c)
	if got := s.Count(1); got != 1 {
		t.Fatalf("expected 1 client, got %d", got)
	}

	s.Leave(c)
	s.Leave(c) // 重复退出不报错

	if got := s.Count(1); got != 0 {
		t.Fatalf("expected empty room, got %d", got)
	}

	// 退出后的广播不可达
	s.Broadcast(1, []byte("x"))
	if got := len(drain(c)); got != 0 {
		t.Fatalf("left client should not receive frames, got %d", got)
	}
}

// 发送缓冲打满时丢帧不阻塞
func TestClient_SendNonBlocking(t *testing.T) {
	c := NewClient("c1", 100, 1, nil)

	for i := 0; i < 200; i++ {
		c.Send([]byte("x"))
	}
	// 没死锁就算过，缓冲上限 64
	if got := len(drain(c)); got != 64 {
		t.Fatalf("expected buffer cap 64, got %d", got)
	}
}

func TestClient_CloseIdempotent(t *testing.T) {
	c := NewClient("c1", 100, 1, nil)
	c.Close()
	c.Close() // 不能 panic

	c.Send([]byte("x")) // 关闭后静默丢弃
}
