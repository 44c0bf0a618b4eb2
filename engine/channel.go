package engine

import (
	"context"
	"sync"
)

// EventKind 投递通道上的更新类型
type EventKind string

const (
	EventCreated EventKind = "created"
	EventHidden  EventKind = "hidden"
)

// Event 一条弹幕更新。通道只负责"把该视频的所有非隐藏弹幕
// 按创建顺序至少投递一次"，时间窗口过滤是会话自己的事。
type Event struct {
	Kind    EventKind `json:"kind"`
	Comment *Comment  `json:"comment"`
}

// Stream 按视频订阅弹幕更新。sinceID 为断线重连的游标，
// 0 表示从订阅时刻开始；重复投递由会话按 ID 去重兜底。
type Stream interface {
	Subscribe(ctx context.Context, videoID int64, sinceID int64) (<-chan Event, func(), error)
}

// Hub 进程内的按视频扇出。conn-server 把 redis 广播落到本地连接用的
// 就是同构结构，这里的实现同时服务引擎测试与单机部署。
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[int64]chan Event
	nextID      int64
	bufferSize  int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[int64]chan Event),
		bufferSize:  64,
	}
}

func (h *Hub) Subscribe(ctx context.Context, videoID int64, _ int64) (<-chan Event, func(), error) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	ch := make(chan Event, h.bufferSize)
	if _, ok := h.subscribers[videoID]; !ok {
		h.subscribers[videoID] = make(map[int64]chan Event)
	}
	h.subscribers[videoID][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if subs, ok := h.subscribers[videoID]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(h.subscribers, videoID)
				}
			}
			h.mu.Unlock()
		})
	}

	if ctx != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel, nil
}

// Publish 向该视频的所有订阅者投递，订阅者积压时丢给它自己补拉
func (h *Hub) Publish(videoID int64, ev Event) {
	h.mu.RLock()
	subs := h.subscribers[videoID]
	channels := make([]chan Event, 0, len(subs))
	for _, ch := range subs {
		channels = append(channels, ch)
	}
	h.mu.RUnlock()

	for _, ch := range channels {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(videoID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[videoID])
}
