package room

import (
	"strconv"
	"sync"

	"Mivo/pkg/log"

	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// Client 一条观看连接
type Client struct {
	ID      string // 连接ID
	UserID  int64
	VideoID int64

	Conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(id string, userID, videoID int64, conn *websocket.Conn) *Client {
	return &Client{
		ID:      id,
		UserID:  userID,
		VideoID: videoID,
		Conn:    conn,
		send:    make(chan []byte, 64),
	}
}

// Send 非阻塞投递，消费不过来的连接丢帧，由客户端 sync 补拉
func (c *Client) Send(payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
		log.L.Warn("client send buffer full, drop frame",
			zap.String("cid", c.ID), zap.Int64("video_id", c.VideoID))
	}
}

// Outbox 写协程消费的队列
func (c *Client) Outbox() <-chan []byte {
	return c.send
}

// Close 幂等关闭
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	if c.Conn != nil {
		_ = c.Conn.Close()
	}
}

type videoRoom struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// Storage 按视频分组的本地连接注册表。
// 跨节点的扇出由 redis 广播完成，这里只管落到本机连接。
type Storage struct {
	rooms cmap.ConcurrentMap[string, *videoRoom]
}

func NewStorage() *Storage {
	return &Storage{
		rooms: cmap.New[*videoRoom](),
	}
}

func key(videoID int64) string {
	return strconv.FormatInt(videoID, 10)
}

// Join 连接加入视频房间
func (s *Storage) Join(client *Client) {
	k := key(client.VideoID)
	r := s.rooms.Upsert(k, nil, func(exist bool, valueInMap, _ *videoRoom) *videoRoom {
		if exist {
			return valueInMap
		}
		return &videoRoom{clients: make(map[string]*Client)}
	})

	r.mu.Lock()
	r.clients[client.ID] = client
	r.mu.Unlock()
}

// Leave 幂等退出
func (s *Storage) Leave(client *Client) {
	k := key(client.VideoID)
	r, ok := s.rooms.Get(k)
	if !ok {
		return
	}

	r.mu.Lock()
	delete(r.clients, client.ID)
	empty := len(r.clients) == 0
	r.mu.Unlock()

	if empty {
		s.rooms.RemoveCb(k, func(_ string, v *videoRoom, exists bool) bool {
			if !exists {
				return false
			}
			v.mu.RLock()
			defer v.mu.RUnlock()
			return len(v.clients) == 0
		})
	}
}

// Broadcast 把一帧发给该视频的所有本地连接
func (s *Storage) Broadcast(videoID int64, payload []byte) {
	r, ok := s.rooms.Get(key(videoID))
	if !ok {
		return
	}

	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		c.Send(payload)
	}
}

// Count 房间内的连接数
func (s *Storage) Count(videoID int64) int {
	r, ok := s.rooms.Get(key(videoID))
	if !ok {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
