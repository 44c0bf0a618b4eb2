package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"Mivo/pkg/context"
	"Mivo/pkg/log"
	"Mivo/pkg/response"
	"Mivo/service"
	"Mivo/socket/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	// 读超时要大于客户端心跳间隔
	readWait  = 60 * time.Second
	writeWait = 10 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DanmuChannel 单视频弹幕订阅通道。
// 客户端先拉 REST 快照再连这里，断线重连带 since_id 增量补拉。
type DanmuChannel struct {
	Rooms        *room.Storage
	DanmuService service.IDanmuService
}

// Conn 建立订阅连接
func (ch *DanmuChannel) Conn(c *gin.Context) error {
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil || videoID <= 0 {
		return response.ValidationError("video_id 参数错误")
	}

	userID, err := context.GetUserID(c)
	if err != nil {
		return response.AuthRequired("未登录")
	}

	sinceID := int64(0)
	if s := c.Query("since_id"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			sinceID = v
		}
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L.Error("websocket upgrade error", zap.Error(err))
		return err
	}

	client := room.NewClient(uuid.NewString(), userID, videoID, conn)
	ch.Rooms.Join(client)

	log.L.Info("danmu subscriber connected",
		zap.String("cid", client.ID),
		zap.Int64("user_id", userID),
		zap.Int64("video_id", videoID),
	)

	go ch.writePump(client)

	// 带游标重连的先补齐缺口，再进实时流
	if sinceID > 0 {
		ch.sendCatchUp(c, client, sinceID)
	}

	ch.readPump(c, client)
	return nil
}

// sendCatchUp 把游标之后创建的弹幕一次性补给该连接。
// 与实时流之间可能重复投递，客户端按 ID 去重。
func (ch *DanmuChannel) sendCatchUp(c *gin.Context, client *room.Client, sinceID int64) {
	list, err := ch.DanmuService.List(c.Request.Context(), client.VideoID, sinceID)
	if err != nil {
		log.L.Warn("danmu catch-up error", zap.Error(err),
			zap.Int64("video_id", client.VideoID), zap.Int64("since_id", sinceID))
		return
	}

	payload, err := json.Marshal(gin.H{
		"kind":    "snapshot",
		"danmus":  list.Danmus,
		"last_id": strconv.FormatInt(list.LastID, 10),
	})
	if err != nil {
		return
	}
	client.Send(payload)
}

// readPump 接收客户端控制帧：ping 心跳、sync 增量补拉
func (ch *DanmuChannel) readPump(c *gin.Context, client *room.Client) {
	defer func() {
		ch.Rooms.Leave(client)
		client.Close()
		log.L.Info("danmu subscriber disconnected", zap.String("cid", client.ID))
	}()

	_ = client.Conn.SetReadDeadline(time.Now().Add(readWait))

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			// 客户端断开是正常行为
			return
		}
		// 任何消息都算活跃
		_ = client.Conn.SetReadDeadline(time.Now().Add(readWait))

		switch gjson.GetBytes(raw, "type").String() {
		case "ping":
			client.Send([]byte(`{"type":"pong"}`))
		case "sync":
			// 断线期间漏掉的弹幕按游标补拉
			if sinceID := gjson.GetBytes(raw, "since_id").Int(); sinceID > 0 {
				ch.sendCatchUp(c, client, sinceID)
			}
		}
	}
}

// writePump 独占写连接，避免并发写
func (ch *DanmuChannel) writePump(client *room.Client) {
	for payload := range client.Outbox() {
		_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	// 队列关闭，补一个关闭帧
	_ = client.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
