package handler

import (
	"errors"
	"strconv"

	"Mivo/config"
	"Mivo/middleware"
	"Mivo/pkg/context"
	"Mivo/pkg/response"
	"Mivo/service"
	"Mivo/types"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type DanmuHandler struct {
	Config       *config.Config
	Redis        *redis.Client
	DanmuService service.IDanmuService
}

func (dh *DanmuHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(dh.Config.Jwt.Secret))
	limit := middleware.RateLimit(dh.Redis, dh.Config.Danmu.RatePerMinute)

	videos := r.Group("/v1/videos")
	videos.POST("/:video_id/danmu", authorize, limit, context.Wrap(dh.CreateDanmu)) // 发送弹幕
	videos.GET("/:video_id/danmu", context.Wrap(dh.ListDanmu))                      // 会话初始快照 / 增量补拉
	videos.GET("/:video_id/danmu/stats", context.Wrap(dh.GetStats))

	danmu := r.Group("/v1/danmu")
	danmu.POST("/:danmu_id/hide", authorize, context.Wrap(dh.HideDanmu)) // 作者或管理员隐藏
}

// CreateDanmu 发送弹幕
func (dh *DanmuHandler) CreateDanmu(c *gin.Context) error {
	videoID, err := parseID(c, "video_id")
	if err != nil {
		return response.ValidationError("video_id 参数错误")
	}

	var req types.CreateDanmuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ValidationError(err.Error())
	}

	userID, err := context.GetUserID(c)
	if err != nil {
		return response.AuthRequired("未登录")
	}

	resp, err := dh.DanmuService.Create(c.Request.Context(), videoID, userID, &req)
	if err != nil {
		return err
	}

	response.Created(c, resp)
	return nil
}

// ListDanmu 弹幕列表，since_id 可选，用于断线后的游标补拉
func (dh *DanmuHandler) ListDanmu(c *gin.Context) error {
	videoID, err := parseID(c, "video_id")
	if err != nil {
		return response.ValidationError("video_id 参数错误")
	}

	sinceID := int64(0)
	if s := c.Query("since_id"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			sinceID = v
		}
	}

	resp, err := dh.DanmuService.List(c.Request.Context(), videoID, sinceID)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}

// GetStats 单视频弹幕统计
func (dh *DanmuHandler) GetStats(c *gin.Context) error {
	videoID, err := parseID(c, "video_id")
	if err != nil {
		return response.ValidationError("video_id 参数错误")
	}

	resp, err := dh.DanmuService.GetStats(c.Request.Context(), videoID)
	if err != nil {
		return err
	}

	response.Success(c, resp)
	return nil
}

// HideDanmu 隐藏弹幕
func (dh *DanmuHandler) HideDanmu(c *gin.Context) error {
	danmuID, err := parseID(c, "danmu_id")
	if err != nil {
		return response.ValidationError("danmu_id 参数错误")
	}

	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.AuthRequired("未登录")
	}

	if err := dh.DanmuService.Hide(c.Request.Context(), danmuID, actorID, context.IsModerator(c)); err != nil {
		return err
	}

	response.Success(c, gin.H{"hidden": true})
	return nil
}

var errBadID = errors.New("bad id")

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}
