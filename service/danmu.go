package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"Mivo/engine"
	"Mivo/models"
	"Mivo/pkg/log"
	"Mivo/pkg/response"
	"Mivo/pkg/snowflake"
	"Mivo/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultColor = "#FFFFFF"
	MaxTextRunes = 200
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var _ IDanmuService = (*DanmuService)(nil)

// IDanmuStore 弹幕存储依赖，dao.Danmu 是线上实现
type IDanmuStore interface {
	Create(ctx context.Context, danmu *models.Danmu) error
	ListForVideo(ctx context.Context, videoID int64, sinceID int64) ([]*models.Danmu, error)
	GetByIDAny(ctx context.Context, danmuID int64) (*models.Danmu, error)
	Hide(ctx context.Context, danmuID int64) error
	CountByMotion(ctx context.Context, videoID int64) (map[string]int64, error)
}

type IVideoStore interface {
	Exists(ctx context.Context, videoID int64) (bool, error)
}

type IUserStore interface {
	IsModerator(ctx context.Context, userID int64) (bool, error)
}

// IEventPublisher 把弹幕变更广播给所有 conn-server 节点
type IEventPublisher interface {
	Publish(ctx context.Context, ev *types.DanmuEvent) error
}

// IStatsCache 弹幕计数缓存，cache.DanmuStatsStorage 是线上实现
type IStatsCache interface {
	Incr(ctx context.Context, videoID int64, motion string) error
	Decr(ctx context.Context, videoID int64, motion string) error
	Get(ctx context.Context, videoID int64) (map[string]int64, bool, error)
	Fill(ctx context.Context, videoID int64, counts map[string]int64) error
}

type DanmuService struct {
	DanmuDAO  IDanmuStore
	VideoDAO  IVideoStore
	UserDAO   IUserStore
	Publisher IEventPublisher
	Stats     IStatsCache
}

type IDanmuService interface {
	Create(ctx context.Context, videoID, userID int64, req *types.CreateDanmuRequest) (*types.DanmuResponse, error)
	List(ctx context.Context, videoID, sinceID int64) (*types.DanmuListResponse, error)
	Hide(ctx context.Context, danmuID, actorID int64, actorIsModerator bool) error
	GetStats(ctx context.Context, videoID int64) (*types.DanmuStatsResponse, error)
}

// Create 发送弹幕：校验、落库、广播，三步顺序不可调换
func (s *DanmuService) Create(ctx context.Context, videoID, userID int64, req *types.CreateDanmuRequest) (*types.DanmuResponse, error) {
	danmu, err := s.buildDanmu(videoID, userID, req)
	if err != nil {
		return nil, err
	}

	exists, err := s.VideoDAO.Exists(ctx, videoID)
	if err != nil {
		return nil, response.TransientStoreError("视频服务暂不可用")
	}
	if !exists {
		return nil, response.NotFound("视频不存在")
	}

	// 写失败不自动重试，避免重复弹幕，由用户重新提交
	if err := s.DanmuDAO.Create(ctx, danmu); err != nil {
		log.L.Error("create danmu error", zap.Error(err), zap.Int64("video_id", videoID))
		return nil, response.TransientStoreError("弹幕发送失败，请重试")
	}

	// 计数与广播尽力而为，失败只记日志
	if err := s.Stats.Incr(ctx, videoID, danmu.Motion); err != nil {
		log.L.Warn("incr danmu stats error", zap.Error(err), zap.Int64("video_id", videoID))
	}
	s.publish(ctx, &types.DanmuEvent{
		Kind:    engine.EventCreated,
		VideoID: videoID,
		Comment: danmu.ToEngine(),
	})

	return toResponse(danmu), nil
}

func (s *DanmuService) buildDanmu(videoID, userID int64, req *types.CreateDanmuRequest) (*models.Danmu, error) {
	text := strings.TrimSpace(req.Text)
	if n := utf8.RuneCountInString(text); n < 1 || n > MaxTextRunes {
		return nil, response.ValidationError("弹幕内容需在 1-200 字符之间")
	}
	if req.Timestamp < 0 {
		return nil, response.ValidationError("时间戳不能为负")
	}

	motion := engine.MotionClass(req.Position)
	if req.Position == "" {
		motion = engine.MotionScroll
	}
	if !motion.Valid() {
		return nil, response.ValidationError("未知的弹幕位置类型")
	}

	size := engine.SizeClass(req.Size)
	if req.Size == "" {
		size = engine.SizeMedium
	}
	if !size.Valid() {
		return nil, response.ValidationError("未知的弹幕字号")
	}

	speed := req.Speed
	if speed == 0 {
		speed = 1.0
	}
	if speed <= 0 {
		return nil, response.ValidationError("速度倍率必须为正数")
	}

	// 颜色非法时落默认色而不是拒绝
	color := strings.ToUpper(req.Color)
	if !colorPattern.MatchString(color) {
		color = DefaultColor
	}

	return &models.Danmu{
		ID:        snowflake.GenID(),
		VideoID:   videoID,
		AuthorID:  userID,
		Text:      text,
		Timestamp: req.Timestamp,
		Motion:    string(motion),
		Color:     color,
		Size:      string(size),
		Speed:     speed,
	}, nil
}

// List 单视频全部未隐藏弹幕，since_id 用于断线后增量补拉
func (s *DanmuService) List(ctx context.Context, videoID, sinceID int64) (*types.DanmuListResponse, error) {
	danmus, err := s.DanmuDAO.ListForVideo(ctx, videoID, sinceID)
	if err != nil {
		return nil, response.TransientStoreError("弹幕读取失败")
	}

	resp := &types.DanmuListResponse{
		Danmus: make([]*types.DanmuResponse, 0, len(danmus)),
	}
	for _, d := range danmus {
		resp.Danmus = append(resp.Danmus, toResponse(d))
		if d.ID > resp.LastID {
			resp.LastID = d.ID
		}
	}
	return resp, nil
}

// Hide 隐藏弹幕，作者本人或管理员可操作，幂等
func (s *DanmuService) Hide(ctx context.Context, danmuID, actorID int64, actorIsModerator bool) error {
	danmu, err := s.DanmuDAO.GetByIDAny(ctx, danmuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("弹幕不存在")
		}
		return response.TransientStoreError("弹幕读取失败")
	}

	if danmu.AuthorID != actorID && !actorIsModerator {
		moderator, err := s.UserDAO.IsModerator(ctx, actorID)
		if err != nil {
			return response.TransientStoreError("用户服务暂不可用")
		}
		if !moderator {
			return response.Forbidden("只有作者或管理员可以隐藏弹幕")
		}
	}

	// 已隐藏直接视为成功，不再扣计数、不再广播
	if danmu.Hidden {
		return nil
	}

	if err := s.DanmuDAO.Hide(ctx, danmuID); err != nil {
		return response.TransientStoreError("弹幕隐藏失败")
	}

	if err := s.Stats.Decr(ctx, danmu.VideoID, danmu.Motion); err != nil {
		log.L.Warn("decr danmu stats error", zap.Error(err), zap.Int64("danmu_id", danmuID))
	}
	// 广播隐藏事件，让在线会话立即撤掉这条弹幕
	s.publish(ctx, &types.DanmuEvent{
		Kind:    engine.EventHidden,
		VideoID: danmu.VideoID,
		Comment: danmu.ToEngine(),
	})

	return nil
}

// GetStats 弹幕计数，优先走缓存，缺失回源并回填
func (s *DanmuService) GetStats(ctx context.Context, videoID int64) (*types.DanmuStatsResponse, error) {
	counts, ok, err := s.Stats.Get(ctx, videoID)
	if err != nil || !ok {
		counts, err = s.DanmuDAO.CountByMotion(ctx, videoID)
		if err != nil {
			return nil, response.TransientStoreError("弹幕统计读取失败")
		}
		if err := s.Stats.Fill(ctx, videoID, counts); err != nil {
			log.L.Warn("fill danmu stats error", zap.Error(err), zap.Int64("video_id", videoID))
		}
	}

	resp := &types.DanmuStatsResponse{
		VideoID: videoID,
		Scroll:  counts[string(engine.MotionScroll)],
		Top:     counts[string(engine.MotionTop)],
		Bottom:  counts[string(engine.MotionBottom)],
	}
	resp.Total = resp.Scroll + resp.Top + resp.Bottom
	return resp, nil
}

func (s *DanmuService) publish(ctx context.Context, ev *types.DanmuEvent) {
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		log.L.Warn("publish danmu event error", zap.Error(err),
			zap.String("kind", string(ev.Kind)), zap.Int64("video_id", ev.VideoID))
	}
}

func toResponse(d *models.Danmu) *types.DanmuResponse {
	return &types.DanmuResponse{
		ID:        d.ID,
		VideoID:   d.VideoID,
		AuthorID:  d.AuthorID,
		Text:      d.Text,
		Timestamp: d.Timestamp,
		Motion:    d.Motion,
		Color:     d.Color,
		Size:      d.Size,
		Speed:     d.Speed,
		CreatedAt: d.CreatedAt,
	}
}
