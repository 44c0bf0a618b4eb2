package dao

import (
	"context"

	"Mivo/models"

	"gorm.io/gorm"
)

type Danmu struct {
	Repo[models.Danmu]
}

func NewDanmu(db *gorm.DB) *Danmu {
	return &Danmu{
		Repo: NewRepo[models.Danmu](db),
	}
}

func (d *Danmu) Create(ctx context.Context, danmu *models.Danmu) error {
	return d.Db.WithContext(ctx).Create(danmu).Error
}

// ListForVideo 取单视频全部未隐藏弹幕。
// 排序固定：timestamp 升序，同刻按 created_at 再按 id，保证各端看到一致的顺序。
// sinceID > 0 时只取该游标之后创建的（雪花ID整体递增，按 id 过滤即按创建时间过滤）。
func (d *Danmu) ListForVideo(ctx context.Context, videoID int64, sinceID int64) ([]*models.Danmu, error) {
	var danmus []*models.Danmu
	query := d.Db.WithContext(ctx).
		Where("video_id = ? AND hidden = false", videoID)

	if sinceID > 0 {
		query = query.Where("id > ?", sinceID)
	}

	err := query.
		Order("timestamp ASC, created_at ASC, id ASC").
		Find(&danmus).Error

	return danmus, err
}

// GetByID 未隐藏的单条弹幕
func (d *Danmu) GetByID(ctx context.Context, danmuID int64) (*models.Danmu, error) {
	var danmu models.Danmu
	err := d.Db.WithContext(ctx).
		Where("id = ? AND hidden = false", danmuID).
		First(&danmu).Error
	return &danmu, err
}

// GetByIDAny 含已隐藏的单条弹幕，幂等隐藏时要用
func (d *Danmu) GetByIDAny(ctx context.Context, danmuID int64) (*models.Danmu, error) {
	var danmu models.Danmu
	err := d.Db.WithContext(ctx).
		Where("id = ?", danmuID).
		First(&danmu).Error
	return &danmu, err
}

// Hide 置隐藏标记，已隐藏时重复执行也成功
func (d *Danmu) Hide(ctx context.Context, danmuID int64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Danmu{}).
		Where("id = ?", danmuID).
		Update("hidden", true).Error
}

// CountByMotion 按运动类型统计未隐藏弹幕数
func (d *Danmu) CountByMotion(ctx context.Context, videoID int64) (map[string]int64, error) {
	type row struct {
		Motion string
		Cnt    int64
	}
	var rows []row
	err := d.Db.WithContext(ctx).
		Model(&models.Danmu{}).
		Select("motion, count(*) as cnt").
		Where("video_id = ? AND hidden = false", videoID).
		Group("motion").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Motion] = r.Cnt
	}
	return result, nil
}
