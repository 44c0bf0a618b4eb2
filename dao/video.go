package dao

import (
	"context"
	"errors"

	"Mivo/models"

	"gorm.io/gorm"
)

type Video struct {
	Repo[models.Video]
}

func NewVideo(db *gorm.DB) *Video {
	return &Video{
		Repo: NewRepo[models.Video](db),
	}
}

// Exists 视频存在且未下架
func (v *Video) Exists(ctx context.Context, videoID int64) (bool, error) {
	var count int64
	err := v.Db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ? AND status = 1", videoID).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
