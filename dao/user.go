package dao

import (
	"context"

	"Mivo/models"

	"gorm.io/gorm"
)

type User struct {
	Repo[models.User]
}

func NewUser(db *gorm.DB) *User {
	return &User{
		Repo: NewRepo[models.User](db),
	}
}

// IsModerator 查管理员标记，用户不存在按普通用户处理
func (u *User) IsModerator(ctx context.Context, userID int64) (bool, error) {
	var user models.User
	err := u.Db.WithContext(ctx).
		Select("moderator").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return user.Moderator, nil
}
