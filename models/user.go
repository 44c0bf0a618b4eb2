package models

import "time"

// User 用户表。注册登录走外部身份服务，这里只存弹幕链路用到的身份信息。
type User struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id,string"`
	Nickname  string    `gorm:"column:nickname;type:varchar(50)" json:"nickname"`
	Moderator bool      `gorm:"column:moderator;not null;default:false" json:"moderator"` // 管理员可隐藏任意弹幕
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
