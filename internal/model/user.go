package model

import "time"

// 系统角色
const (
	RoleAdministrator = "administrator"
)

// User 店面用户投影（买家和管理员都在这张表里，uid > 0 为真实用户）
// 表归店面所有，这里只读写已有列
type User struct {
	UID      int64  `gorm:"column:uid;primaryKey;autoIncrement"`
	Name     string `gorm:"size:100;index"`
	Mail     string `gorm:"size:255"`
	Pass     string `gorm:"size:255"` // bcrypt 哈希
	Role     string `gorm:"size:32"`
	Status   int    `gorm:"default:1"`
	Created  time.Time
	Timezone string `gorm:"size:64"`
}

func (User) TableName() string {
	return "users"
}
