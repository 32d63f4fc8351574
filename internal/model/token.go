package model

// ==================== 移动端鉴权表 ====================
// 这两张表归本服务所有，AutoMigrate 建表

// UserToken 移动端 API 令牌，一个管理员一条
// 令牌不过期，只有显式删除才会失效
type UserToken struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	UserID int64  `gorm:"uniqueIndex;not null"`
	Token  string `gorm:"size:64;uniqueIndex;not null"`
}

func (UserToken) TableName() string {
	return "user_token_mob_api"
}

// 设备系统类型
const (
	OsTypeIOS     = "ios"
	OsTypeAndroid = "android"
)

// UserDevice 推送设备注册，device_token 全局唯一
type UserDevice struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"index;not null"`
	DeviceToken string `gorm:"size:255;uniqueIndex;not null"`
	OsType      string `gorm:"size:16"`
}

func (UserDevice) TableName() string {
	return "user_device_mob_api"
}
