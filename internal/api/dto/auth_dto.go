package dto

// ==================== 登录 ====================

// LoginRequest 登录请求（移动端传 form 参数）
type LoginRequest struct {
	Username    string `form:"username"`
	Password    string `form:"password"`
	Token       string `form:"token"`
	DeviceToken string `form:"device_token"`
	OsType      string `form:"os_type"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token"`
}

// ==================== 设备令牌 ====================

// DeleteDeviceTokenRequest 删除设备令牌请求
type DeleteDeviceTokenRequest struct {
	OldToken string `form:"old_token"`
}

// UpdateDeviceTokenRequest 更换设备令牌请求
type UpdateDeviceTokenRequest struct {
	OldToken string `form:"old_token"`
	NewToken string `form:"new_token"`
}

// DeviceTokenResponse 设备令牌操作响应（历史接口把 status/version 在 response 里又放了一份）
type DeviceTokenResponse struct {
	Status  bool   `json:"status"`
	Version string `json:"version"`
}
