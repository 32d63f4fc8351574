package controller

import (
	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/service"
)

// ==================== AuthController 鉴权接口 ====================

// AuthController 登录和推送设备令牌管理
type AuthController struct {
	BaseController
	authSvc *service.AuthService
}

// NewAuthController 创建鉴权控制器
func NewAuthController(version string, authSvc *service.AuthService) *AuthController {
	return &AuthController{
		BaseController: BaseController{Version: version},
		authSvc:        authSvc,
	}
}

// Login POST/GET /api/ucmob/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		ctl.fail(c, service.ErrParameters)
		return
	}
	resp, err := ctl.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, resp)
}

// DeleteDeviceToken POST/GET /api/ucmob/deletedevicetoken
func (ctl *AuthController) DeleteDeviceToken(c *gin.Context) {
	var req dto.DeleteDeviceTokenRequest
	if err := c.ShouldBind(&req); err != nil {
		ctl.fail(c, service.ErrParameters)
		return
	}
	if err := ctl.authSvc.DeleteDeviceToken(c.Request.Context(), req.OldToken); err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, dto.DeviceTokenResponse{Status: true, Version: ctl.Version})
}

// UpdateDeviceToken POST/GET /api/ucmob/updatedevicetoken
func (ctl *AuthController) UpdateDeviceToken(c *gin.Context) {
	var req dto.UpdateDeviceTokenRequest
	if err := c.ShouldBind(&req); err != nil {
		ctl.fail(c, service.ErrParameters)
		return
	}
	if err := ctl.authSvc.UpdateDeviceToken(c.Request.Context(), req.OldToken, req.NewToken); err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, dto.DeviceTokenResponse{Status: true, Version: ctl.Version})
}
