package controller

import (
	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/service"
)

// ==================== PushController 推送触发 ====================

// PushController 手动触发一轮新订单推送
// 历史接口不鉴权，给店面侧的下单钩子直接调
type PushController struct {
	BaseController
	pushSvc *service.PushService
}

// NewPushController 创建推送控制器
func NewPushController(version string, pushSvc *service.PushService) *PushController {
	return &PushController{
		BaseController: BaseController{Version: version},
		pushSvc:        pushSvc,
	}
}

// Push POST/GET /api/ucmob/push
func (ctl *PushController) Push(c *gin.Context) {
	if err := ctl.pushSvc.Dispatch(c.Request.Context()); err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, gin.H{})
}
