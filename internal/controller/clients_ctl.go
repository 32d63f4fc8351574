package controller

import (
	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/service"
)

// ==================== ClientsController 客户组接口 ====================

// ClientsController 客户组：一个端点按 route 参数分发
type ClientsController struct {
	BaseController
	clientSvc *service.ClientService
}

// NewClientsController 创建客户控制器
func NewClientsController(version string, clientSvc *service.ClientService) *ClientsController {
	return &ClientsController{
		BaseController: BaseController{Version: version},
		clientSvc:      clientSvc,
	}
}

// Handle POST/GET /api/ucmob/clients
func (ctl *ClientsController) Handle(c *gin.Context) {
	var req dto.ClientsRequest
	if err := c.ShouldBind(&req); err != nil {
		ctl.fail(c, service.ErrParameters)
		return
	}
	ctx := c.Request.Context()

	var (
		resp interface{}
		err  error
	)
	switch req.Route {
	case "clients":
		resp, err = ctl.clientSvc.Clients(ctx, &req)
	case "clientinfo":
		resp, err = ctl.clientSvc.ClientInfo(ctx, req.ClientID)
	case "clientorders":
		resp, err = ctl.clientSvc.ClientOrders(ctx, req.ClientID, req.Sort)
	default:
		err = service.ErrParameters
	}

	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, resp)
}
