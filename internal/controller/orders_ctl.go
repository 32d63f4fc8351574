package controller

import (
	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/service"
)

// ==================== OrdersController 订单组接口 ====================

// OrdersController 订单组：一个端点按 route 参数分发
type OrdersController struct {
	BaseController
	orderSvc *service.OrderService
	statsSvc *service.StatsService
}

// NewOrdersController 创建订单控制器
func NewOrdersController(version string, orderSvc *service.OrderService, statsSvc *service.StatsService) *OrdersController {
	return &OrdersController{
		BaseController: BaseController{Version: version},
		orderSvc:       orderSvc,
		statsSvc:       statsSvc,
	}
}

// Handle POST/GET /api/ucmob/orders
func (ctl *OrdersController) Handle(c *gin.Context) {
	var req dto.OrdersRequest
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
	case "statistic":
		resp, err = ctl.statsSvc.Statistic(ctx, req.Filter)
	case "orders":
		resp, err = ctl.orderSvc.Orders(ctx, &req)
	case "getorderinfo":
		resp, err = ctl.orderSvc.OrderInfo(ctx, req.OrderID)
	case "paymentanddelivery":
		resp, err = ctl.orderSvc.PaymentAndDelivery(ctx, req.OrderID)
	case "orderproducts":
		resp, err = ctl.orderSvc.OrderProducts(ctx, req.OrderID)
	case "orderhistory":
		resp, err = ctl.orderSvc.OrderHistory(ctx, req.OrderID)
	case "changestatus":
		resp, err = ctl.orderSvc.ChangeStatus(ctx, adminUID(c), req.OrderID, req.StatusID, req.Comment, req.Inform)
	case "delivery":
		err = ctl.orderSvc.Delivery(ctx, adminUID(c), req.OrderID, req.Address, req.City)
		resp = gin.H{"order_id": req.OrderID}
	default:
		err = service.ErrParameters
	}

	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.ok(c, resp)
}
