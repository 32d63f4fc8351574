package router

import (
	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/controller"
	"ucmob_admin/internal/middleware"
	"ucmob_admin/internal/service"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth     *controller.AuthController
	Orders   *controller.OrdersController
	Clients  *controller.ClientsController
	Products *controller.ProductsController
	Push     *controller.PushController
}

// Setup 注册全部路由
// 历史移动端 GET/POST 混着用，所以每个端点两个方法都挂
func Setup(r *gin.Engine, ctrls *Controllers, authSvc *service.AuthService, version string) {
	api := r.Group("/api/ucmob")

	both(api, "/login", ctrls.Auth.Login)
	both(api, "/deletedevicetoken", ctrls.Auth.DeleteDeviceToken)
	both(api, "/updatedevicetoken", ctrls.Auth.UpdateDeviceToken)
	// 推送触发给店面侧钩子调，不走令牌
	both(api, "/push", ctrls.Push.Push)

	protected := api.Group("", middleware.TokenAuth(authSvc, version))
	both(protected, "/orders", ctrls.Orders.Handle)
	both(protected, "/clients", ctrls.Clients.Handle)
	both(protected, "/products", ctrls.Products.Handle)
}

func both(g *gin.RouterGroup, path string, handler gin.HandlerFunc) {
	g.GET(path, handler)
	g.POST(path, handler)
}
