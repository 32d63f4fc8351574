package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ucmob_admin/internal/controller"
	"ucmob_admin/internal/service"
)

// TokenAuth 业务组路由的令牌校验
// token 从表单取，兜底查 query；失败直接回失败信封并中断，
// 后面的业务逻辑一行都不会执行
func TokenAuth(authSvc *service.AuthService, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.PostForm("token")
		if token == "" {
			token = c.Query("token")
		}
		uid, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, controller.FailEnvelope(version, err))
			return
		}
		c.Set("user_id", uid)
		c.Next()
	}
}
