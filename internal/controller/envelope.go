package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ==================== 响应信封 ====================
// 历史协议：永远 HTTP 200，成败放在 body 的 status 里，
// 成功带 response，失败带 error 文本

// Envelope 统一响应信封
type Envelope struct {
	Status   bool        `json:"status"`
	Version  string      `json:"version"`
	Response interface{} `json:"response,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// BaseController 信封输出的公共部分
type BaseController struct {
	Version string
}

// ok 成功信封
func (b *BaseController) ok(c *gin.Context, response interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:   true,
		Version:  b.Version,
		Response: response,
	})
}

// fail 失败信封，错误文本原样透出给移动端
func (b *BaseController) fail(c *gin.Context, err error) {
	c.JSON(http.StatusOK, Envelope{
		Status:  false,
		Version: b.Version,
		Error:   err.Error(),
	})
}

// FailEnvelope 中间件层用的失败信封（没有 BaseController 可挂）
func FailEnvelope(version string, err error) Envelope {
	return Envelope{
		Status:  false,
		Version: version,
		Error:   err.Error(),
	}
}

// adminUID 鉴权中间件放进上下文的管理员 uid
func adminUID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
