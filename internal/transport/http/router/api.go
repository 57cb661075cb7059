package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-user-role-service/internal/transport/http/handler"
	mdw "go-user-role-service/internal/transport/http/middleware"
)

// APIModule 业务模块统一的挂载入口
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// NewAPIEngine 组装完整引擎：中间件链 + 健康检查 + 指标 + 业务路由。
// 路由直接挂在根上（/roles、/users），不带版本前缀。
func NewAPIEngine(l *zap.Logger, roles *handler.RoleHandler, users *handler.UserHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g := r.Group("")
	for _, m := range []APIModule{roles, users} {
		m.MountAPI(g)
	}

	return r
}
