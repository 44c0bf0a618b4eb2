package router

import (
	"net/http"
	"net/http/pprof"

	"Mivo/config"
	"Mivo/middleware"
	"Mivo/pkg/context"
	"Mivo/socket/handler"

	"github.com/gin-gonic/gin"
)

// NewRouter 初始化配置路由
func NewRouter(conf *config.Config, handle *handler.Handler) *gin.Engine {

	router := gin.Default()
	router.Use(gin.RecoveryWithWriter(gin.DefaultWriter, func(c *gin.Context, err any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, map[string]any{"code": 500, "msg": "系统错误，请重试!!!"})
	}))

	authorize := middleware.Auth([]byte(conf.Jwt.Secret))

	router.GET("/ws/danmu/:video_id", authorize, context.Wrap(handle.Danmu.Conn))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": "success"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, map[string]any{"msg": "请求地址不存在"})
	})

	debug := router.Group("/debug")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.POST("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	return router
}
