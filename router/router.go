package router

import (
	"time"

	"guildledger/api"
	"guildledger/config"
	"guildledger/middleware"
	"guildledger/web"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Logger())
	// handler panic 时渲染通用 500 页面，不向客户端泄露内部细节
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		api.HTMLInternalError(c)
	}))

	// 嵌入的页面模板
	r.SetHTMLTemplate(web.Templates())

	homeHandler := api.NewHomeHandler()
	splitHandler := api.NewSplitHandler()
	healthHandler := api.NewHealthHandler()

	r.GET("/", homeHandler.Home)
	r.GET("/splits", splitHandler.List)
	r.GET("/splits/:id", splitHandler.Detail)
	r.GET("/healthz", healthHandler.Healthz)

	// 导出接口开销较大，单独限流，阈值由配置控制
	exportHandler := api.NewExportHandler()
	export := r.Group("/export")
	export.Use(middleware.PerIPRateLimit(cfg.RateLimit.ExportPerMinute, time.Minute))
	{
		export.GET("/csv", exportHandler.ExportCSV)
		export.GET("/excel", exportHandler.ExportExcel)
	}

	// 其余路径统一渲染 404 页面
	r.NoRoute(api.HTMLNotFound)

	return r
}
