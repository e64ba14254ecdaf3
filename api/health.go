package api

import (
	"net/http"

	"guildledger/config"
	"guildledger/database"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct{}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Healthz 存活探测：对存储执行一次最小查询
// 与普通页面不同，这里返回原始错误文本，供运维定位故障
func (h *HealthHandler) Healthz(c *gin.Context) {
	if err := database.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.AppVersion,
	})
}
