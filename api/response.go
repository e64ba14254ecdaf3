package api

import (
	"net/http"

	"guildledger/config"

	"github.com/gin-gonic/gin"
)

// HTMLNotFound 渲染 404 页面
func HTMLNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"version": config.AppVersion,
	})
}

// HTMLInternalError 渲染通用 500 页面，不携带任何内部错误详情
func HTMLInternalError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{
		"version": config.AppVersion,
	})
}
