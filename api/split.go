package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"guildledger/config"
	"guildledger/database"

	"github.com/gin-gonic/gin"
)

// SplitHandler 分成单处理器
type SplitHandler struct{}

// NewSplitHandler 创建分成单处理器
func NewSplitHandler() *SplitHandler {
	return &SplitHandler{}
}

// List 分成单列表：最新在前，最多 500 条
func (h *SplitHandler) List(c *gin.Context) {
	splits, err := fetchSplits(database.DB)
	if err != nil {
		log.Printf("查询分成单列表失败: %v", err)
		HTMLInternalError(c)
		return
	}

	c.HTML(http.StatusOK, "splits.html", gin.H{
		"splits":  splits,
		"version": config.AppVersion,
	})
}

// Detail 分成单详情：归一化后的分成单 + 名下流水（金额降序）
// id 不是数字或不存在时都按 404 处理
func (h *SplitHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		HTMLNotFound(c)
		return
	}

	split, tx, err := fetchSplitDetail(database.DB, id)
	if err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			HTMLNotFound(c)
			return
		}
		log.Printf("查询分成单 %d 失败: %v", id, err)
		HTMLInternalError(c)
		return
	}

	c.HTML(http.StatusOK, "split_detail.html", gin.H{
		"s":       split,
		"tx":      tx,
		"version": config.AppVersion,
	})
}
