package api

import (
	"log"
	"math"
	"net/http"

	"guildledger/config"
	"guildledger/database"
	"guildledger/models"

	"github.com/gin-gonic/gin"
)

// HomeHandler 首页处理器
type HomeHandler struct{}

// NewHomeHandler 创建首页处理器
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// BalanceSummary 首页汇总数据
type BalanceSummary struct {
	// Total 所有返回行（含公会账户）取整余额之和
	Total int64
	// GuildCash 公会账户的取整余额，账户缺失时为 0
	GuildCash int64
	// Players 展示给用户的玩家列表，不含公会账户
	Players []models.PlayerBalance
}

// computeSummary 从余额聚合结果计算首页汇总
// 取整统一用 math.Round（四舍五入，半数远离零），与页面展示一致
func computeSummary(rows []models.PlayerBalance, guildName string) BalanceSummary {
	s := BalanceSummary{Players: make([]models.PlayerBalance, 0, len(rows))}
	for _, row := range rows {
		rounded := int64(math.Round(row.Saldo))
		s.Total += rounded
		if row.Name == guildName {
			s.GuildCash = rounded
		} else {
			s.Players = append(s.Players, row)
		}
	}
	return s
}

// Home 首页：确保表结构存在，然后渲染余额汇总
func (h *HomeHandler) Home(c *gin.Context) {
	cfg := config.GetConfig()

	if err := database.EnsureSchema(); err != nil {
		log.Printf("初始化表结构失败: %v", err)
		HTMLInternalError(c)
		return
	}

	rows, err := fetchBalances(database.DB, cfg.Guild.Name)
	if err != nil {
		log.Printf("查询余额失败: %v", err)
		HTMLInternalError(c)
		return
	}

	summary := computeSummary(rows, cfg.Guild.Name)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"balances":   summary.Players,
		"guild_cash": summary.GuildCash,
		"total":      summary.Total,
		"guild_name": cfg.Guild.Name,
		"version":    config.AppVersion,
	})
}
