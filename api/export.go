package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"guildledger/config"
	"guildledger/database"
	"guildledger/web"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器（只读，不改动任何数据）
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportCSV 导出当前余额列表为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	cfg := config.GetConfig()

	rows, err := fetchBalances(database.DB, cfg.Guild.Name)
	if err != nil {
		log.Printf("导出余额失败: %v", err)
		HTMLInternalError(c)
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM，保证 Excel 打开时非 ASCII 字符不乱码
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "Jogador", "Saldo"}
	if err := writer.Write(headers); err != nil {
		log.Printf("生成 CSV 失败: %v", err)
		HTMLInternalError(c)
		return
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Name,
			web.FormatInt(row.Saldo),
		}
		if err := writer.Write(record); err != nil {
			log.Printf("生成 CSV 失败: %v", err)
			HTMLInternalError(c)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("生成 CSV 失败: %v", err)
		HTMLInternalError(c)
		return
	}

	filename := fmt.Sprintf("saldos_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出余额和分成单为 Excel，两个工作表
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	cfg := config.GetConfig()

	balances, err := fetchBalances(database.DB, cfg.Guild.Name)
	if err != nil {
		log.Printf("导出余额失败: %v", err)
		HTMLInternalError(c)
		return
	}
	splits, err := fetchSplits(database.DB)
	if err != nil {
		log.Printf("导出分成单失败: %v", err)
		HTMLInternalError(c)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 工作表 1：余额
	balanceSheet := "Saldos"
	f.SetSheetName("Sheet1", balanceSheet)
	f.SetColWidth(balanceSheet, "A", "A", 10)
	f.SetColWidth(balanceSheet, "B", "B", 28)
	f.SetColWidth(balanceSheet, "C", "C", 15)

	balanceHeaders := []string{"ID", "Jogador", "Saldo"}
	for i, header := range balanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(balanceSheet, cell, header)
		f.SetCellStyle(balanceSheet, cell, cell, headerStyle)
	}
	for i, row := range balances {
		rowNum := i + 2
		f.SetCellValue(balanceSheet, fmt.Sprintf("A%d", rowNum), row.ID)
		f.SetCellValue(balanceSheet, fmt.Sprintf("B%d", rowNum), row.Name)
		f.SetCellValue(balanceSheet, fmt.Sprintf("C%d", rowNum), row.Saldo)
	}

	// 工作表 2：分成单
	splitSheet := "Splits"
	if _, err := f.NewSheet(splitSheet); err != nil {
		log.Printf("生成 Excel 失败: %v", err)
		HTMLInternalError(c)
		return
	}
	f.SetColWidth(splitSheet, "A", "A", 8)
	f.SetColWidth(splitSheet, "B", "E", 12)
	f.SetColWidth(splitSheet, "F", "J", 18)

	splitHeaders := []string{"ID", "Bruto", "Reparo", "Cobrar taxa", "Taxa %", "Reparo pago por", "Status", "Aprovado", "Puxado por", "Criado em"}
	for i, header := range splitHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(splitSheet, cell, header)
		f.SetCellStyle(splitSheet, cell, cell, headerStyle)
	}
	for i, s := range splits {
		rowNum := i + 2
		f.SetCellValue(splitSheet, fmt.Sprintf("A%d", rowNum), s.ID)
		f.SetCellValue(splitSheet, fmt.Sprintf("B%d", rowNum), s.Bruto)
		f.SetCellValue(splitSheet, fmt.Sprintf("C%d", rowNum), s.Reparo)
		f.SetCellValue(splitSheet, fmt.Sprintf("D%d", rowNum), boolLabel(s.CobrarTaxa))
		f.SetCellValue(splitSheet, fmt.Sprintf("E%d", rowNum), s.TaxaPct)
		f.SetCellValue(splitSheet, fmt.Sprintf("F%d", rowNum), s.ReparoPayer)
		f.SetCellValue(splitSheet, fmt.Sprintf("G%d", rowNum), s.Status)
		f.SetCellValue(splitSheet, fmt.Sprintf("H%d", rowNum), boolLabel(s.Approved))
		f.SetCellValue(splitSheet, fmt.Sprintf("I%d", rowNum), strOrEmpty(s.PulledBy))
		f.SetCellValue(splitSheet, fmt.Sprintf("J%d", rowNum), strOrEmpty(s.CreatedAt))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("生成 Excel 失败: %v", err)
		HTMLInternalError(c)
		return
	}

	filename := fmt.Sprintf("guild_ledger_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// boolLabel 布尔值的导出文案（葡语，与页面一致）
func boolLabel(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
