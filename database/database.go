package database

import (
	"fmt"
	"log"
	"time"

	"guildledger/config"
	"guildledger/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// schemaStatements 建表和索引语句，全部 IF NOT EXISTS，可反复执行
// 字段定义是历史库的既成事实，不要改动（包括 split_id 外键没有 ON DELETE 子句）
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		ttype TEXT NOT NULL CHECK(ttype IN ('Credito','Debito')),
		amount REAL NOT NULL,
		category TEXT,
		note TEXT,
		split_id INTEGER,
		created_at TEXT NOT NULL,
		FOREIGN KEY(player_id) REFERENCES players(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS splits(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bruto INTEGER NOT NULL DEFAULT 0,
		reparo INTEGER NOT NULL DEFAULT 0,
		cobrar_taxa INTEGER NOT NULL DEFAULT 1,
		taxa_pct REAL NOT NULL DEFAULT 25.0,
		reparo_payer TEXT NOT NULL DEFAULT 'JOGADORES',
		note TEXT,
		created_at TEXT NOT NULL,
		pulled_by TEXT,
		status TEXT NOT NULL DEFAULT 'Vendendo',
		approved INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_player ON transactions(player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_split ON transactions(split_id)`,
	`CREATE INDEX IF NOT EXISTS idx_players_active ON players(active)`,
	`CREATE INDEX IF NOT EXISTS idx_splits_created ON splits(id)`,
}

// Init 初始化数据库连接并确保表结构存在
func Init(cfg *config.Config) error {
	// WAL + synchronous=NORMAL：允许读写并发，写锁最多等待 busy_timeout 毫秒
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on",
		cfg.Database.Path,
		cfg.Database.BusyTimeout,
	)

	logMode := logger.Silent
	if cfg.Server.Mode != "release" {
		logMode = logger.Info
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// SQLite 同一时刻只有一个写入者，连接数保持小池即可
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	if err := EnsureSchema(); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// EnsureSchema 幂等地建表、建索引并补种公会金库账户
// 首页每次请求都会调用，表结构和种子行已存在时没有任何副作用
func EnsureSchema() error {
	guildName := config.GetConfig().Guild.Name

	return DB.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schemaStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.Player{}).Where("name = ?", guildName).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			guild := models.Player{
				Name:      guildName,
				Active:    true,
				CreatedAt: time.Now().UTC().Format(time.RFC3339),
			}
			if err := tx.Create(&guild).Error; err != nil {
				return err
			}
			log.Printf("已创建公会金库账户: %s", guildName)
		}
		return nil
	})
}

// Ping 执行一次最小查询，用于 healthz 存活探测
func Ping() error {
	return DB.Exec("SELECT 1").Error
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
