package config

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppVersion 应用版本号，healthz 接口和页面底部都会展示
const AppVersion = "vweb-1.0"

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Guild     GuildConfig     `mapstructure:"guild"`
	Session   SessionConfig   `mapstructure:"session"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置（嵌入式 SQLite）
type DatabaseConfig struct {
	Path        string `mapstructure:"path"`
	BusyTimeout int    `mapstructure:"busy_timeout"` // 写锁等待毫秒数
}

// GuildConfig 公会配置
type GuildConfig struct {
	// Name 公会金库账户名，启动时自动补种，余额列表中固定排在首位
	Name string `mapstructure:"name"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	// Secret 会话签名密钥。当前路由全部是只读页面，尚无依赖会话的功能；
	// 未配置时每次启动生成随机密钥，重启后旧会话自然失效
	Secret string `mapstructure:"secret"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// ExportPerMinute 每个 IP 每分钟允许的导出请求数
	ExportPerMinute int `mapstructure:"export_per_minute"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	// 先尝试加载 .env（不存在则忽略）
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/guildledger")
		externalViper.AddConfigPath("$HOME/.guildledger")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 支持环境变量覆盖（LEDGER_SERVER_PORT、LEDGER_SESSION_SECRET 等）
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if cfg.Database.BusyTimeout <= 0 {
		cfg.Database.BusyTimeout = 5000
	}
	if cfg.RateLimit.ExportPerMinute <= 0 {
		cfg.RateLimit.ExportPerMinute = 10
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = randomSecret()
		log.Println("未配置会话密钥，已生成临时随机密钥（重启后失效）")
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  数据库: %s (busy_timeout=%dms)", GlobalConfig.Database.Path, GlobalConfig.Database.BusyTimeout)
	log.Printf("  公会账户: %s", GlobalConfig.Guild.Name)
	log.Printf("  导出限流: 每 IP 每分钟 %d 次", GlobalConfig.RateLimit.ExportPerMinute)
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
// release 模式返回 fallback，其余模式返回原始错误文本
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}

// randomSecret 生成 16 字节随机密钥的十六进制表示
func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// 理论上不会发生，crypto/rand 读取失败时直接中止
		panic(fmt.Sprintf("生成随机密钥失败: %v", err))
	}
	return "dev-" + hex.EncodeToString(b)
}
