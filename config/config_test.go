package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, "GUILDA", cfg.Guild.Name)
	assert.Equal(t, "guild_ledger.db", cfg.Database.Path)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
	assert.Equal(t, 10, cfg.RateLimit.ExportPerMinute)
	// 未配置密钥时自动生成随机密钥
	assert.NotEmpty(t, cfg.Session.Secret)
}

func TestLoadConfig_RandomSecretPerProcess(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg1, err := LoadConfig("")
	require.NoError(t, err)
	cfg2, err := LoadConfig("")
	require.NoError(t, err)

	// 每次加载都重新生成，互不相同
	assert.NotEqual(t, cfg1.Session.Secret, cfg2.Session.Secret)
}

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}
