package config

import (
	"os"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	AppPort string

	// 为空时不启动定时采集
	CronSpec    string
	CronTimeout time.Duration

	FetchTimeout time.Duration
	RenderSettle time.Duration
	DelayMin     time.Duration
	DelayMax     time.Duration

	// ChromePath 为空时由 chromedp 自行查找本机 Chrome
	ChromePath string
	LogLevel   string

	BasicAuthUser string
	BasicAuthPass string
}

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		CronSpec:      getEnv("CRON_SPEC", ""),
		CronTimeout:   getDuration("CRON_TIMEOUT", 5*time.Minute),
		FetchTimeout:  getDuration("FETCH_TIMEOUT", 30*time.Second),
		RenderSettle:  getDuration("RENDER_SETTLE", 2*time.Second),
		DelayMin:      getDuration("SCRAPE_DELAY_MIN", 500*time.Millisecond),
		DelayMax:      getDuration("SCRAPE_DELAY_MAX", 1500*time.Millisecond),
		ChromePath:    getEnv("CHROME_PATH", ""),
		LogLevel:      LogLevel(),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	// 区间配反了直接交换，不让随机延迟因为参数问题出错
	if cfg.DelayMax < cfg.DelayMin {
		cfg.DelayMin, cfg.DelayMax = cfg.DelayMax, cfg.DelayMin
	}

	zap.S().Infof("config loaded: port=%s cron=%q timeout=%s delay=[%s,%s]",
		cfg.AppPort, cfg.CronSpec, cfg.FetchTimeout, cfg.DelayMin, cfg.DelayMax)
	return cfg
}

// LogLevel 单独暴露，便于在 Load 之前初始化日志
func LogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration 解析 time.ParseDuration 格式（如 "30s"、"500ms"），非法值回退默认
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		zap.S().Warnf("config: invalid %s=%q, use default %s", key, v, def)
		return def
	}
	return d
}
