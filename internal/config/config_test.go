package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	t.Setenv(key, "8080")
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetDurationFallsBackOnInvalidValue(t *testing.T) {
	const key = "TEST_FETCH_TIMEOUT"

	t.Setenv(key, "not-a-duration")
	if got := getDuration(key, 30*time.Second); got != 30*time.Second {
		t.Fatalf("getDuration invalid = %s, want 30s", got)
	}

	t.Setenv(key, "-5s")
	if got := getDuration(key, 30*time.Second); got != 30*time.Second {
		t.Fatalf("getDuration negative = %s, want 30s", got)
	}

	t.Setenv(key, "45s")
	if got := getDuration(key, 30*time.Second); got != 45*time.Second {
		t.Fatalf("getDuration = %s, want 45s", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "CRON_SPEC", "FETCH_TIMEOUT", "RENDER_SETTLE", "SCRAPE_DELAY_MIN", "SCRAPE_DELAY_MAX", "CRON_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.AppPort != "9000" {
		t.Fatalf("AppPort = %q, want 9000", cfg.AppPort)
	}
	if cfg.CronSpec != "" {
		t.Fatalf("CronSpec = %q, want empty", cfg.CronSpec)
	}
	if cfg.CronTimeout != 5*time.Minute {
		t.Fatalf("CronTimeout = %s, want 5m", cfg.CronTimeout)
	}
	if cfg.FetchTimeout != 30*time.Second || cfg.RenderSettle != 2*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
	if cfg.DelayMin != 500*time.Millisecond || cfg.DelayMax != 1500*time.Millisecond {
		t.Fatalf("unexpected delay range: [%s, %s]", cfg.DelayMin, cfg.DelayMax)
	}
}

func TestLoadReadsAuthAndSwapsDelayRange(t *testing.T) {
	t.Setenv("APP_PORT", "1234")
	t.Setenv("APP_BASIC_USER", "user")
	t.Setenv("APP_BASIC_PASS", "pass")
	t.Setenv("SCRAPE_DELAY_MIN", "2s")
	t.Setenv("SCRAPE_DELAY_MAX", "1s")

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
	if cfg.DelayMin != time.Second || cfg.DelayMax != 2*time.Second {
		t.Fatalf("delay range not normalized: [%s, %s]", cfg.DelayMin, cfg.DelayMax)
	}
}

func TestLoadReadsCronTimeout(t *testing.T) {
	t.Setenv("CRON_SPEC", "@every 10m")
	t.Setenv("CRON_TIMEOUT", "90s")

	cfg := Load()
	if cfg.CronSpec != "@every 10m" {
		t.Fatalf("CronSpec = %q, want %q", cfg.CronSpec, "@every 10m")
	}
	if cfg.CronTimeout != 90*time.Second {
		t.Fatalf("CronTimeout = %s, want 90s", cfg.CronTimeout)
	}
}
