package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EMOTUBE_PORT", "")
	t.Setenv("EMOTUBE_REPORT_TTL", "")
	t.Setenv("EMOTUBE_CACHE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppPort != 8080 {
		t.Fatalf("expected default port got %d", cfg.AppPort)
	}
	if cfg.ReportTTL != 10*24*time.Hour {
		t.Fatalf("expected ten day ttl got %s", cfg.ReportTTL)
	}
	if cfg.MaxComments != 100 || cfg.CommentsPerPage != 5 {
		t.Fatalf("unexpected comment bounds %d/%d", cfg.MaxComments, cfg.CommentsPerPage)
	}
	if cfg.CacheBackend != CacheBackendPostgres {
		t.Fatalf("unexpected cache backend %q", cfg.CacheBackend)
	}
	if cfg.ObjectStore.Enabled() {
		t.Fatal("object store must be disabled without a bucket")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EMOTUBE_PORT", "9090")
	t.Setenv("EMOTUBE_REPORT_TTL", "1h")
	t.Setenv("EMOTUBE_MAX_COMMENTS", "20")
	t.Setenv("EMOTUBE_CACHE_BACKEND", "Memory")
	t.Setenv("EMOTUBE_S3_BUCKET", "clouds")
	t.Setenv("EMOTUBE_PROVIDER_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppPort != 9090 || cfg.ReportTTL != time.Hour || cfg.MaxComments != 20 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.CacheBackend != CacheBackendMemory {
		t.Fatalf("expected memory backend got %q", cfg.CacheBackend)
	}
	if !cfg.ObjectStore.Enabled() {
		t.Fatal("expected object store to be enabled")
	}
	if cfg.ProviderTimeout != 15*time.Second {
		t.Fatalf("malformed duration should fall back, got %s", cfg.ProviderTimeout)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := map[string]string{
		"EMOTUBE_MAX_COMMENTS":      "0",
		"EMOTUBE_COMMENTS_PER_PAGE": "-1",
		"EMOTUBE_REPORT_TTL":        "-5m",
		"EMOTUBE_CACHE_BACKEND":     "redis",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestValidateCommentsPerPageBounds(t *testing.T) {
	base := Config{MaxComments: 100, ReportTTL: time.Hour, CacheBackend: CacheBackendMemory}
	cases := map[int]bool{
		0:                      false,
		1:                      true,
		MaxCommentsPerPage:     true,
		MaxCommentsPerPage + 1: false,
		500:                    false,
	}
	for perPage, ok := range cases {
		cfg := base
		cfg.CommentsPerPage = perPage
		if err := cfg.Validate(); (err == nil) != ok {
			t.Fatalf("per page %d: got err %v, want ok=%v", perPage, err, ok)
		}
	}
}

func TestLoadRejectsOversizedCommentPages(t *testing.T) {
	t.Setenv("EMOTUBE_COMMENTS_PER_PAGE", "101")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for a page size the comments API rejects")
	}
}

func TestLoadCJKFont(t *testing.T) {
	t.Setenv("EMOTUBE_CJK_FONT", "/usr/share/fonts/NotoSansCJK-Regular.ttc")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CJKFont != "/usr/share/fonts/NotoSansCJK-Regular.ttc" {
		t.Fatalf("unexpected cjk font %q", cfg.CJKFont)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := (Config{LogLevel: input}).SlogLevel(); got != want {
			t.Fatalf("%q: got %v want %v", input, got, want)
		}
	}
}
