package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnsureDataDir 绝对路径数据目录：只创建 hotels 子目录
func TestEnsureDataDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data")

	cfg := DefaultConfig()
	cfg.Data.DataDir = base

	dir, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	if dir != base {
		t.Errorf("返回目录 = %q, 期望 %q", dir, base)
	}

	if info, err := os.Stat(filepath.Join(base, "hotels")); err != nil || !info.IsDir() {
		t.Errorf("hotels 子目录未创建: %v", err)
	}

	// 不应创建多余的子目录
	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "hotels" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("数据目录内容 = %v, 期望仅 [hotels]", names)
	}
}

// TestApplyEnvOverrides 环境变量覆盖数据目录与端口
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HOTELRM_DATA_DIR", "/tmp/hotelrm-test")
	t.Setenv("HOTELRM_PORT", "28080")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Data.DataDir != "/tmp/hotelrm-test" {
		t.Errorf("DataDir = %q", cfg.Data.DataDir)
	}
	if cfg.Server.Port != 28080 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
}

// TestApplyEnvOverridesInvalidPort 非法端口值应被忽略
func TestApplyEnvOverridesInvalidPort(t *testing.T) {
	t.Setenv("HOTELRM_PORT", "not-a-port")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 20330 {
		t.Errorf("Port = %d, 期望保持默认 20330", cfg.Server.Port)
	}
}
