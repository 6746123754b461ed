package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"GUILDSIM_SEED",
		"GUILDSIM_STARTING_MONEY_COPPER",
		"GUILDSIM_SCENARIO_DIR",
		"GUILDSIM_SCENARIO_RETENTION_MAX",
		"GUILDSIM_SCENARIO_RETENTION_AGE",
		"GUILDSIM_LOG_LEVEL",
		"GUILDSIM_LOG_PATH",
		"GUILDSIM_LOG_MAX_SIZE_MB",
		"GUILDSIM_LOG_MAX_BACKUPS",
		"GUILDSIM_LOG_MAX_AGE_DAYS",
		"GUILDSIM_LOG_COMPRESS",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != DefaultSeed {
		t.Fatalf("expected default seed %d, got %d", DefaultSeed, cfg.Seed)
	}
	if cfg.StartingMoneyCopper != DefaultStartingMoneyCopper {
		t.Fatalf("expected default starting money %d, got %d", DefaultStartingMoneyCopper, cfg.StartingMoneyCopper)
	}
	if cfg.ScenarioDir != DefaultScenarioDir {
		t.Fatalf("expected default scenario dir %q, got %q", DefaultScenarioDir, cfg.ScenarioDir)
	}
	if cfg.ScenarioRetentionMax != DefaultScenarioRetentionMax {
		t.Fatalf("expected default retention max %d, got %d", DefaultScenarioRetentionMax, cfg.ScenarioRetentionMax)
	}
	if cfg.ScenarioRetentionAge != DefaultScenarioRetentionAge {
		t.Fatalf("expected default retention age %v, got %v", DefaultScenarioRetentionAge, cfg.ScenarioRetentionAge)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Path != DefaultLogPath {
		t.Fatalf("expected default log path %q, got %q", DefaultLogPath, cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Fatalf("expected default log max size %d, got %d", DefaultLogMaxSizeMB, cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != DefaultLogMaxBackups {
		t.Fatalf("expected default log max backups %d, got %d", DefaultLogMaxBackups, cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != DefaultLogMaxAgeDays {
		t.Fatalf("expected default log max age %d, got %d", DefaultLogMaxAgeDays, cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress != DefaultLogCompress {
		t.Fatalf("expected default log compress %v, got %v", DefaultLogCompress, cfg.Logging.Compress)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GUILDSIM_SEED", "99")
	t.Setenv("GUILDSIM_STARTING_MONEY_COPPER", "500")
	t.Setenv("GUILDSIM_SCENARIO_DIR", "/tmp/scenarios")
	t.Setenv("GUILDSIM_SCENARIO_RETENTION_MAX", "10")
	t.Setenv("GUILDSIM_SCENARIO_RETENTION_AGE", "48h")
	t.Setenv("GUILDSIM_LOG_LEVEL", "debug")
	t.Setenv("GUILDSIM_LOG_PATH", "/tmp/guildsim.log")
	t.Setenv("GUILDSIM_LOG_MAX_SIZE_MB", "50")
	t.Setenv("GUILDSIM_LOG_MAX_BACKUPS", "3")
	t.Setenv("GUILDSIM_LOG_MAX_AGE_DAYS", "14")
	t.Setenv("GUILDSIM_LOG_COMPRESS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected seed 99, got %d", cfg.Seed)
	}
	if cfg.StartingMoneyCopper != 500 {
		t.Fatalf("expected starting money 500, got %d", cfg.StartingMoneyCopper)
	}
	if cfg.ScenarioDir != "/tmp/scenarios" {
		t.Fatalf("unexpected scenario dir: %q", cfg.ScenarioDir)
	}
	if cfg.ScenarioRetentionMax != 10 {
		t.Fatalf("expected retention max 10, got %d", cfg.ScenarioRetentionMax)
	}
	if cfg.ScenarioRetentionAge != 48*time.Hour {
		t.Fatalf("expected retention age 48h, got %v", cfg.ScenarioRetentionAge)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Path != "/tmp/guildsim.log" {
		t.Fatalf("unexpected log path: %q", cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != 50 {
		t.Fatalf("expected log max size 50, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Fatalf("expected log max backups 3, got %d", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != 14 {
		t.Fatalf("expected log max age 14, got %d", cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress {
		t.Fatalf("expected log compress false")
	}
}

func TestLoadReturnsValidationErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("GUILDSIM_SEED", "not-a-number")
	t.Setenv("GUILDSIM_STARTING_MONEY_COPPER", "-5")
	t.Setenv("GUILDSIM_SCENARIO_RETENTION_MAX", "-1")
	t.Setenv("GUILDSIM_SCENARIO_RETENTION_AGE", "not-a-duration")
	t.Setenv("GUILDSIM_LOG_MAX_SIZE_MB", "0")
	t.Setenv("GUILDSIM_LOG_MAX_BACKUPS", "-1")
	t.Setenv("GUILDSIM_LOG_MAX_AGE_DAYS", "-1")
	t.Setenv("GUILDSIM_LOG_COMPRESS", "not-a-bool")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{
		"GUILDSIM_SEED",
		"GUILDSIM_STARTING_MONEY_COPPER",
		"GUILDSIM_SCENARIO_RETENTION_MAX",
		"GUILDSIM_SCENARIO_RETENTION_AGE",
		"GUILDSIM_LOG_MAX_SIZE_MB",
		"GUILDSIM_LOG_MAX_BACKUPS",
		"GUILDSIM_LOG_MAX_AGE_DAYS",
		"GUILDSIM_LOG_COMPRESS",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %q", want, err.Error())
		}
	}
}

func TestLoadAllowsZeroRetentionMax(t *testing.T) {
	clearEnv(t)
	t.Setenv("GUILDSIM_SCENARIO_RETENTION_MAX", "0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScenarioRetentionMax != 0 {
		t.Fatalf("expected retention max 0 (unlimited pruning disabled), got %d", cfg.ScenarioRetentionMax)
	}
}
