package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultSeed is the starting rng seed the demo harness uses absent an override.
	DefaultSeed uint32 = 1

	// DefaultStartingMoneyCopper mirrors engine.InitialState's starting balance;
	// overriding it only changes what the demo harness requests, never the
	// engine's own zero-argument default.
	DefaultStartingMoneyCopper int64 = 100

	// DefaultScenarioDir is where cmd/guildsim rolls scenario logs.
	DefaultScenarioDir = "scenarios"

	// DefaultLogLevel controls verbosity for guildsim logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "guildsim.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true

	// DefaultScenarioRetentionMax bounds how many rolled scenario logs are kept.
	DefaultScenarioRetentionMax = 50
	// DefaultScenarioRetentionAge bounds how long a rolled scenario log survives.
	DefaultScenarioRetentionAge = 7 * 24 * time.Hour
)

// Config captures all runtime tunables for the cmd/guildsim demo harness.
// The engine package itself never reads this — spec.md §1 keeps the core
// free of configuration and I/O.
type Config struct {
	Seed                 uint32
	StartingMoneyCopper  int64
	ScenarioDir          string
	ScenarioRetentionMax int
	ScenarioRetentionAge time.Duration
	Logging              LoggingConfig
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads the guildsim configuration from environment variables, applying
// sane defaults and returning descriptive errors for invalid overrides.
func Load() (*Config, error) {
	cfg := &Config{
		Seed:                 DefaultSeed,
		StartingMoneyCopper:  DefaultStartingMoneyCopper,
		ScenarioDir:          getString("GUILDSIM_SCENARIO_DIR", DefaultScenarioDir),
		ScenarioRetentionMax: DefaultScenarioRetentionMax,
		ScenarioRetentionAge: DefaultScenarioRetentionAge,
		Logging: LoggingConfig{
			Level:      strings.TrimSpace(getString("GUILDSIM_LOG_LEVEL", DefaultLogLevel)),
			Path:       strings.TrimSpace(getString("GUILDSIM_LOG_PATH", DefaultLogPath)),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_SEED")); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			problems = append(problems, fmt.Sprintf("GUILDSIM_SEED must be a non-negative 32-bit integer, got %q", raw))
		} else {
			cfg.Seed = uint32(value)
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_STARTING_MONEY_COPPER")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("GUILDSIM_STARTING_MONEY_COPPER must be a non-negative integer, got %q", raw))
		} else {
			cfg.StartingMoneyCopper = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_SCENARIO_RETENTION_MAX")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("GUILDSIM_SCENARIO_RETENTION_MAX must be a non-negative integer, got %q", raw))
		} else {
			cfg.ScenarioRetentionMax = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_SCENARIO_RETENTION_AGE")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration < 0 {
			problems = append(problems, fmt.Sprintf("GUILDSIM_SCENARIO_RETENTION_AGE must be a non-negative duration, got %q", raw))
		} else {
			cfg.ScenarioRetentionAge = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("GUILDSIM_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("GUILDSIM_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("GUILDSIM_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GUILDSIM_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("GUILDSIM_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf(strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
