package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "fieldops.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "FIELDOPS_PORT")
	setString(&cfg.Server.CORSOrigin, "FIELDOPS_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "FIELDOPS_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "FIELDOPS_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "FIELDOPS_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "FIELDOPS_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "FIELDOPS_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.GCal.CredentialsFile, "FIELDOPS_GCAL_CREDENTIALS")
	setString(&cfg.GCal.CalendarID, "FIELDOPS_GCAL_CALENDAR_ID")
	setString(&cfg.Logging.Level, "FIELDOPS_LOG_LEVEL")
	setString(&cfg.Logging.Service, "FIELDOPS_LOG_SERVICE")
	setInt64(&cfg.Cache.MaxSizeMB, "FIELDOPS_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.ManagerTTL, "FIELDOPS_CACHE_MANAGER_TTL")
	setDuration(&cfg.Sweep.ReminderLead, "FIELDOPS_SWEEP_REMINDER_LEAD")
	setDuration(&cfg.Sweep.ReminderWindow, "FIELDOPS_SWEEP_REMINDER_WINDOW")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.NATS.URL == "" {
		return errors.New("nats.url is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Sweep.ReminderWindow <= 0 {
		return errors.New("sweep.reminder_window must be positive")
	}
	if cfg.Sweep.ReminderLead < cfg.Sweep.ReminderWindow/2 {
		return errors.New("sweep.reminder_lead must be at least half the reminder window")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
