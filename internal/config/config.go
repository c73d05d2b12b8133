package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"task-api/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string   `toml:"addr"`
	LogLevel        string   `toml:"log_level"`
	Seed            bool     `toml:"seed"`
	MetricsEnabled  bool     `toml:"metrics"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration позволяет писать в TOML значения вида "10s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() *Config {
	return &Config{
		Addr:            ":8080",
		LogLevel:        "info",
		Seed:            true,
		MetricsEnabled:  true,
		ReadTimeout:     Duration{10 * time.Second},
		WriteTimeout:    Duration{10 * time.Second},
		ShutdownTimeout: Duration{10 * time.Second},
	}
}

// Load собирает конфиг: значения по умолчанию -> TOML-файл (если path
// не пустой) -> .env -> переменные окружения.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TASKS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"TASKS_SEED", &cfg.Seed},
		{"TASKS_METRICS", &cfg.MetricsEnabled},
	}
	for _, b := range bools {
		v := os.Getenv(b.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	durations := []struct {
		key string
		dst *Duration
	}{
		{"TASKS_READ_TIMEOUT", &cfg.ReadTimeout},
		{"TASKS_WRITE_TIMEOUT", &cfg.WriteTimeout},
		{"TASKS_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		if err := d.dst.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
	}
	return nil
}
