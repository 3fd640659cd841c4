package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	AI        AIConfig        `yaml:"ai"`
	Export    ExportConfig    `yaml:"export"`
	Jobs      JobsConfig      `yaml:"jobs"`
}

type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// TransportConfig selects how MCP is served: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path enables a rotated log file in addition to the console.
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type StoreConfig struct {
	Namespace string `yaml:"namespace"`
	SeedDemo  bool   `yaml:"seed_demo"`
}

type AIConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
	BaseURL string        `yaml:"base_url"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type JobsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Schedule string        `yaml:"schedule"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Transport: TransportConfig{Mode: "http"},
		DB: DBConfig{
			Path: "costtrack.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Store: StoreConfig{
			Namespace: "megacost_v2",
			SeedDemo:  true,
		},
		AI: AIConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 30 * time.Second,
		},
		Export: ExportConfig{Dir: "exports"},
		Jobs: JobsConfig{
			Enabled:  true,
			Schedule: "@every 1h",
			Timeout:  5 * time.Minute,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file, an optional
// .env file and environment variables, in increasing precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("COSTTRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("COSTTRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("COSTTRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid COSTTRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("COSTTRACK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if v := os.Getenv("COSTTRACK_AUTH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid COSTTRACK_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	if dbPath := os.Getenv("COSTTRACK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("COSTTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("COSTTRACK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if ns := os.Getenv("COSTTRACK_STORE_NAMESPACE"); ns != "" {
		cfg.Store.Namespace = ns
	}
	if v := os.Getenv("COSTTRACK_SEED_DEMO"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid COSTTRACK_SEED_DEMO: %w", err)
		}
		cfg.Store.SeedDemo = seed
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}
	if model := os.Getenv("COSTTRACK_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if v := os.Getenv("COSTTRACK_AI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid COSTTRACK_AI_TIMEOUT: %w", err)
		}
		cfg.AI.Timeout = d
	}
	if dir := os.Getenv("COSTTRACK_EXPORT_DIR"); dir != "" {
		cfg.Export.Dir = dir
	}
	if v := os.Getenv("COSTTRACK_JOBS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid COSTTRACK_JOBS_ENABLED: %w", err)
		}
		cfg.Jobs.Enabled = enabled
	}
	if spec := os.Getenv("COSTTRACK_JOBS_SCHEDULE"); spec != "" {
		cfg.Jobs.Schedule = spec
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
