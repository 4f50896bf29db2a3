package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the slog level and optional rotated log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// SnapshotConfig points at an S3-compatible bucket. Export is disabled
// while Bucket is empty.
type SnapshotConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// Enabled reports whether a bucket is configured.
func (s SnapshotConfig) Enabled() bool {
	return s.Bucket != ""
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "kanbee.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Snapshot: SnapshotConfig{
			Region: "us-east-1",
			Prefix: "kanbee",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("KANBEE_CONFIG_PATH"); path != "" {
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

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("invalid transport mode %q: want %q or %q", c.Transport.Mode, TransportHTTP, TransportStdio)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db path is required")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("KANBEE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("KANBEE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid KANBEE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("KANBEE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("KANBEE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("KANBEE_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("KANBEE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}

	snapshotVars := map[string]*string{
		"KANBEE_SNAPSHOT_ENDPOINT":   &cfg.Snapshot.Endpoint,
		"KANBEE_SNAPSHOT_REGION":     &cfg.Snapshot.Region,
		"KANBEE_SNAPSHOT_BUCKET":     &cfg.Snapshot.Bucket,
		"KANBEE_SNAPSHOT_PREFIX":     &cfg.Snapshot.Prefix,
		"KANBEE_SNAPSHOT_ACCESS_KEY": &cfg.Snapshot.AccessKey,
		"KANBEE_SNAPSHOT_SECRET_KEY": &cfg.Snapshot.SecretKey,
	}
	for name, dst := range snapshotVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("KANBEE_SNAPSHOT_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KANBEE_SNAPSHOT_PATH_STYLE: %w", err)
		}
		cfg.Snapshot.UsePathStyle = b
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
