package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

type LogConfig struct {
	Level  string
	Format string
}

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
}

type RedisConfig struct {
	// Enabled turns on export status tracking even when state lives in
	// another backend.
	Enabled     bool
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	Prefix      string
}

type S3Config struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
}

type StorageConfig struct {
	Backend string
	Dir     string
}

type FilesConfig struct {
	Dir          string
	PublicPrefix string
	ExternalURL  string
	Retention    time.Duration
}

type AppConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	AllowedOrigins  string

	Log      LogConfig
	Storage  StorageConfig
	Files    FilesConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	S3       S3Config
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parser accumulates conversion errors so Load can report every bad value at once.
type parser struct {
	errs []error
}

func (p *parser) atoi(key, def string) int {
	s := getenv(key, def)
	i, err := strconv.Atoi(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid int value %q", key, s))
	}
	return i
}

func (p *parser) bool(key, def string) bool {
	s := getenv(key, def)
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid bool value %q", key, s))
	}
	return b
}

func (p *parser) duration(key, def string) time.Duration {
	s := getenv(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration value %q", key, s))
	}
	return d
}

func (p *parser) backend(key, def string) string {
	s := getenv(key, def)
	switch s {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres, BackendS3:
	default:
		p.errs = append(p.errs, fmt.Errorf("%s: unknown storage backend %q", key, s))
	}
	return s
}

func Load() (AppConfig, error) {
	var p parser

	cfg := AppConfig{
		Port:            getenv("APP_PORT", "8010"),
		ShutdownTimeout: p.duration("APP_SHUTDOWN_TIMEOUT", "10s"),
		RequestTimeout:  p.duration("APP_REQUEST_TIMEOUT", "60s"),
		AllowedOrigins:  getenv("APP_ALLOWED_ORIGINS", "*"),
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
		Storage: StorageConfig{
			Backend: p.backend("STORAGE_BACKEND", BackendFile),
			Dir:     getenv("STORAGE_DIR", "./data/state"),
		},
		Files: FilesConfig{
			Dir:          getenv("FILES_DIR", "./data/exports"),
			PublicPrefix: getenv("FILES_PUBLIC_PREFIX", "/files"),
			ExternalURL:  getenv("FILES_EXTERNAL_URL", ""),
			Retention:    p.duration("FILES_RETENTION", "30m"),
		},
		Postgres: PostgresConfig{
			Host:         getenv("PG_HOST", "127.0.0.1"),
			Port:         p.atoi("PG_PORT", "5432"),
			User:         getenv("PG_USER", "postgres"),
			Password:     getenv("PG_PASSWORD", "postgres"),
			DBName:       getenv("PG_DB", "talent_horizon"),
			SSLMode:      getenv("PG_SSLMODE", "disable"),
			MaxOpenConns: p.atoi("PG_MAX_OPEN_CONNS", "10"),
		},
		Redis: RedisConfig{
			Enabled:     p.bool("REDIS_ENABLED", "false"),
			Addr:        getenv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    getenv("REDIS_PASSWORD", ""),
			DB:          p.atoi("REDIS_DB", "0"),
			MaxRetries:  p.atoi("REDIS_MAX_RETRIES", "5"),
			DialTimeout: p.duration("REDIS_DIAL_TIMEOUT", "10s"),
			Timeout:     p.duration("REDIS_TIMEOUT", "5s"),
			Prefix:      getenv("REDIS_PREFIX", "talent_horizon_"),
		},
		S3: S3Config{
			Enabled:         p.bool("S3_ENABLED", "false"),
			Endpoint:        getenv("S3_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getenv("S3_ACCESS_KEY", "minio"),
			SecretAccessKey: getenv("S3_SECRET_KEY", "minio123"),
			Bucket:          getenv("S3_BUCKET", "talent-horizon"),
			Region:          getenv("S3_REGION", "us-east-1"),
			UseSSL:          p.bool("S3_USE_SSL", "false"),
			Prefix:          getenv("S3_PREFIX", ""),
		},
	}

	if err := errors.Join(p.errs...); err != nil {
		return AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// NeedsRedis reports whether any component requires a redis connection.
func (c AppConfig) NeedsRedis() bool {
	return c.Redis.Enabled || c.Storage.Backend == BackendRedis
}

// NeedsS3 reports whether any component requires an S3 client.
func (c AppConfig) NeedsS3() bool {
	return c.S3.Enabled || c.Storage.Backend == BackendS3
}
