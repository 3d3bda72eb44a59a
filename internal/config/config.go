package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backend selectors.
const (
	BackendMinIO = "minio"
	BackendDisk  = "disk"
)

// Locator modes for the MinIO backend.
const (
	LocatorsProxy     = "proxy"
	LocatorsPresigned = "presigned"
)

// Config aggregates runtime configuration for the AirGo3D panorama API.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	MinIO    MinIOConfig
	Storage  StorageConfig
	Metrics  MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigin   string
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PostgresConfig contains PostgreSQL connection details.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// MinIOConfig carries MinIO connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// StorageConfig selects and parameterizes the blob backend.
type StorageConfig struct {
	// Backend is either "minio" or "disk".
	Backend string
	// UploadDir roots the disk backend.
	UploadDir string
	// PublicBaseURL prefixes the preview/thumbnail locators stored on
	// records, e.g. "http://localhost:8080". Empty means server-relative.
	PublicBaseURL string
	// MaxUploadBytes caps a single upload.
	MaxUploadBytes int64
	// Locators is "proxy" (serve through the API) or "presigned"
	// (direct presigned object-store URLs, MinIO backend only).
	Locators   string
	PresignTTL time.Duration
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("AIRGO_API_HOST", "0.0.0.0"),
			Port:         getInt("AIRGO_API_PORT", 8080),
			ReadTimeout:  getDuration("AIRGO_API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("AIRGO_API_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("AIRGO_API_IDLE_TIMEOUT", 60*time.Second),
			CORSOrigin:   getString("AIRGO_CORS_ORIGIN", "http://localhost:3000"),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     getInt("POSTGRES_PORT", 5432),
			User:     getString("POSTGRES_USER", "airgo_app"),
			Password: getString("POSTGRES_PASSWORD", "change-me"),
			Database: getString("POSTGRES_DB", "airgo3d"),
			SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),
		},
		MinIO: MinIOConfig{
			Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("MINIO_ROOT_USER", "minioadmin"),
			SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "minioadmin"),
			Bucket:          getString("MINIO_BUCKET", "airgo3d"),
			UseSSL:          getBool("MINIO_USE_SSL", false),
			Region:          getString("MINIO_REGION", "us-east-1"),
		},
		Storage: loadStorageConfig(),
		Metrics: MetricsConfig{
			PrometheusPath: getString("AIRGO_METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Storage.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:        strings.ToLower(getString("STORAGE_BACKEND", BackendMinIO)),
		UploadDir:      getString("UPLOAD_DIR", "uploads-data"),
		PublicBaseURL:  strings.TrimRight(getString("SERVER_URL", ""), "/"),
		MaxUploadBytes: getInt64("AIRGO_MAX_UPLOAD_BYTES", 100*1024*1024),
		Locators:       strings.ToLower(getString("STORAGE_LOCATORS", LocatorsProxy)),
		PresignTTL:     getDuration("STORAGE_PRESIGN_TTL", 1*time.Hour),
	}
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case BackendMinIO, BackendDisk:
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	switch s.Locators {
	case LocatorsProxy, LocatorsPresigned:
	default:
		return fmt.Errorf("unknown locator mode %q", s.Locators)
	}
	if s.Locators == LocatorsPresigned && s.Backend != BackendMinIO {
		return fmt.Errorf("presigned locators require the minio backend")
	}
	return nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
