package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultMaxFileBytes = 1 << 20 // 1 MiB

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Metadata store. DatabaseURL wins when set; otherwise the DSN is
	// assembled from the discrete POSTGRES_* variables.
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	PostgresSchema   string

	// Upload validation.
	MaxFileBytes int64

	// Blob store backend: "http" (object-store gateway), "s3" or "local".
	BlobStoreType string
	S3Host        string
	S3Port        string
	S3Bucket      string
	AWSRegion     string
	S3Prefix      string
	LocalStoreDir string

	// Failure reporting.
	LogLevel     string
	LogTraceback bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDB:       getEnv("POSTGRES_DB", "memes"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresSchema:   getEnv("POSTGRES_SCHEMA", "meme_center"),
		MaxFileBytes:     getEnvInt64("FILE_SIZE", defaultMaxFileBytes),
		BlobStoreType:    normalizeBlobStore(getEnv("BLOB_STORE", "http")),
		S3Host:           getEnv("S3_HOST", "localhost"),
		S3Port:           getEnv("S3_PORT", "9000"),
		S3Bucket:         getEnv("S3_BUCKET", "memes"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		S3Prefix:         os.Getenv("S3_PREFIX"),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		LogLevel:         normalizeLogLevel(getEnv("LOG_LEVEL", "info")),
		LogTraceback:     getEnvBool("LOG_TRACEBACK", false),
	}
}

// DSN returns the Postgres connection string for the metadata store.
// Empty when neither DATABASE_URL nor POSTGRES_HOST is configured.
func (c Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	if strings.TrimSpace(c.PostgresHost) == "" {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?search_path=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSchema,
	)
}

// BlobBaseURL returns the base URL of the HTTP object-store gateway.
func (c Config) BlobBaseURL() string {
	return fmt.Sprintf("http://%s:%s", c.S3Host, c.S3Port)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeBlobStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "local":
		return "local"
	default:
		return "http"
	}
}

func normalizeLogLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return "critical"
	case "error":
		return "error"
	case "warning", "warn":
		return "warning"
	default:
		return "info"
	}
}
