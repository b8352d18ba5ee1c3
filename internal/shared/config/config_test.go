package config

import (
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "CORS_ALLOW_ORIGINS",
		"DATABASE_URL", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_SCHEMA",
		"FILE_SIZE", "BLOB_STORE", "S3_HOST", "S3_PORT", "S3_BUCKET",
		"AWS_REGION", "S3_PREFIX", "LOCAL_STORE_DIR",
		"LOG_LEVEL", "LOG_TRACEBACK",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.MaxFileBytes != 1<<20 {
		t.Errorf("MaxFileBytes = %d", cfg.MaxFileBytes)
	}
	if cfg.BlobStoreType != "http" {
		t.Errorf("BlobStoreType = %q", cfg.BlobStoreType)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogTraceback {
		t.Error("LogTraceback defaulted to true")
	}
	if got := cfg.DSN(); got != "" {
		t.Errorf("DSN without host = %q", got)
	}
	if got := cfg.BlobBaseURL(); got != "http://localhost:9000" {
		t.Errorf("BlobBaseURL = %q", got)
	}
}

func TestDSNFromDiscreteVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg := Load()
	want := "postgres://postgres:secret@db:5432/memes?search_path=meme_center"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestDatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@elsewhere:5432/other")
	t.Setenv("POSTGRES_HOST", "db")

	cfg := Load()
	if got := cfg.DSN(); got != "postgres://u:p@elsewhere:5432/other" {
		t.Errorf("DSN = %q", got)
	}
}

func TestFileSizeOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("FILE_SIZE", "2097152")

	if got := Load().MaxFileBytes; got != 2<<20 {
		t.Errorf("MaxFileBytes = %d", got)
	}
}

func TestFileSizeRejectsGarbage(t *testing.T) {
	clearEnv(t)
	for _, raw := range []string{"abc", "-5", "0"} {
		t.Setenv("FILE_SIZE", raw)
		if got := Load().MaxFileBytes; got != 1<<20 {
			t.Errorf("FILE_SIZE=%q: MaxFileBytes = %d", raw, got)
		}
	}
}

func TestCORSOriginsSplit(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example ,")

	got := Load().CORSAllowOrigin
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CORSAllowOrigin = %v", got)
	}
}

func TestNormalization(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "PROD")
	t.Setenv("BLOB_STORE", "weird")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_TRACEBACK", "true")

	cfg := Load()
	if cfg.Env != "production" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.BlobStoreType != "http" {
		t.Errorf("BlobStoreType = %q", cfg.BlobStoreType)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.LogTraceback {
		t.Error("LOG_TRACEBACK=true not applied")
	}
}
