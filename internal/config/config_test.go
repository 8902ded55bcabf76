package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBConfig.Driver)
	assert.Equal(t, "pet_inventory", cfg.DBConfig.Postgres.DBName)
	assert.Equal(t, 12*time.Hour, cfg.JWTConfig.SessionTTL)
	assert.Equal(t, "petstore_session", cfg.JWTConfig.CookieName)
	assert.Equal(t, "dev-secret", cfg.JWTConfig.Secret)
	assert.Empty(t, cfg.KafkaConfig.Brokers)
	assert.Empty(t, cfg.DefaultImages)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PETSTORE_SERVICE_PORT", "9090")
	t.Setenv("PETSTORE_DB_DRIVER", "SQLite")
	t.Setenv("PETSTORE_DB_SQLITE_DSN", "file::memory:")
	t.Setenv("PETSTORE_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("PETSTORE_CORS_ORIGINS", "http://localhost:3000")
	t.Setenv("PETSTORE_DEFAULT_IMAGES_DOG", "https://img.example/dog.png")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBConfig.Driver)
	assert.Equal(t, "file::memory:", cfg.DBConfig.SQLiteDSN)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, map[string]string{"Dog": "https://img.example/dog.png"}, cfg.DefaultImages)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PETSTORE_DB_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PETSTORE_APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "service_port: \"7070\"\ndefault_images:\n  cat: https://img.example/cat.png\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "https://img.example/cat.png", cfg.DefaultImages["Cat"])
}

func TestLoadClient(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PETADMIN_BASE_URL", "http://store.local:8080/")
	t.Setenv("PETADMIN_S3_BUCKET", "reports")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://store.local:8080", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.NotifyDelay)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "reports", cfg.S3Config.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Config.Region)
	assert.Equal(t, "petadmin-watch", cfg.KafkaConfig.GroupID)
}
