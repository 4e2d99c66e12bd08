package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxFileSize)
	assert.False(t, cfg.BlobEnabled())
	assert.Contains(t, cfg.CORS.AllowMethods, "PATCH")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestBlobDriver(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		endpoint string
		want     string
	}{
		{"default", "", "", "memory"},
		{"endpoint implies minio", "", "localhost:9000", "minio"},
		{"explicit s3", "s3", "", "s3"},
		{"explicit memory wins", "memory", "localhost:9000", "memory"},
		{"unknown falls back", "gcs", "", "memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Blob.Driver = tt.driver
			cfg.Blob.Endpoint = tt.endpoint
			assert.Equal(t, tt.want, cfg.BlobDriver())
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "2048")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_CONN_MAX_LIFETIME", "15m")

	cfg := Load()

	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.True(t, cfg.BlobEnabled())
	assert.True(t, cfg.Blob.UseSSL)
	assert.Equal(t, int64(2048), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 40, cfg.DB.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestPoolDefaultsIgnoreGarbage(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	cfg := Load()

	assert.Equal(t, 5, cfg.DB.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.DB.User = "u"
	cfg.DB.Password = "p"
	cfg.DB.Host = "db"
	cfg.DB.Port = "5432"
	cfg.DB.Name = "n"
	cfg.DB.SSLMode = "disable"

	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", cfg.GetDatabaseURL())
}
