package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string

	Storage struct {
		Type       string
		FilePath   string
		SQLitePath string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string

		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}

	Server struct {
		Port    string
		GinMode string
	}

	Blob struct {
		// Driver is minio, s3 or memory. Empty picks minio when an
		// endpoint is set.
		Driver    string
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
		PublicURL string

		S3 struct {
			Bucket    string
			Region    string
			Endpoint  string
			PathStyle bool
			PublicURL string
		}
	}

	Metrics struct {
		Enabled bool
		Path    string
	}

	Upload struct {
		MaxFileSize int64
	}

	CORS struct {
		AllowOrigins []string
		AllowMethods []string
		AllowHeaders []string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.Environment = getEnv("ENVIRONMENT", "development")
	config.LogLevel = getEnv("LOG_LEVEL", "info")
	config.LogFormat = getEnv("LOG_FORMAT", "text")

	config.Storage.Type = getEnv("STORAGE_TYPE", "sqlite")
	config.Storage.FilePath = getEnv("STORAGE_FILE", "./data/partnerships.json")
	config.Storage.SQLitePath = getEnv("SQLITE_PATH", "./data/partnerships.db")

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "partnerships")
	config.DB.Password = getEnv("DB_PASSWORD", "partnerships_password")
	config.DB.Name = getEnv("DB_NAME", "partnerships_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	config.DB.MaxOpenConns = int(getEnvAsInt64("DB_MAX_OPEN_CONNS", 25))
	config.DB.MaxIdleConns = int(getEnvAsInt64("DB_MAX_IDLE_CONNS", 5))
	config.DB.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour)

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Blob.Driver = strings.ToLower(getEnv("BLOB_DRIVER", ""))
	config.Blob.Endpoint = getEnv("MINIO_ENDPOINT", "")
	config.Blob.AccessKey = getEnv("MINIO_ACCESS_KEY", "")
	config.Blob.SecretKey = getEnv("MINIO_SECRET_KEY", "")
	config.Blob.Bucket = getEnv("MINIO_BUCKET", "publication-screenshots")
	config.Blob.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)
	config.Blob.PublicURL = getEnv("MINIO_PUBLIC_URL", "")

	config.Blob.S3.Bucket = getEnv("S3_BUCKET", "")
	config.Blob.S3.Region = getEnv("S3_REGION", "us-east-1")
	config.Blob.S3.Endpoint = getEnv("S3_ENDPOINT", "")
	config.Blob.S3.PathStyle = getEnvAsBool("S3_PATH_STYLE", false)
	config.Blob.S3.PublicURL = getEnv("S3_PUBLIC_URL", "")

	config.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", true)
	config.Metrics.Path = getEnv("METRICS_PATH", "/metrics")

	config.Upload.MaxFileSize = getEnvAsInt64("UPLOAD_MAX_FILE_SIZE", 10485760)

	config.CORS.AllowOrigins = getEnvAsList("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	config.CORS.AllowMethods = getEnvAsList("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnvAsList("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// BlobEnabled reports whether uploads go to a remote object store
func (c *Config) BlobEnabled() bool {
	return c.BlobDriver() != "memory"
}

// BlobDriver resolves the configured blob backend
func (c *Config) BlobDriver() string {
	switch c.Blob.Driver {
	case "minio", "s3", "memory":
		return c.Blob.Driver
	}
	if c.Blob.Endpoint != "" {
		return "minio"
	}
	return "memory"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
