package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	S3          S3Config
	Log         LogConfig
	CORS        CORSConfig
	Batch       BatchConfig
	TextExtract TextExtractConfig
	Export      ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// MaxUploadMB bounds the multipart form size per request.
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the artifact archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
	// Enabled gates artifact archiving; the pipeline works without it.
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BatchConfig holds batch extraction settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// TextExtractConfig holds settings for the text extraction collaborator.
type TextExtractConfig struct {
	// Endpoint of the OCR/linearization service. Empty means plain passthrough,
	// which only handles text uploads.
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	// BaseName is the stem of generated download filenames.
	BaseName string `mapstructure:"base_name"`
	// RenameUseName / RenameUsePassport control which record fields feed the
	// synthesized filenames in rename bundles.
	RenameUseName     bool `mapstructure:"rename_use_name"`
	RenameUsePassport bool `mapstructure:"rename_use_passport"`
}

// Load reads configuration from environment variables with the IMIDOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IMIDOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 100)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "imidok")
	v.SetDefault("db.password", "imidok_secret")
	v.SetDefault("db.name", "imidok_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.bucket", "imidok-artifacts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)
	v.SetDefault("s3.enabled", false)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Batch defaults
	v.SetDefault("batch.concurrency", 8)

	// Text extraction defaults
	v.SetDefault("textextract.endpoint", "")
	v.SetDefault("textextract.timeout_secs", 60)

	// Export defaults
	v.SetDefault("export.base_name", "extracted_data")
	v.SetDefault("export.rename_use_name", true)
	v.SetDefault("export.rename_use_passport", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "IMIDOK_SERVER_PORT",
		"server.read_timeout":        "IMIDOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "IMIDOK_SERVER_WRITE_TIMEOUT",
		"server.environment":         "IMIDOK_SERVER_ENVIRONMENT",
		"server.max_upload_mb":       "IMIDOK_SERVER_MAX_UPLOAD_MB",
		"db.host":                    "IMIDOK_DB_HOST",
		"db.port":                    "IMIDOK_DB_PORT",
		"db.user":                    "IMIDOK_DB_USER",
		"db.password":                "IMIDOK_DB_PASSWORD",
		"db.name":                    "IMIDOK_DB_NAME",
		"db.sslmode":                 "IMIDOK_DB_SSLMODE",
		"db.max_open":                "IMIDOK_DB_MAX_OPEN",
		"db.max_idle":                "IMIDOK_DB_MAX_IDLE",
		"s3.region":                  "IMIDOK_S3_REGION",
		"s3.bucket":                  "IMIDOK_S3_BUCKET",
		"s3.endpoint":                "IMIDOK_S3_ENDPOINT",
		"s3.access_key":              "IMIDOK_S3_ACCESS_KEY",
		"s3.secret_key":              "IMIDOK_S3_SECRET_KEY",
		"s3.presign_expiry":          "IMIDOK_S3_PRESIGN_EXPIRY",
		"s3.enabled":                 "IMIDOK_S3_ENABLED",
		"log.level":                  "IMIDOK_LOG_LEVEL",
		"log.format":                 "IMIDOK_LOG_FORMAT",
		"cors.allowed_origins":       "IMIDOK_CORS_ALLOWED_ORIGINS",
		"batch.concurrency":          "IMIDOK_BATCH_CONCURRENCY",
		"textextract.endpoint":       "IMIDOK_TEXTEXTRACT_ENDPOINT",
		"textextract.timeout_secs":   "IMIDOK_TEXTEXTRACT_TIMEOUT_SECS",
		"export.base_name":           "IMIDOK_EXPORT_BASE_NAME",
		"export.rename_use_name":     "IMIDOK_EXPORT_RENAME_USE_NAME",
		"export.rename_use_passport": "IMIDOK_EXPORT_RENAME_USE_PASSPORT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if IMIDOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("IMIDOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
		Enabled:       v.GetBool("s3.enabled"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
	}
	cfg.TextExtract = TextExtractConfig{
		Endpoint:    v.GetString("textextract.endpoint"),
		TimeoutSecs: v.GetInt("textextract.timeout_secs"),
	}
	cfg.Export = ExportConfig{
		BaseName:          v.GetString("export.base_name"),
		RenameUseName:     v.GetBool("export.rename_use_name"),
		RenameUsePassport: v.GetBool("export.rename_use_passport"),
	}

	return cfg, nil
}
