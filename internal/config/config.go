package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Import    ImportConfig
	Backup    BackupConfig
	RateLimit RateLimitConfig
	Settings  SettingsConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ImportConfig bounds what a single code import may cost.
type ImportConfig struct {
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
	ParseTimeout  time.Duration `mapstructure:"parse_timeout"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (c *ImportConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// BackupConfig holds settings for archived OTP snapshots.
type BackupConfig struct {
	KeyPrefix     string `mapstructure:"key_prefix"`
	DefaultFormat string `mapstructure:"default_format"`
}

// RateLimitConfig throttles the login endpoint.
type RateLimitConfig struct {
	LoginRPS   float64 `mapstructure:"login_rps"`
	LoginBurst int     `mapstructure:"login_burst"`
}

// SettingsConfig controls runtime settings lookups.
type SettingsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// JWTConfig holds JWT signing and expiry settings. The access token lifetime
// is normally taken from the jwt_expiration_hours setting; AccessTokenExpiry
// is used when that setting cannot be read.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds settings for the backup bucket.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the OTPSHARE_
// prefix. A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env file")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("OTPSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "otpshare")
	v.SetDefault("db.password", "otpshare_secret")
	v.SetDefault("db.name", "otpshare_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "otpshare")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "otpshare-backups")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Import defaults
	v.SetDefault("import.max_file_size_mb", 10)
	v.SetDefault("import.parse_timeout", "30s")

	// Backup defaults
	v.SetDefault("backup.key_prefix", "backups")
	v.SetDefault("backup.default_format", "xlsx")

	// Rate limit defaults
	v.SetDefault("rate_limit.login_rps", 1)
	v.SetDefault("rate_limit.login_burst", 10)

	// Settings defaults
	v.SetDefault("settings.cache_ttl", "1m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "OTPSHARE_SERVER_PORT",
		"server.read_timeout":     "OTPSHARE_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "OTPSHARE_SERVER_WRITE_TIMEOUT",
		"server.environment":      "OTPSHARE_SERVER_ENVIRONMENT",
		"db.host":                 "OTPSHARE_DB_HOST",
		"db.port":                 "OTPSHARE_DB_PORT",
		"db.user":                 "OTPSHARE_DB_USER",
		"db.password":             "OTPSHARE_DB_PASSWORD",
		"db.name":                 "OTPSHARE_DB_NAME",
		"db.sslmode":              "OTPSHARE_DB_SSLMODE",
		"db.max_open":             "OTPSHARE_DB_MAX_OPEN",
		"db.max_idle":             "OTPSHARE_DB_MAX_IDLE",
		"jwt.secret":              "OTPSHARE_JWT_SECRET",
		"jwt.access_expiry":       "OTPSHARE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "OTPSHARE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "OTPSHARE_JWT_ISSUER",
		"s3.enabled":              "OTPSHARE_S3_ENABLED",
		"s3.region":               "OTPSHARE_S3_REGION",
		"s3.bucket":               "OTPSHARE_S3_BUCKET",
		"s3.endpoint":             "OTPSHARE_S3_ENDPOINT",
		"s3.access_key":           "OTPSHARE_S3_ACCESS_KEY",
		"s3.secret_key":           "OTPSHARE_S3_SECRET_KEY",
		"s3.presign_expiry":       "OTPSHARE_S3_PRESIGN_EXPIRY",
		"log.level":               "OTPSHARE_LOG_LEVEL",
		"log.format":              "OTPSHARE_LOG_FORMAT",
		"cors.allowed_origins":    "OTPSHARE_CORS_ALLOWED_ORIGINS",
		"import.max_file_size_mb": "OTPSHARE_IMPORT_MAX_FILE_SIZE_MB",
		"import.parse_timeout":    "OTPSHARE_IMPORT_PARSE_TIMEOUT",
		"backup.key_prefix":       "OTPSHARE_BACKUP_KEY_PREFIX",
		"backup.default_format":   "OTPSHARE_BACKUP_DEFAULT_FORMAT",
		"rate_limit.login_rps":    "OTPSHARE_RATE_LIMIT_LOGIN_RPS",
		"rate_limit.login_burst":  "OTPSHARE_RATE_LIMIT_LOGIN_BURST",
		"settings.cache_ttl":      "OTPSHARE_SETTINGS_CACHE_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if OTPSHARE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("OTPSHARE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Import = ImportConfig{
		MaxFileSizeMB: v.GetInt64("import.max_file_size_mb"),
		ParseTimeout:  v.GetDuration("import.parse_timeout"),
	}
	cfg.Backup = BackupConfig{
		KeyPrefix:     strings.Trim(v.GetString("backup.key_prefix"), "/"),
		DefaultFormat: v.GetString("backup.default_format"),
	}
	cfg.RateLimit = RateLimitConfig{
		LoginRPS:   v.GetFloat64("rate_limit.login_rps"),
		LoginBurst: v.GetInt("rate_limit.login_burst"),
	}
	cfg.Settings = SettingsConfig{
		CacheTTL: v.GetDuration("settings.cache_ttl"),
	}

	if cfg.Import.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("config: import.max_file_size_mb must be positive, got %d", cfg.Import.MaxFileSizeMB)
	}
	if cfg.Import.ParseTimeout <= 0 {
		return nil, fmt.Errorf("config: import.parse_timeout must be positive, got %s", cfg.Import.ParseTimeout)
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
