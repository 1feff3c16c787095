// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetJWTRefreshSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetRefreshCookieName() string
	GetRefreshCookieSecure() bool
	GetEnv() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
	GetAssetOrigins() []string
	GetEnv() string
	GetMaxBodyBytes() int64
}

// RateLimitConfig provides settings for the rate limit tiers.
type RateLimitConfig interface {
	GetRedisURL() string
	GetRateLimitWindow() time.Duration
	GetRateLimitGeneral() int
	GetRateLimitStrict() int
	GetRateLimitAuth() int
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminNotifyAddress() string
}

// StorageConfig provides settings for MinIO S3-compatible storage.
type StorageConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMaxFileSize() int64
	GetDownloadsBucket() string
	IsMinIOEnabled() bool
}

// ChatConfig provides settings for the FAQ chatbot.
type ChatConfig interface {
	GetGeminiAPIKey() string
	GetChatModel() string
	GetChatFAQPath() string
	IsChatEnabled() bool
}

// SchedulerConfig provides settings for the asynq notification queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetQueueName() string
	GetWorkerConcurrency() int
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetAppBaseURL() string
	GetAdminNotifyAddress() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	AppBaseURL          string
	DatabaseURL         string
	JWTAccessSecret     string
	JWTRefreshSecret    string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	RefreshCookieName   string
	RefreshCookieSecure bool
	CORSOrigins         []string
	AssetOrigins        []string
	MaxBodyBytes        int64
	RedisURL            string
	RateLimitWindow     time.Duration
	RateLimitGeneral    int
	RateLimitStrict     int
	RateLimitAuth       int
	EmailEnabled        bool
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	AdminNotifyAddress  string
	MinIOEndpoint       string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOUseSSL         bool
	MaxFileSize         int64
	DownloadsBucket     string
	GeminiAPIKey        string
	ChatModel           string
	ChatFAQPath         string
	QueueName           string
	WorkerConcurrency   int
}

// =============================================================================
// Interface Implementations
// =============================================================================

func (c *Config) GetEnv() string         { return c.Env }
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetJWTAccessSecret() string        { return c.JWTAccessSecret }
func (c *Config) GetJWTRefreshSecret() string       { return c.JWTRefreshSecret }
func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }
func (c *Config) GetRefreshCookieName() string      { return c.RefreshCookieName }
func (c *Config) GetRefreshCookieSecure() bool      { return c.RefreshCookieSecure }

func (c *Config) GetHTTPAddr() string       { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string  { return c.CORSOrigins }
func (c *Config) GetAssetOrigins() []string { return c.AssetOrigins }
func (c *Config) GetMaxBodyBytes() int64    { return c.MaxBodyBytes }

func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetRateLimitWindow() time.Duration { return c.RateLimitWindow }
func (c *Config) GetRateLimitGeneral() int          { return c.RateLimitGeneral }
func (c *Config) GetRateLimitStrict() int           { return c.RateLimitStrict }
func (c *Config) GetRateLimitAuth() int             { return c.RateLimitAuth }

func (c *Config) GetEmailEnabled() bool         { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string       { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string       { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }
func (c *Config) GetAdminNotifyAddress() string { return c.AdminNotifyAddress }

func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMaxFileSize() int64      { return c.MaxFileSize }
func (c *Config) GetDownloadsBucket() string { return c.DownloadsBucket }
func (c *Config) IsMinIOEnabled() bool       { return c.MinIOEndpoint != "" }

func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetChatModel() string    { return c.ChatModel }
func (c *Config) GetChatFAQPath() string  { return c.ChatFAQPath }
func (c *Config) IsChatEnabled() bool     { return c.GeminiAPIKey != "" }

func (c *Config) GetQueueName() string      { return c.QueueName }
func (c *Config) GetWorkerConcurrency() int { return c.WorkerConcurrency }

func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// Load reads configuration from environment variables.
// A .env file is loaded when present, real environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	cookieSecure := strings.EqualFold(env, "production")
	if raw := os.Getenv("REFRESH_COOKIE_SECURE"); raw != "" {
		cookieSecure = strings.EqualFold(raw, "true")
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                 env,
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		AppBaseURL:          strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTAccessSecret:     getEnv("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret:    getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenTTL:      mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		RefreshTokenTTL:     mustDuration(getEnv("JWT_REFRESH_TTL", "720h")),
		RefreshCookieName:   getEnv("REFRESH_COOKIE_NAME", "pago_refresh"),
		RefreshCookieSecure: cookieSecure,
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AssetOrigins:        splitCSV(getEnv("ASSET_ORIGINS", "")),
		MaxBodyBytes:        mustInt64(getEnv("MAX_BODY_BYTES", "1048576")),
		RedisURL:            getEnv("REDIS_URL", ""),
		RateLimitWindow:     mustDuration(getEnv("RATE_LIMIT_WINDOW", "15m")),
		RateLimitGeneral:    mustInt(getEnv("RATE_LIMIT_GENERAL", "100")),
		RateLimitStrict:     mustInt(getEnv("RATE_LIMIT_STRICT", "20")),
		RateLimitAuth:       mustInt(getEnv("RATE_LIMIT_AUTH", "10")),
		EmailEnabled:        emailEnabled && smtpHost != "",
		SMTPHost:            smtpHost,
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "P.A.G.O."),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminNotifyAddress:  getEnv("ADMIN_NOTIFY_ADDRESS", ""),
		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:         strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MaxFileSize:         mustInt64(getEnv("MAX_FILE_SIZE", "52428800")),
		DownloadsBucket:     getEnv("MINIO_BUCKET_DOWNLOADS", "pago-downloads"),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		ChatModel:           getEnv("CHAT_MODEL", "gemini-2.0-flash"),
		ChatFAQPath:         getEnv("CHATBOT_FAQ_PATH", "faq.yaml"),
		QueueName:           getEnv("ASYNQ_QUEUE", "notifications"),
		WorkerConcurrency:   mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.EmailEnabled && cfg.AdminNotifyAddress == "" {
		return nil, fmt.Errorf("ADMIN_NOTIFY_ADDRESS is required when email is enabled")
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	return int(mustInt64(value))
}

func mustInt64(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
