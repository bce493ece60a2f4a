package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "sirepre-development-secret-change-me"

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Media     MediaConfig
	Storage   StorageConfig
	Printing  PrintingConfig
	Telemetry TelemetryConfig
	Messaging MessagingConfig
	Profiling ProfilingConfig
	Docs      DocsConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// IsProduction reports whether the app runs in production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres, sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled       bool
	Host          string
	Port          int
	Password      string
	DB            int
	VenueCacheTTL time.Duration
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings for staff sessions
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	MaxBodySize       int64
	MaxUploadSize     int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
}

// MediaConfig locates generated files and static assets on disk.
type MediaConfig struct {
	Root          string
	LogoPath      string
	ReceiptSubdir string
	QRTempSubdir  string
	UploadSubdir  string
}

// ReceiptDir is the directory holding generated receipts.
func (m MediaConfig) ReceiptDir() string {
	return filepath.Join(m.Root, m.ReceiptSubdir)
}

// QRTempDir is the directory for short-lived QR images.
func (m MediaConfig) QRTempDir() string {
	return filepath.Join(m.Root, m.QRTempSubdir)
}

// UploadDir is the directory for uploaded documents on local storage.
func (m MediaConfig) UploadDir() string {
	return filepath.Join(m.Root, m.UploadSubdir)
}

// StorageConfig selects where uploaded documents are kept.
type StorageConfig struct {
	Type              string // local, s3
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UsePathStyle      bool
	PresignExpiration time.Duration
}

// PrintingConfig configures the headless Chrome used for HTML reports.
type PrintingConfig struct {
	ChromePath string
	// ChromeURL attaches to an already running browser instead
	ChromeURL string
	Timeout   time.Duration
	MaxTabs   int
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // 0.0-1.0
	ServiceName       string
	Insecure          bool
	MetricsEnabled    bool
	ExportInterval    time.Duration
	DBTraceEnabled    bool
	// LogsEnabled also ships zap entries at LogsLevel or above to the collector
	LogsEnabled bool
	LogsLevel   string
}

// MessagingConfig configures the domain event publisher.
type MessagingConfig struct {
	KafkaEnabled bool
	Brokers      []string
	Topic        string
}

// DocsConfig exposes the OpenAPI documentation under /swagger.
type DocsConfig struct {
	Enabled     bool
	RequireAuth bool
	AllowedIPs  []string
}

// ProfilingConfig enables continuous profiling with Pyroscope.
type ProfilingConfig struct {
	Enabled       bool
	ServerAddress string
	Types         []string
	// SpanProfiles links CPU samples to the active trace span
	SpanProfiles bool
}

// Load loads configuration from a .env file, environment variables and
// config.toml. Priority (highest to lowest):
// 1. Environment variables with SIREPRE_ prefix (e.g., SIREPRE_DATABASE_PASSWORD),
// including those loaded from .env
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SIREPRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			SQLitePath:      v.GetString("database.sqlite_path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Enabled:       v.GetBool("redis.enabled"),
			Host:          v.GetString("redis.host"),
			Port:          v.GetInt("redis.port"),
			Password:      v.GetString("redis.password"),
			DB:            v.GetInt("redis.db"),
			VenueCacheTTL: v.GetDuration("redis.venue_cache_ttl"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			MaxUploadSize:     v.GetInt64("http.max_upload_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allowed_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
		},
		Media: MediaConfig{
			Root:          v.GetString("media.root"),
			LogoPath:      v.GetString("media.logo_path"),
			ReceiptSubdir: v.GetString("media.receipt_subdir"),
			QRTempSubdir:  v.GetString("media.qr_temp_subdir"),
			UploadSubdir:  v.GetString("media.upload_subdir"),
		},
		Storage: StorageConfig{
			Type:              v.GetString("storage.type"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
		},
		Printing: PrintingConfig{
			ChromePath: v.GetString("printing.chrome_path"),
			ChromeURL:  v.GetString("printing.chrome_url"),
			Timeout:    v.GetDuration("printing.timeout"),
			MaxTabs:    v.GetInt("printing.max_tabs"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			ExportInterval:    v.GetDuration("telemetry.export_interval"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			LogsLevel:         v.GetString("telemetry.logs_level"),
		},
		Messaging: MessagingConfig{
			KafkaEnabled: v.GetBool("messaging.kafka_enabled"),
			Brokers:      v.GetStringSlice("messaging.brokers"),
			Topic:        v.GetString("messaging.topic"),
		},
		Profiling: ProfilingConfig{
			Enabled:       v.GetBool("profiling.enabled"),
			ServerAddress: v.GetString("profiling.server_address"),
			Types:         v.GetStringSlice("profiling.types"),
			SpanProfiles:  v.GetBool("profiling.span_profiles"),
		},
		Docs: DocsConfig{
			Enabled:     v.GetBool("docs.enabled"),
			RequireAuth: v.GetBool("docs.require_auth"),
			AllowedIPs:  v.GetStringSlice("docs.allowed_ips"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sirepre"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8000"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "sirepre"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "sirepre.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.VenueCacheTTL == 0 {
		cfg.Redis.VenueCacheTTL = 10 * time.Minute
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = DefaultJWTSecret
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 60 * time.Minute
	}
	if cfg.JWT.RefreshTokenExpiration == 0 {
		cfg.JWT.RefreshTokenExpiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "sirepre"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 30 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 50 << 20
	}
	if cfg.HTTP.MaxUploadSize == 0 {
		cfg.HTTP.MaxUploadSize = 10 << 20
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}

	if cfg.Media.Root == "" {
		cfg.Media.Root = "media"
	}
	if cfg.Media.LogoPath == "" {
		cfg.Media.LogoPath = filepath.Join("static", "img", "logo_oep.png")
	}
	if cfg.Media.ReceiptSubdir == "" {
		cfg.Media.ReceiptSubdir = "comprobantes"
	}
	if cfg.Media.QRTempSubdir == "" {
		cfg.Media.QRTempSubdir = "qr_temp"
	}
	if cfg.Media.UploadSubdir == "" {
		cfg.Media.UploadSubdir = "uploads"
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignExpiration == 0 {
		cfg.Storage.PresignExpiration = 15 * time.Minute
	}

	if cfg.Printing.Timeout == 0 {
		cfg.Printing.Timeout = 30 * time.Second
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "sirepre"
	}
	if cfg.Telemetry.LogsLevel == "" {
		cfg.Telemetry.LogsLevel = "info"
	}
	if cfg.Telemetry.ExportInterval == 0 {
		cfg.Telemetry.ExportInterval = 60 * time.Second
	}

	if cfg.Messaging.Topic == "" {
		cfg.Messaging.Topic = "sirepre.events"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.Storage.Type {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required when storage.type is s3")
		}
	default:
		return fmt.Errorf("storage.type must be local or s3, got %q", c.Storage.Type)
	}

	if c.Messaging.KafkaEnabled && len(c.Messaging.Brokers) == 0 {
		return fmt.Errorf("messaging.brokers is required when kafka is enabled")
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.IsProduction() {
		if c.JWT.Secret == DefaultJWTSecret {
			return fmt.Errorf("jwt.secret must be set in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver == "sqlite" {
			return fmt.Errorf("database.driver sqlite is not allowed in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allowed_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Docs.Enabled && !c.Docs.RequireAuth && len(c.Docs.AllowedIPs) == 0 {
			return fmt.Errorf("docs.enabled in production needs docs.require_auth or docs.allowed_ips")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
