package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration for the dashboard service.
type Config struct {
	HTTP      HTTPConfig
	Backend   BackendConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	ShutdownGrace int
}

// BackendConfig points at the remote restaurant platform that owns all order
// and account state.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// SMTPConfig drives the sign-up application mail-out. An empty Host disables
// it and applications are only logged.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// EventsConfig selects the status-change publisher. An empty URL means the
// log-only publisher.
type EventsConfig struct {
	AMQPURL string
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	defaultHTTPPort       = 8080
	defaultShutdownGrace  = 15
	defaultBackendTimeout = 10 * time.Second
	defaultRedisAddr      = "localhost:6379"
	defaultSessionTTL     = 24 * time.Hour
	defaultSMTPPort       = 587
	defaultServiceName    = "opsboard"
	defaultServiceVersion = "0.1.0"
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultOTelSampleRate = 1.0
)

// Load reads configuration from environment variables, applying defaults
// when needed.
func Load() (*Config, error) {
	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	backendCfg, err := loadBackendConfig()
	if err != nil {
		return nil, fmt.Errorf("loading backend config: %w", err)
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("loading redis config: %w", err)
	}

	smtpCfg, err := loadSMTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading SMTP config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		Backend:   backendCfg,
		Redis:     redisCfg,
		SMTP:      smtpCfg,
		Events:    EventsConfig{AMQPURL: os.Getenv("AMQP_URL")},
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port := defaultHTTPPort
	if value, ok := os.LookupEnv("API_HTTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_HTTP_PORT: %w", err)
		}
		port = parsed
	}

	shutdownGrace := defaultShutdownGrace
	if value, ok := os.LookupEnv("API_SHUTDOWN_GRACE_SECONDS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_SHUTDOWN_GRACE_SECONDS: %w", err)
		}
		shutdownGrace = parsed
	}

	return HTTPConfig{Port: port, ShutdownGrace: shutdownGrace}, nil
}

func loadBackendConfig() (BackendConfig, error) {
	baseURL := os.Getenv("BACKEND_BASE_URL")
	if baseURL == "" {
		return BackendConfig{}, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	timeout := defaultBackendTimeout
	if value, ok := os.LookupEnv("BACKEND_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return BackendConfig{}, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
		}
		timeout = parsed
	}

	return BackendConfig{BaseURL: baseURL, Timeout: timeout}, nil
}

func loadRedisConfig() (RedisConfig, error) {
	db := 0
	if value, ok := os.LookupEnv("REDIS_DB"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		db = parsed
	}

	ttl := defaultSessionTTL
	if value, ok := os.LookupEnv("SESSION_TTL"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return RedisConfig{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		ttl = parsed
	}

	return RedisConfig{
		Addr:       getEnvOrDefault("REDIS_ADDR", defaultRedisAddr),
		Password:   os.Getenv("REDIS_PASSWORD"),
		DB:         db,
		SessionTTL: ttl,
	}, nil
}

func loadSMTPConfig() (SMTPConfig, error) {
	port := defaultSMTPPort
	if value, ok := os.LookupEnv("SMTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return SMTPConfig{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		port = parsed
	}

	return SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		To:       os.Getenv("SMTP_TO"),
	}, nil
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("API_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
