package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Geo      GeoConfig
	Admin    AdminConfig
	Links    LinksConfig
	OTel     OTelConfig
}

type AppConfig struct {
	Name     string
	Version  string
	Env      string
	LogLevel string
}

type ServerConfig struct {
	Port string
	Host string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled    bool
	Brokers    []string
	ClickTopic string
	GroupID    string
}

type GeoConfig struct {
	Endpoint    string
	Timeout     time.Duration
	MaxFailures int
	OpenTimeout time.Duration
}

type AdminConfig struct {
	Keys              []string
	RequestsPerMinute int
}

type LinksConfig struct {
	CodeLength    int
	RedirectDelay time.Duration
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		App: AppConfig{
			Name:     GetEnv("APP_NAME", "gatelink"),
			Version:  GetEnv("APP_VERSION", "0.1.0"),
			Env:      GetEnv("APP_ENV", "development"),
			LogLevel: GetEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: GetEnv("APP_PORT", "8080"),
			Host: GetEnv("APP_HOST", "localhost"),
		},
		Postgres: PostgresConfig{
			DSN: GetEnv("POSTGRES_DSN", DefaultPostgresDSN()),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", "localhost:6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled:    GetEnvBool("KAFKA_ENABLED", false),
			Brokers:    SplitCSV(GetEnv("KAFKA_BROKERS", "localhost:9092")),
			ClickTopic: GetEnv("KAFKA_CLICK_TOPIC", "clicks.recorded"),
			GroupID:    GetEnv("KAFKA_CLICK_GROUP_ID", "click-analytics"),
		},
		Geo: GeoConfig{
			Endpoint:    GetEnv("GEO_ENDPOINT", "http://ip-api.com/json"),
			Timeout:     GetEnvDuration("GEO_TIMEOUT", 5*time.Second),
			MaxFailures: GetEnvInt("GEO_BREAKER_MAX_FAILURES", 5),
			OpenTimeout: GetEnvDuration("GEO_BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Admin: AdminConfig{
			Keys:              SplitCSV(GetEnv("ADMIN_KEYS", "")),
			RequestsPerMinute: GetEnvInt("ADMIN_RATE_PER_MINUTE", 60),
		},
		Links: LinksConfig{
			CodeLength:    GetEnvInt("CODE_LENGTH", 6),
			RedirectDelay: GetEnvDuration("REDIRECT_DELAY", 2*time.Second),
		},
		OTel: OTelConfig{
			Enabled:  GetEnvBool("OTEL_ENABLED", false),
			Endpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
	}

	if cfg.Links.CodeLength < 1 || cfg.Links.CodeLength > 50 {
		return nil, fmt.Errorf("CODE_LENGTH must be between 1 and 50 (got %d)", cfg.Links.CodeLength)
	}
	if cfg.Geo.Timeout <= 0 {
		return nil, fmt.Errorf("GEO_TIMEOUT must be > 0 (got %s)", cfg.Geo.Timeout)
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker when KAFKA_ENABLED is set")
	}

	return cfg, nil
}
