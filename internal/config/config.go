package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// JWTConfig defines issuer/secret pair for session verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr           string   `env:"HTTP_ADDR" env-default:":8080" env-description:"listen address"`
	AllowedOrigins []string `env:"API_ALLOWED_ORIGINS" env-default:"*" env-description:"comma separated CORS origins"`
	Timezone       string   `env:"TIMEZONE" env-default:"America/Chicago" env-description:"zone deciding which events are upcoming"`
	BodyLimit      int64    `env:"REQUEST_BODY_LIMIT" env-default:"65536" env-description:"max request body in bytes"`

	Log      LogConfig
	Store    StoreConfig
	Auth     AuthConfig
	Provider ProviderConfig
	Kafka    KafkaConfig
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// StoreConfig selects and locates the directory store.
type StoreConfig struct {
	Driver         string        `env:"STORE_DRIVER" env-default:"mongo" env-description:"mongo or postgres"`
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" env-default:"10s"`
	MongoURI       string        `env:"MONGO_URI" env-default:"mongodb://mongo:27017"`
	MongoDatabase  string        `env:"MONGO_DB" env-default:"cajun-local"`
	PostgresDSN    string        `env:"POSTGRES_DSN"`
}

// AuthConfig carries the session signing secrets. A previous secret keeps
// tokens valid during rotation.
type AuthConfig struct {
	Secret         string `env:"AUTH_JWT_SECRET"`
	PreviousSecret string `env:"AUTH_JWT_PREVIOUS_SECRET"`
	Issuer         string `env:"AUTH_JWT_ISSUER"`
	Audience       string `env:"AUTH_JWT_AUDIENCE" env-default:"authenticated"`
}

// ProviderConfig locates the chat-completions endpoint.
type ProviderConfig struct {
	BaseURL               string        `env:"AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	APIKey                string        `env:"OPENAI_API_KEY"`
	Model                 string        `env:"AI_MODEL" env-default:"gpt-4o-mini"`
	ResponseHeaderTimeout time.Duration `env:"AI_RESPONSE_HEADER_TIMEOUT" env-default:"60s"`
}

// KafkaConfig enables featured-impression publishing when brokers are set.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_IMPRESSIONS_TOPIC" env-default:"ask-local.featured-impressions"`
}

// Load reads environment variables and returns a fully populated Config.
// Missing provider or session credentials are not fatal here; requests report
// them instead.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	cfg.AllowedOrigins = trimList(cfg.AllowedOrigins)
	cfg.Kafka.Brokers = trimList(cfg.Kafka.Brokers)
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Provider.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Provider.BaseURL), "/")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if strings.TrimSpace(c.Store.MongoURI) == "" || strings.TrimSpace(c.Store.MongoDatabase) == "" {
			return errors.New("MONGO_URI and MONGO_DB must be set for the mongo driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Store.PostgresDSN) == "" {
			return errors.New("POSTGRES_DSN must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("REQUEST_BODY_LIMIT must be positive, got %d", c.BodyLimit)
	}
	return nil
}

// Location returns the configured zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// JWTConfigs lists the secrets accepted for session tokens, current first.
func (a AuthConfig) JWTConfigs() []JWTConfig {
	var configs []JWTConfig
	for _, secret := range []string{a.Secret, a.PreviousSecret} {
		secret = strings.TrimSpace(secret)
		if secret == "" {
			continue
		}
		configs = append(configs, JWTConfig{Issuer: strings.TrimSpace(a.Issuer), Secret: []byte(secret)})
	}
	return configs
}

// KafkaEnabled reports whether impressions should be published.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && strings.TrimSpace(c.Kafka.Topic) != ""
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
