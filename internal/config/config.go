package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const envFile = "./config/.env"

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	GinMode  string `env:"GIN_MODE" env-default:"debug"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// DBDriver is one of postgres, mysql or sqlite.
	DBDriver   string `env:"DB_DRIVER" env-default:"postgres"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"feedback"`
	DBPassword string `env:"DB_PASSWORD" env-default:"feedback"`
	DBName     string `env:"DB_NAME" env-default:"feedback_management"`
	DBPath     string `env:"DB_PATH" env-default:"feedback.db"`

	// Empty RedisHost disables the Redis session store and token revocation.
	RedisHost     string `env:"REDIS_HOST" env-default:""`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	SessionSecret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`

	JWTSecret  string        `env:"JWT_SECRET" env-default:"default-jwt-secret-change-me"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"10"`

	// StorageBackend is either local or s3.
	StorageBackend    string `env:"STORAGE_BACKEND" env-default:"local"`
	UploadDir         string `env:"UPLOAD_DIR" env-default:"uploads"`
	S3Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	S3Region          string `env:"S3_REGION" env-default:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET" env-default:"feedback-files"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID" env-default:""`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" env-default:""`

	// Empty KafkaBrokers disables notification event publishing.
	KafkaBrokers     []string `env:"KAFKA_BROKERS" env-separator:"," env-default:""`
	KafkaNotifyTopic string   `env:"KAFKA_NOTIFICATION_TOPIC" env-default:"notifications"`
	OpenAIAPIKey     string   `env:"OPENAI_API_KEY" env-default:""`
}

// Load reads the configuration from ./config/.env when it exists and from
// the process environment otherwise.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(envFile, &cfg); err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageBackend {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

// RedisAddr returns host:port, or "" when Redis is disabled.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
