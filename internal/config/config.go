package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/database"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/domain/pet"
)

// DatabaseConfig selects and configures the record store's database.
type DatabaseConfig struct {
	Driver    string // postgres | sqlite
	Postgres  database.PostgresConfig
	SQLiteDSN string
}

// JWTConfig configures operator sessions.
type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
	CookieName string
}

// KafkaConfig lists the brokers events flow through. Empty disables events.
type KafkaConfig struct {
	Brokers []string
	GroupID string
}

// ServiceConfig holds all configuration for the record store.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	LogLevel      string
	DBConfig      DatabaseConfig
	JWTConfig     JWTConfig
	KafkaConfig   KafkaConfig
	CORSOrigins   []string
	DefaultImages map[string]string
}

// S3Config points report uploads at a bucket.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
}

// ClientConfig holds all configuration for the operator CLI.
type ClientConfig struct {
	AppEnv       string
	LogLevel     string
	BaseURL      string
	SessionToken string
	CookieName   string
	JWTSecret    string
	Timeout      time.Duration
	NotifyDelay  time.Duration
	KafkaConfig  KafkaConfig
	S3Config     S3Config
}

// Load reads the store configuration from PETSTORE_* environment variables
// and an optional config file.
func Load() (*ServiceConfig, error) {
	v, err := newViper("PETSTORE")
	if err != nil {
		return nil, err
	}
	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "pet_inventory")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.sqlite_dsn", "pets.db")
	v.SetDefault("jwt.session_ttl", "12h")
	v.SetDefault("jwt.cookie_name", "petstore_session")

	cfg := &ServiceConfig{
		Port:     v.GetString("service_port"),
		AppEnv:   v.GetString("app_env"),
		LogLevel: v.GetString("log_level"),
		DBConfig: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Postgres: database.PostgresConfig{
				Host:     v.GetString("db.host"),
				Port:     v.GetString("db.port"),
				User:     v.GetString("db.user"),
				Password: v.GetString("db.password"),
				DBName:   v.GetString("db.name"),
				SSLMode:  v.GetString("db.sslmode"),
			},
			SQLiteDSN: v.GetString("db.sqlite_dsn"),
		},
		JWTConfig: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			SessionTTL: v.GetDuration("jwt.session_ttl"),
			CookieName: v.GetString("jwt.cookie_name"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("kafka.brokers")),
		},
		CORSOrigins:   splitList(v.GetString("cors.origins")),
		DefaultImages: loadDefaultImages(v),
	}

	if cfg.DBConfig.Driver != "postgres" && cfg.DBConfig.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBConfig.Driver)
	}
	if cfg.JWTConfig.Secret == "" {
		if cfg.AppEnv == "production" {
			return nil, errors.New("jwt.secret is required in production")
		}
		cfg.JWTConfig.Secret = "dev-secret"
	}
	return cfg, nil
}

// LoadClient reads the CLI configuration from PETADMIN_* environment
// variables and an optional config file.
func LoadClient() (*ClientConfig, error) {
	v, err := newViper("PETADMIN")
	if err != nil {
		return nil, err
	}
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("cookie_name", "petstore_session")
	v.SetDefault("jwt.secret", "dev-secret")
	v.SetDefault("timeout", "10s")
	v.SetDefault("notify_delay", "5s")
	v.SetDefault("kafka.group_id", "petadmin-watch")
	v.SetDefault("s3.region", "us-east-1")

	return &ClientConfig{
		AppEnv:       v.GetString("app_env"),
		LogLevel:     v.GetString("log_level"),
		BaseURL:      strings.TrimRight(v.GetString("base_url"), "/"),
		SessionToken: v.GetString("session_token"),
		CookieName:   v.GetString("cookie_name"),
		JWTSecret:    v.GetString("jwt.secret"),
		Timeout:      v.GetDuration("timeout"),
		NotifyDelay:  v.GetDuration("notify_delay"),
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("kafka.brokers")),
			GroupID: v.GetString("kafka.group_id"),
		},
		S3Config: S3Config{
			Bucket:   v.GetString("s3.bucket"),
			Region:   v.GetString("s3.region"),
			Endpoint: v.GetString("s3.endpoint"),
		},
	}, nil
}

// newViper binds env vars under prefix (dots become underscores) and reads
// <prefix>_CONFIG or ./config.yaml when present.
func newViper(prefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

func loadDefaultImages(v *viper.Viper) map[string]string {
	out := make(map[string]string)
	for _, t := range petDomain.PetTypes {
		if url := v.GetString("default_images." + strings.ToLower(string(t))); url != "" {
			out[string(t)] = url
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
