package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	ServiceID string
	HTTPPort  int
	GRPCPort  int

	StorageDriver   string
	DatabaseURL     string
	DBMaxConns      int
	SeedOnStart     bool
	DemoPassword    string
	RedisURL        string
	KafkaBrokers    []string
	ActivityTopic   string
	JWTSecret       string
	SessionTTL      time.Duration
	BcryptCost      int
	LegacyPasswords bool
	PublishURL      string
	PublishTimeout  time.Duration
	CORSOrigins     []string
	IdempotencyTTL  time.Duration
	DefaultUserID   int64
	DefaultTeamID   int64
	Timezone        string
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Storage struct {
		Driver       string `yaml:"driver"`
		DatabaseURL  string `yaml:"database_url"`
		MaxConns     int    `yaml:"max_conns"`
		SeedOnStart  *bool  `yaml:"seed_on_start"`
		DemoPassword string `yaml:"demo_password"`
	} `yaml:"storage"`
	Cache struct {
		RedisURL       string `yaml:"redis_url"`
		IdempotencyTTL string `yaml:"idempotency_ttl"`
	} `yaml:"cache"`
	Events struct {
		KafkaBrokers  []string `yaml:"kafka_brokers"`
		ActivityTopic string   `yaml:"activity_topic"`
	} `yaml:"events"`
	Auth struct {
		JWTSecret       string `yaml:"jwt_secret"`
		SessionTTL      string `yaml:"session_ttl"`
		BcryptCost      int    `yaml:"bcrypt_cost"`
		LegacyPasswords bool   `yaml:"legacy_plaintext_passwords"`
	} `yaml:"auth"`
	Publish struct {
		WebhookURL string `yaml:"webhook_url"`
		Timeout    string `yaml:"timeout"`
	} `yaml:"publish"`
	HTTP struct {
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"http"`
	Workspace struct {
		DefaultUserID int64  `yaml:"default_user_id"`
		DefaultTeamID int64  `yaml:"default_team_id"`
		Timezone      string `yaml:"timezone"`
	} `yaml:"workspace"`
}

// LoadConfig layers defaults, the YAML file at path (optional) and the
// environment, in that order. A .env file in the working directory is loaded
// into the environment first when present.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServiceID:      "M31-Content-Scheduling-Service",
		HTTPPort:       8080,
		GRPCPort:       9090,
		StorageDriver:  StorageMemory,
		DBMaxConns:     10,
		SeedOnStart:    true,
		DemoPassword:   "password123",
		ActivityTopic:  "content.activity_recorded",
		SessionTTL:     24 * time.Hour,
		BcryptCost:     12,
		PublishTimeout: 10 * time.Second,
		CORSOrigins:    []string{"*"},
		IdempotencyTTL: 24 * time.Hour,
		DefaultUserID:  1,
		DefaultTeamID:  1,
	}
	if raw, err := os.ReadFile(path); err == nil {
		var f configFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		if err := applyFile(&cfg, f); err != nil {
			return Config{}, err
		}
	}

	cfg.ServiceID = envOrDefault("SERVICE_ID", cfg.ServiceID)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.StorageDriver = strings.ToLower(envOrDefault("STORAGE_DRIVER", cfg.StorageDriver))
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBMaxConns = envInt("DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.SeedOnStart = envBool("SEED_ON_START", cfg.SeedOnStart)
	cfg.DemoPassword = envOrDefault("DEMO_PASSWORD", cfg.DemoPassword)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.ActivityTopic = envOrDefault("KAFKA_ACTIVITY_TOPIC", cfg.ActivityTopic)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.SessionTTL = time.Duration(envInt("SESSION_TTL_MINUTES", int(cfg.SessionTTL.Minutes()))) * time.Minute
	cfg.BcryptCost = envInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.LegacyPasswords = envBool("LEGACY_PLAINTEXT_PASSWORDS", cfg.LegacyPasswords)
	cfg.PublishURL = envOrDefault("PUBLISH_WEBHOOK_URL", cfg.PublishURL)
	cfg.PublishTimeout = time.Duration(envInt("PUBLISH_TIMEOUT_SECONDS", int(cfg.PublishTimeout.Seconds()))) * time.Second
	cfg.CORSOrigins = envCSV("CORS_ALLOWED_ORIGINS", cfg.CORSOrigins)
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.DefaultUserID = int64(envInt("DEFAULT_USER_ID", int(cfg.DefaultUserID)))
	cfg.DefaultTeamID = int64(envInt("DEFAULT_TEAM_ID", int(cfg.DefaultTeamID)))
	cfg.Timezone = envOrDefault("APP_TIMEZONE", cfg.Timezone)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, f configFile) error {
	if f.Service.ID != "" {
		cfg.ServiceID = f.Service.ID
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.GRPCPort > 0 {
		cfg.GRPCPort = f.Service.GRPCPort
	}
	if f.Storage.Driver != "" {
		cfg.StorageDriver = f.Storage.Driver
	}
	if f.Storage.DatabaseURL != "" {
		cfg.DatabaseURL = f.Storage.DatabaseURL
	}
	if f.Storage.MaxConns > 0 {
		cfg.DBMaxConns = f.Storage.MaxConns
	}
	if f.Storage.SeedOnStart != nil {
		cfg.SeedOnStart = *f.Storage.SeedOnStart
	}
	if f.Storage.DemoPassword != "" {
		cfg.DemoPassword = f.Storage.DemoPassword
	}
	if f.Cache.RedisURL != "" {
		cfg.RedisURL = f.Cache.RedisURL
	}
	if f.Cache.IdempotencyTTL != "" {
		d, err := time.ParseDuration(f.Cache.IdempotencyTTL)
		if err != nil {
			return fmt.Errorf("parse cache.idempotency_ttl: %w", err)
		}
		cfg.IdempotencyTTL = d
	}
	if len(f.Events.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = f.Events.KafkaBrokers
	}
	if f.Events.ActivityTopic != "" {
		cfg.ActivityTopic = f.Events.ActivityTopic
	}
	if f.Auth.JWTSecret != "" {
		cfg.JWTSecret = f.Auth.JWTSecret
	}
	if f.Auth.SessionTTL != "" {
		d, err := time.ParseDuration(f.Auth.SessionTTL)
		if err != nil {
			return fmt.Errorf("parse auth.session_ttl: %w", err)
		}
		cfg.SessionTTL = d
	}
	if f.Auth.BcryptCost > 0 {
		cfg.BcryptCost = f.Auth.BcryptCost
	}
	cfg.LegacyPasswords = cfg.LegacyPasswords || f.Auth.LegacyPasswords
	if f.Publish.WebhookURL != "" {
		cfg.PublishURL = f.Publish.WebhookURL
	}
	if f.Publish.Timeout != "" {
		d, err := time.ParseDuration(f.Publish.Timeout)
		if err != nil {
			return fmt.Errorf("parse publish.timeout: %w", err)
		}
		cfg.PublishTimeout = d
	}
	if len(f.HTTP.CORSOrigins) > 0 {
		cfg.CORSOrigins = f.HTTP.CORSOrigins
	}
	if f.Workspace.DefaultUserID > 0 {
		cfg.DefaultUserID = f.Workspace.DefaultUserID
	}
	if f.Workspace.DefaultTeamID > 0 {
		cfg.DefaultTeamID = f.Workspace.DefaultTeamID
	}
	if f.Workspace.Timezone != "" {
		cfg.Timezone = f.Workspace.Timezone
	}
	return nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres, StorageSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("storage driver %s requires DATABASE_URL", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// Location is the zone "today" is measured in; the process zone when unset.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func envOrDefault(name, fallback string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
