// Package config loads runtime settings from the environment (and an
// optional config file) using viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Environment  string        `mapstructure:"environment"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"ssl_mode"`
	MaxRetries int    `mapstructure:"max_retries"`
	// AutoMigrate creates the tables on start. Meant for local runs.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Broker       string        `mapstructure:"broker"`
	GroupID      string        `mapstructure:"group_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
}

type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	JWTIssuer    string `mapstructure:"jwt_issuer"`
	AutoRegister bool   `mapstructure:"auto_register_users"`
}

type CacheConfig struct {
	UserTTL     time.Duration `mapstructure:"user_ttl"`
	CalendarTTL time.Duration `mapstructure:"calendar_ttl"`
}

// RateLimitConfig is the global per-IP limiter; per-route user limits live
// next to the routes.
type RateLimitConfig struct {
	IPRate  float64 `mapstructure:"ip_rate"`
	IPBurst int     `mapstructure:"ip_burst"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func (d DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if d.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if d.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if d.MaxRetries < 1 {
		return fmt.Errorf("database.max_retries must be at least 1")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_retries", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("kafka.group_id", "go-vacation-notifications")
	v.SetDefault("kafka.poll_interval", 3*time.Second)
	v.SetDefault("kafka.batch_size", 50)

	v.SetDefault("auth.jwt_issuer", "")
	v.SetDefault("auth.auto_register_users", true)

	v.SetDefault("cache.user_ttl", 5*time.Minute)
	v.SetDefault("cache.calendar_ttl", 5*time.Minute)

	v.SetDefault("rate_limit.ip_rate", 20.0)
	v.SetDefault("rate_limit.ip_burst", 40)

	v.SetDefault("logging.level", "info")
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.environment", "APP_ENV")
	_ = v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	_ = v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	_ = v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")

	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.ssl_mode", "DB_SSLMODE")
	_ = v.BindEnv("database.max_retries", "DB_MAX_RETRIES")
	_ = v.BindEnv("database.auto_migrate", "DB_AUTO_MIGRATE")

	_ = v.BindEnv("redis.addr", "REDIS_ADDR")

	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	_ = v.BindEnv("kafka.poll_interval", "OUTBOX_POLL_INTERVAL")
	_ = v.BindEnv("kafka.batch_size", "OUTBOX_BATCH_SIZE")

	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.jwt_issuer", "JWT_ISSUER")
	_ = v.BindEnv("auth.auto_register_users", "AUTO_REGISTER_USERS")

	_ = v.BindEnv("cache.user_ttl", "USER_CACHE_TTL")
	_ = v.BindEnv("cache.calendar_ttl", "CALENDAR_CACHE_TTL")

	_ = v.BindEnv("rate_limit.ip_rate", "RATE_LIMIT_IP_RATE")
	_ = v.BindEnv("rate_limit.ip_burst", "RATE_LIMIT_IP_BURST")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}

// Load reads the environment, plus configPath when it is not empty. Values
// from the environment win over the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks what the HTTP API needs. The worker and the consumer only
// validate Database and Kafka.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 bytes in production")
	}
	if c.Cache.UserTTL <= 0 || c.Cache.CalendarTTL <= 0 {
		return fmt.Errorf("cache ttl values must be positive")
	}
	return nil
}

func (c *Config) RequireKafka() error {
	if c.Kafka.Broker == "" {
		return fmt.Errorf("kafka.broker is required")
	}
	return nil
}
