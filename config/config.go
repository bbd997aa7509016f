package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	OrdersTopic        string   `yaml:"orders_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

type BookingConfig struct {
	OrdersPageSize    int     `yaml:"orders_page_size"`
	OrdersMaxPageSize int     `yaml:"orders_max_page_size"`
	FlightsCacheTTL   int     `yaml:"flights_cache_ttl_seconds"`
	OrdersRatePerSec  float64 `yaml:"orders_rate_per_second"`
	OrdersRateBurst   int     `yaml:"orders_rate_burst"`
}

// LoadConfig reads the YAML config at path. A .env file, when present,
// is loaded first; DB_PASSWORD and JWT_SECRET environment variables
// override the file so secrets can stay out of it.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	if cfg.Booking.OrdersPageSize == 0 {
		cfg.Booking.OrdersPageSize = 5
	}
	if cfg.Booking.OrdersMaxPageSize == 0 {
		cfg.Booking.OrdersMaxPageSize = 100
	}
	if cfg.Booking.OrdersRatePerSec == 0 {
		cfg.Booking.OrdersRatePerSec = 5
	}
	if cfg.Booking.OrdersRateBurst == 0 {
		cfg.Booking.OrdersRateBurst = 10
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}

	return &cfg, nil
}
