package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the Postgres connection settings for the zone store.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM Postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// ServiceConfig holds all configuration for the routing service.
type ServiceConfig struct {
	Port              string
	AppEnv            string
	GoogleMapsAPIKey  string
	RequestTimeout    time.Duration
	DefaultTankerType string
	DBConfig          DatabaseConfig
	RedisAddr         string
	ResultTTL         time.Duration
	KafkaBrokers      []string
}

// Load reads configuration from ROUTING_-prefixed environment variables,
// with an optional .env file for local development.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("ROUTING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		// A missing .env is fine; anything else is a real config problem.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.SetDefault("SERVICE_PORT", ":8084")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	v.SetDefault("DEFAULT_TANKER_TYPE", "medium")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "routing")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("RESULT_TTL_MINUTES", 30)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:              port,
		AppEnv:            v.GetString("APP_ENV"),
		GoogleMapsAPIKey:  v.GetString("GOOGLE_MAPS_API_KEY"),
		RequestTimeout:    time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		DefaultTankerType: v.GetString("DEFAULT_TANKER_TYPE"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		RedisAddr:    v.GetString("REDIS_ADDR"),
		ResultTTL:    time.Duration(v.GetInt("RESULT_TTL_MINUTES")) * time.Minute,
		KafkaBrokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
	}, nil
}
