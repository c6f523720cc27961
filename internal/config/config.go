package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the keyword/value connection string for the driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL builds the connection URL used by the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// KafkaConfig holds the broker settings for event publication.
type KafkaConfig struct {
	Brokers []string
}

// ServiceConfig holds all configuration for the ShareIt server.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	MigrationsPath string
	DB             DatabaseConfig
	Kafka          KafkaConfig
}

// Load reads configuration from SHAREIT_-prefixed environment variables
// with development defaults for every knob.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("SHAREIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "shareit")
	v.SetDefault("db_password", "shareit")
	v.SetDefault("db_name", "shareit")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_brokers", "localhost:9092")

	cfg := &ServiceConfig{
		Port:           v.GetString("port"),
		AppEnv:         v.GetString("app_env"),
		MigrationsPath: v.GetString("migrations_path"),
		DB: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(v.GetString("kafka_brokers"), ","),
		},
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	return cfg, nil
}
