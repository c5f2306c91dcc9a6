package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
	"github.com/sushihentaime/inkwell/internal/common"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	BaseURL        string   `mapstructure:"BASE_URL"`
	PublicDir      string   `mapstructure:"PUBLIC_DIR"`
	MigrationsPath string   `mapstructure:"MIGRATIONS_PATH"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	JWT struct {
		Secret string        `mapstructure:"JWT_SECRET"`
		TTL    time.Duration `mapstructure:"JWT_TTL"`
	} `mapstructure:",squash"`

	DB struct {
		Host         string        `mapstructure:"POSTGRES_HOST"`
		Port         string        `mapstructure:"POSTGRES_PORT"`
		User         string        `mapstructure:"POSTGRES_USER"`
		Password     string        `mapstructure:"POSTGRES_PASSWORD"`
		Name         string        `mapstructure:"POSTGRES_DB"`
		MaxOpenConns int           `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
		MaxIdleConns int           `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
		MaxIdleTime  time.Duration `mapstructure:"POSTGRES_MAX_IDLE_TIME"`
	} `mapstructure:",squash"`

	RateLimit struct {
		Enabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
		RPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
		Burst   int     `mapstructure:"RATE_LIMIT_BURST"`
	} `mapstructure:",squash"`

	Mail struct {
		Host     string `mapstructure:"MAIL_HOST"`
		Port     int    `mapstructure:"MAIL_PORT"`
		User     string `mapstructure:"MAIL_USER"`
		Password string `mapstructure:"MAIL_PASSWORD"`
		Sender   string `mapstructure:"MAIL_SENDER"`
	} `mapstructure:",squash"`

	RabbitMQ struct {
		Host     string `mapstructure:"RABBITMQ_HOST"`
		Port     string `mapstructure:"RABBITMQ_PORT"`
		User     string `mapstructure:"RABBITMQ_USER"`
		Password string `mapstructure:"RABBITMQ_PASSWORD"`
	} `mapstructure:",squash"`
}

var configDefaults = map[string]any{
	"PORT":                    "4444",
	"ENVIRONMENT":             "development",
	"VERSION":                 "1.0.0",
	"BASE_URL":                "http://localhost:4444",
	"PUBLIC_DIR":              "public",
	"MIGRATIONS_PATH":         "file://migrations",
	"TRUSTED_ORIGINS":         "",
	"JWT_SECRET":              "",
	"JWT_TTL":                 "168h",
	"POSTGRES_HOST":           "localhost",
	"POSTGRES_PORT":           "5432",
	"POSTGRES_USER":           "postgres",
	"POSTGRES_PASSWORD":       "",
	"POSTGRES_DB":             "inkwell",
	"POSTGRES_MAX_OPEN_CONNS": 25,
	"POSTGRES_MAX_IDLE_CONNS": 25,
	"POSTGRES_MAX_IDLE_TIME":  "15m",
	"RATE_LIMIT_ENABLED":      true,
	"RATE_LIMIT_RPS":          2,
	"RATE_LIMIT_BURST":        4,
	"MAIL_HOST":               "",
	"MAIL_PORT":               25,
	"MAIL_USER":               "",
	"MAIL_PASSWORD":           "",
	"MAIL_SENDER":             "Inkwell <no-reply@inkwell.local>",
	"RABBITMQ_HOST":           "",
	"RABBITMQ_PORT":           "5672",
	"RABBITMQ_USER":           "guest",
	"RABBITMQ_PASSWORD":       "guest",
}

// loadConfig reads the dotenv file at path. Environment variables win over the file, and a missing
// file leaves only the environment and the defaults.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &config, nil
}

func (c *Config) dbConfig() common.DBConfig {
	return common.DBConfig{
		Host:         c.DB.Host,
		Port:         c.DB.Port,
		User:         c.DB.User,
		Password:     c.DB.Password,
		Name:         c.DB.Name,
		MaxOpenConns: c.DB.MaxOpenConns,
		MaxIdleConns: c.DB.MaxIdleConns,
		MaxIdleTime:  c.DB.MaxIdleTime,
	}
}

// brokerEnabled reports whether a RabbitMQ host is configured.
func (c *Config) brokerEnabled() bool {
	return c.RabbitMQ.Host != ""
}
