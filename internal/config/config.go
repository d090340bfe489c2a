// Package config loads and validates process configuration.
//
// Configuration is read once at startup from the environment (optionally a
// .env file) and an optional config file, validated, and then treated as
// immutable for the process lifetime.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/salescope/salescope/internal/common"
)

// Database holds connection settings for the MySQL store.
type Database struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	QueryTimeout time.Duration
}

// DSN renders the go-sql-driver connection string. parseTime makes the
// driver return DATE columns as time.Time.
func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Port, d.Name)
}

// LLM holds settings for the language-model client.
type LLM struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	RateLimit   int
}

// Server holds settings for the HTTP chat surface.
type Server struct {
	Addr           string
	AllowedOrigins []string
}

// Config is the root configuration object passed into constructors.
type Config struct {
	Database  Database
	LLM       LLM
	Server    Server
	LogLevel  string
	LogFormat string
}

func setDefaults() {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "3306")
	viper.SetDefault("database.name", "sales")
	viper.SetDefault("database.user", "sales")
	viper.SetDefault("database.query_timeout", 30*time.Second)

	viper.SetDefault("llm.provider", "groq")
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.temperature", 0.0)
	viper.SetDefault("llm.max_tokens", 512)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("llm.rate_limit", 60)

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.allowed_origins", []string{})

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

func bindEnv() {
	// Environment names match the original deployment scripts so an existing
	// .env keeps working.
	_ = viper.BindEnv("database.host", "MYSQL_HOST")
	_ = viper.BindEnv("database.port", "MYSQL_PORT")
	_ = viper.BindEnv("database.name", "MYSQL_DB")
	_ = viper.BindEnv("database.user", "MYSQL_USER")
	_ = viper.BindEnv("database.password", "MYSQL_PASSWORD")
	_ = viper.BindEnv("llm.api_key", "GROQ_API_KEY")
	_ = viper.BindEnv("llm.openai_api_key", "OPENAI_API_KEY")
}

// Load assembles the configuration from a .env file (if present), the
// environment, and whatever config file viper has already read.
func Load() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()
	bindEnv()

	cfg := &Config{
		Database: Database{
			Host:         viper.GetString("database.host"),
			Port:         viper.GetString("database.port"),
			Name:         viper.GetString("database.name"),
			User:         viper.GetString("database.user"),
			Password:     viper.GetString("database.password"),
			QueryTimeout: viper.GetDuration("database.query_timeout"),
		},
		LLM: LLM{
			Provider:    viper.GetString("llm.provider"),
			Model:       viper.GetString("llm.model"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
			Timeout:     viper.GetDuration("llm.timeout"),
			RateLimit:   viper.GetInt("llm.rate_limit"),
		},
		Server: Server{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
		LogLevel:  viper.GetString("logging.level"),
		LogFormat: viper.GetString("logging.format"),
	}

	cfg.LLM.APIKey = viper.GetString("llm.api_key")
	if cfg.LLM.Provider == "openai" {
		if key := viper.GetString("llm.openai_api_key"); key != "" {
			cfg.LLM.APIKey = key
		}
	}

	return cfg, nil
}

// ValidateDatabase checks that the store credentials are present.
func (c *Config) ValidateDatabase() error {
	if c.Database.Password == "" {
		return fmt.Errorf("%w: database password (MYSQL_PASSWORD)", common.ErrMissingConfig)
	}
	if c.Database.User == "" {
		return fmt.Errorf("%w: database user (MYSQL_USER)", common.ErrMissingConfig)
	}
	return nil
}

// ValidateLLM checks that the language-model credentials are present.
func (c *Config) ValidateLLM() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: language model API key (GROQ_API_KEY)", common.ErrMissingConfig)
	}
	return nil
}

// Validate checks everything a full pipeline run needs. Missing credentials
// are fatal at startup, never mid-request.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	return c.ValidateLLM()
}
