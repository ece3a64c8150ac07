package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local" validate:"oneof=local dev prod"`
	TimeZone   string `yaml:"time_zone" env:"TIME_ZONE" env-default:"Local"`
	HTTPServer `yaml:"http_server"`
	API        `yaml:"api"`
	Session    `yaml:"session"`
	Database   `yaml:"database"`
	SQLite     `yaml:"sqlite"`
	Resync     `yaml:"resync"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// API points at the backend REST service. A zero Timeout leaves calls unbounded.
type API struct {
	BaseURL  string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:5000/api" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"0s"`
	PageSize int           `yaml:"page_size" env:"API_PAGE_SIZE" env-default:"12" validate:"min=1"`
}

type Session struct {
	Storage    string        `yaml:"storage" env:"SESSION_STORAGE" env-default:"memory" validate:"oneof=memory postgres sqlite"`
	CookieName string        `yaml:"cookie_name" env-default:"campus_session" validate:"required"`
	TTL        time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"168h"`
	Secure     bool          `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"campus_events"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"sessions.db"`
}

type Resync struct {
	Interval time.Duration `yaml:"interval" env:"RESYNC_INTERVAL" env-default:"1m"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Location resolves TimeZone, the zone in which form date inputs are interpreted.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}

	return time.LoadLocation(c.TimeZone)
}
