package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env            string        `envconfig:"ENV" default:"dev"`
	Port           string        `envconfig:"PORT" default:"8083"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	StoreDriver    string        `envconfig:"STORE_DRIVER" default:"postgres"`
	CacheWarmSpec  string        `envconfig:"CACHE_WARM_SPEC" default:"@every 30m"`

	DB         Database   `envconfig:"DB"`
	Redis      Redis      `envconfig:"REDIS"`
	Cache      Cache      `envconfig:"CACHE"`
	Listing    Listing    `envconfig:"LISTING"`
	Cloudinary Cloudinary `envconfig:"CLOUDINARY"`
	Retry      Retry      `envconfig:"RETRY"`
	Breaker    Breaker    `envconfig:"BREAKER"`
}

type Database struct {
	Host         string `envconfig:"HOST" default:"localhost"`
	Port         string `envconfig:"PORT" default:"5432"`
	User         string `envconfig:"USER" default:"postgres"`
	Password     string `envconfig:"PASSWORD"`
	Name         string `envconfig:"NAME" default:"roomrent"`
	SSLMode      string `envconfig:"SSLMODE" default:"disable"`
	TimeZone     string `envconfig:"TIMEZONE" default:"UTC"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}

type Redis struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

type Cache struct {
	Driver     string        `envconfig:"DRIVER" default:"redis"` // redis | memory
	MemorySize int           `envconfig:"MEMORY_SIZE" default:"4096"`
	OpTimeout  time.Duration `envconfig:"OP_TIMEOUT" default:"200ms"`
	AreaTTL    time.Duration `envconfig:"AREA_TTL" default:"2h"`
	HomeTTL    time.Duration `envconfig:"HOME_TTL" default:"1h"`
	DetailTTL  time.Duration `envconfig:"DETAIL_TTL" default:"10m"`
	ListTTL    time.Duration `envconfig:"LIST_TTL" default:"10m"`
}

type Listing struct {
	PageSize     int `envconfig:"PAGE_SIZE" default:"2"`
	HomePageMax  int `envconfig:"HOME_PAGE_MAX" default:"5"`
	CommentCount int `envconfig:"COMMENT_COUNT" default:"30"`
}

type Cloudinary struct {
	CloudName string `envconfig:"CLOUD_NAME"`
	APIKey    string `envconfig:"API_KEY"`
	APISecret string `envconfig:"API_SECRET"`
	Folder    string `envconfig:"FOLDER" default:"houses"`
	URLPrefix string `envconfig:"URL_PREFIX" default:"https://res.cloudinary.com/roomrent/image/upload/"`
}

type Retry struct {
	Attempts     int           `envconfig:"ATTEMPTS" default:"3"`
	Base         time.Duration `envconfig:"BASE" default:"20ms"`
	Max          time.Duration `envconfig:"MAX" default:"200ms"`
	JitterFactor float64       `envconfig:"JITTER" default:"0.2"`
}

type Breaker struct {
	Threshold   uint32        `envconfig:"THRESHOLD" default:"5"`
	OpenTimeout time.Duration `envconfig:"OPEN_TIMEOUT" default:"30s"`
	MaxHalfOpen uint32        `envconfig:"MAX_HALF_OPEN" default:"1"`
}

// LoadEnv loads variables from `.env` into the process environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (Config, error) {
	LoadEnv()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Listing.PageSize <= 0 {
		return Config{}, fmt.Errorf("LISTING_PAGE_SIZE must be positive, got %d", cfg.Listing.PageSize)
	}
	return cfg, nil
}
