package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    Server    `yaml:"server"`
	Database  Database  `yaml:"database"`
	Redis     Redis     `yaml:"redis"`
	S3        S3        `yaml:"s3"`
	Scheduler Scheduler `yaml:"scheduler"`
	Cache     Cache     `yaml:"cache"`
	Platforms Platforms `yaml:"platforms"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Address returns the full server address
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// Database holds database configuration
type Database struct {
	PostgresDSN string `yaml:"postgres_dsn" env:"DATABASE_URL"`

	MaxConns int32 `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"25"`
	MinConns int32 `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"5"`
}

// Redis holds Redis configuration for the upstream metrics sample cache
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`

	MetricsTTL time.Duration `yaml:"metrics_ttl" env:"REDIS_METRICS_TTL" env-default:"1h"`
}

// S3 holds S3/MinIO storage configuration for media kit assets
type S3 struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET" env-default:"mediakit"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	PublicURL       string `yaml:"public_url" env:"S3_PUBLIC_URL" env-default:"http://localhost:9000/mediakit"`
}

// Scheduler holds dispatcher configuration for the publish queue
type Scheduler struct {
	Enabled  bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"1m"`
}

// Cache holds freshness windows for the in-process query cache.
// Windows differ by entity volatility; these are tuning knobs, not correctness.
type Cache struct {
	Posts     time.Duration `yaml:"posts" env:"CACHE_TTL_POSTS" env-default:"2m"`
	Launches  time.Duration `yaml:"launches" env:"CACHE_TTL_LAUNCHES" env-default:"5m"`
	Profiles  time.Duration `yaml:"profiles" env:"CACHE_TTL_PROFILES" env-default:"10m"`
	Products  time.Duration `yaml:"products" env:"CACHE_TTL_PRODUCTS" env-default:"15m"`
	Protocols time.Duration `yaml:"protocols" env:"CACHE_TTL_PROTOCOLS" env-default:"15m"`
	MediaKit  time.Duration `yaml:"mediakit" env:"CACHE_TTL_MEDIAKIT" env-default:"15m"`
}

// Platforms holds per-platform upstream credentials.
// An empty token makes the upstream client synthesize results for that platform.
type Platforms struct {
	InstagramToken string `yaml:"instagram_token" env:"PLATFORM_INSTAGRAM_TOKEN"`
	TikTokToken    string `yaml:"tiktok_token" env:"PLATFORM_TIKTOK_TOKEN"`
	LinkedInToken  string `yaml:"linkedin_token" env:"PLATFORM_LINKEDIN_TOKEN"`
	XToken         string `yaml:"x_token" env:"PLATFORM_X_TOKEN"`
	PinterestToken string `yaml:"pinterest_token" env:"PLATFORM_PINTEREST_TOKEN"`
	YouTubeToken   string `yaml:"youtube_token" env:"PLATFORM_YOUTUBE_TOKEN"`

	BaseURL string `yaml:"base_url" env:"PLATFORM_BASE_URL"`
}

// MustLoad loads configuration from environment and panics on error
func MustLoad() Config {
	// Load .env file if exists (for development)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
