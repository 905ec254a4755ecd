package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "INDIVEG"

type App struct {
	Name            string        `envconfig:"APP_NAME" default:"indiveg-hub"`
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Host            string        `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type DB struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"indiveg"`
	Password string `envconfig:"DB_PASSWORD" default:"indiveg"`
	Name     string `envconfig:"DB_NAME" default:"indiveg"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func (d DB) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type JWT struct {
	Secret     string        `envconfig:"JWT_SECRET" default:"dev-only-secret-change-me"`
	Issuer     string        `envconfig:"JWT_ISSUER" default:"indiveg-hub"`
	TTL        time.Duration `envconfig:"JWT_TTL" default:"24h"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

type Password struct {
	Memory      uint32 `envconfig:"ARGON_MEMORY" default:"65536"`
	Iterations  uint32 `envconfig:"ARGON_ITERATIONS" default:"3"`
	Parallelism uint8  `envconfig:"ARGON_PARALLELISM" default:"2"`
	SaltLength  uint32 `envconfig:"ARGON_SALT_LENGTH" default:"16"`
	KeyLength   uint32 `envconfig:"ARGON_KEY_LENGTH" default:"32"`
}

type AuthRateLimit struct {
	Enabled    bool          `envconfig:"AUTH_RATE_LIMIT_ENABLED" default:"true"`
	MaxPerIP   int           `envconfig:"AUTH_RATE_LIMIT_MAX_PER_IP" default:"20"`
	MaxPerUser int           `envconfig:"AUTH_RATE_LIMIT_MAX_PER_USER" default:"8"`
	Window     time.Duration `envconfig:"AUTH_RATE_LIMIT_WINDOW" default:"1m"`
}

type Checkout struct {
	DeliveryFeeRupees  int64 `envconfig:"CHECKOUT_DELIVERY_FEE_RUPEES" default:"40"`
	DeliveryLeadDays   int   `envconfig:"CHECKOUT_DELIVERY_LEAD_DAYS" default:"1"`
	DeliveryWindowDays int   `envconfig:"CHECKOUT_DELIVERY_WINDOW_DAYS" default:"4"`
}

type Demo struct {
	FixedOTP string        `envconfig:"DEMO_FIXED_OTP" default:"123456"`
	Seed     bool          `envconfig:"DEMO_SEED" default:"true"`
	OTPTTL   time.Duration `envconfig:"DEMO_OTP_TTL" default:"5m"`
}

type FeatureFlags struct {
	UseSQLite   bool `envconfig:"FEATURE_USE_SQLITE" default:"true"`
	AutoMigrate bool `envconfig:"FEATURE_AUTO_MIGRATE" default:"true"`
}

type Config struct {
	App           App
	DB            DB
	Redis         Redis
	JWT           JWT
	Password      Password
	AuthRateLimit AuthRateLimit
	Checkout      Checkout
	Demo          Demo
	Features      FeatureFlags
}

// Load reads .env when present, then overlays INDIVEG_* variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
