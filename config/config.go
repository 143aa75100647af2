package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Shop     ShopConfig     `yaml:"shop"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// HTTPConfig.TrustedProxies lists the proxy addresses or CIDRs whose
// X-Forwarded-For header is believed. Empty means the socket address is used.
type HTTPConfig struct {
	Address        string   `yaml:"address" env:"HTTP_ADDRESS"`
	SwaggerDir     string   `yaml:"swagger_dir" env:"HTTP_SWAGGER_DIR"`
	TrustedProxies []string `yaml:"trusted_proxies" env:"HTTP_TRUSTED_PROXIES" env-separator:","`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type DatabaseConfig struct {
	Host        string `yaml:"host" env:"DB_HOST"`
	Port        int    `yaml:"port" env:"DB_PORT"`
	User        string `yaml:"user" env:"DB_USER"`
	Password    string `yaml:"password" env:"DB_PASSWORD"`
	Name        string `yaml:"name" env:"DB_NAME"`
	SSLMode     string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	TicketEventsTopic  string   `yaml:"ticket_events_topic" env:"KAFKA_TICKET_EVENTS_TOPIC"`
	NotificationsTopic string   `yaml:"notifications_topic" env:"KAFKA_NOTIFICATIONS_TOPIC"`
	GroupID            string   `yaml:"group_id" env:"KAFKA_GROUP_ID"`
}

// ShopConfig holds storefront settings. PageSize controls flight list pagination.
type ShopConfig struct {
	PageSize         int      `yaml:"page_size" env:"SHOP_PAGE_SIZE"`
	FlightsCacheTTL  int      `yaml:"flights_cache_ttl_seconds" env:"SHOP_FLIGHTS_CACHE_TTL_SECONDS"`
	DefaultDeparture string   `yaml:"default_departure" env:"SHOP_DEFAULT_DEPARTURE"`
	FeaturedCities   []string `yaml:"featured_cities"`
}

type SessionConfig struct {
	CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
	TTLHours     int    `yaml:"ttl_hours" env:"SESSION_TTL_HOURS"`
	CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
}

type SecurityConfig struct {
	LoginRatePerSecond float64 `yaml:"login_rate_per_second" env:"SECURITY_LOGIN_RATE_PER_SECOND"`
	LoginBurst         int     `yaml:"login_burst" env:"SECURITY_LOGIN_BURST"`
}

type BookingConfig struct {
	PaymentTTLMinutes int `yaml:"payment_ttl_minutes" env:"BOOKING_PAYMENT_TTL_MINUTES"`
}

type WorkerConfig struct {
	ExpirationSweepMinutes int `yaml:"expiration_sweep_minutes" env:"WORKER_EXPIRATION_SWEEP_MINUTES"`
}

// LoadConfig reads the YAML file at path, then lets environment variables
// override individual fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Shop.PageSize <= 0 {
		c.Shop.PageSize = 6
	}
	if c.Shop.FlightsCacheTTL <= 0 {
		c.Shop.FlightsCacheTTL = 60
	}
	if c.Shop.DefaultDeparture == "" {
		c.Shop.DefaultDeparture = "Ho Chi Minh"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "flightshop_session"
	}
	if c.Session.TTLHours <= 0 {
		c.Session.TTLHours = 24
	}
	if c.Security.LoginRatePerSecond <= 0 {
		c.Security.LoginRatePerSecond = 1
	}
	if c.Security.LoginBurst <= 0 {
		c.Security.LoginBurst = 5
	}
	if c.Booking.PaymentTTLMinutes <= 0 {
		c.Booking.PaymentTTLMinutes = 15
	}
	if c.Worker.ExpirationSweepMinutes <= 0 {
		c.Worker.ExpirationSweepMinutes = 1
	}
}
