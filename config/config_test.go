package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9000"
database:
  host: db
  port: 5433
  user: shop
  password: secret
  name: flights
  ssl_mode: disable
kafka:
  brokers: ["k1:9092", "k2:9092"]
  ticket_events_topic: ticket-events
shop:
  page_size: 12
  featured_cities: ["Hà Nội", "Tokyo"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, 12, cfg.Shop.PageSize)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"Hà Nội", "Tokyo"}, cfg.Shop.FeaturedCities)
	assert.Equal(t, "host=db port=5433 user=shop password=secret dbname=flights sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 6, cfg.Shop.PageSize)
	assert.Equal(t, "Ho Chi Minh", cfg.Shop.DefaultDeparture)
	assert.Equal(t, "flightshop_session", cfg.Session.CookieName)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, 15, cfg.Booking.PaymentTTLMinutes)
	assert.Equal(t, 1, cfg.Worker.ExpirationSweepMinutes)
	assert.Equal(t, 60, cfg.Shop.FlightsCacheTTL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SHOP_PAGE_SIZE", "20")
	t.Setenv("DB_HOST", "override-host")

	cfg, err := LoadConfig(writeConfig(t, "shop:\n  page_size: 5\ndatabase:\n  host: file-host\n"))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Shop.PageSize)
	assert.Equal(t, "override-host", cfg.Database.Host)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
