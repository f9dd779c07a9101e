package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "court"
password = "secret"
dbname = "courts"

[facility_service]
url = "http://facility:8081"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Reservations.GranularityMinutes)
	assert.Equal(t, "advisory", cfg.Reservations.LockStrategy)
	assert.Equal(t, "UTC", cfg.Reservations.Timezone)
	assert.Equal(t, "host=localhost port=5432 user=court password=secret dbname=courts sslmode=disable", cfg.Database.DSN())
}

func TestLoad_OverridesValues(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
dbname = "courts"

[facility_service]
url = "http://facility:8081"
timeout = 2

[reservations]
granularity_minutes = 15
timezone = "Europe/Moscow"
lock_strategy = "redis"

[redis]
addr = "redis:6379"

[kafka]
enabled = true
brokers = ["kafka:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Reservations.GranularityMinutes)
	assert.Equal(t, "redis", cfg.Reservations.LockStrategy)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "court-reservations", cfg.Kafka.Topic)

	loc, err := cfg.Reservations.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.DBName = "courts"
		cfg.FacilityService.URL = "http://facility"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "granularity does not divide day", mutate: func(c *Config) { c.Reservations.GranularityMinutes = 7 }},
		{name: "zero granularity", mutate: func(c *Config) { c.Reservations.GranularityMinutes = 0 }},
		{name: "unknown lock strategy", mutate: func(c *Config) { c.Reservations.LockStrategy = "mutex" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Reservations.Timezone = "Mars/Olympus" }},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Kafka.Enabled = true }},
		{name: "no facility url", mutate: func(c *Config) { c.FacilityService.URL = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
