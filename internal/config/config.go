package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

var (
	// ErrLoadConfig не удалось прочитать или разобрать файл конфигурации
	ErrLoadConfig = errors.New("config: failed to load config")

	// ErrInvalidConfig значения конфигурации не прошли проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Tracing         TracingConfig         `toml:"tracing"`
	FacilityService FacilityServiceConfig `toml:"facility_service"`
	Reservations    ReservationsConfig    `toml:"reservations"`
	Redis           RedisConfig           `toml:"redis"`
	Kafka           KafkaConfig           `toml:"kafka"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	SampleRatio float64 `toml:"sample_ratio"`
}

type FacilityServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type ReservationsConfig struct {
	GranularityMinutes   int    `toml:"granularity_minutes"`
	Timezone             string `toml:"timezone"`
	LockStrategy         string `toml:"lock_strategy"` // serializable | advisory | redis
	SerializableRetries  int    `toml:"serializable_retries"`
	SweepIntervalSeconds int    `toml:"sweep_interval_seconds"` // 0 - фоновая очистка выключена
}

// Location таймзона, в которой считаются "сегодня" и момент начала брони
func (r ReservationsConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	LockTTLMs int    `toml:"lock_ttl_ms"`
	WaitMs    int    `toml:"wait_ms"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация со значениями по умолчанию; поля из файла перекрывают их
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "court_booking_service",
		},
		Tracing: TracingConfig{
			Endpoint:    "localhost:4317",
			SampleRatio: 1,
		},
		FacilityService: FacilityServiceConfig{
			Timeout: 5,
		},
		Reservations: ReservationsConfig{
			GranularityMinutes:  30,
			Timezone:            "UTC",
			LockStrategy:        "advisory",
			SerializableRetries: 3,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			LockTTLMs: 10000,
			WaitMs:    5000,
		},
		Kafka: KafkaConfig{
			Topic: "court-reservations",
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}

	if c.FacilityService.URL == "" {
		return fmt.Errorf("%w: facility_service.url is required", ErrInvalidConfig)
	}

	g := c.Reservations.GranularityMinutes
	if g <= 0 || 1440%g != 0 {
		return fmt.Errorf("%w: reservations.granularity_minutes must divide 1440, got %d", ErrInvalidConfig, g)
	}

	if _, err := c.Reservations.Location(); err != nil {
		return fmt.Errorf("%w: reservations.timezone: %v", ErrInvalidConfig, err)
	}

	switch c.Reservations.LockStrategy {
	case "serializable", "advisory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for lock_strategy=redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown reservations.lock_strategy %q", ErrInvalidConfig, c.Reservations.LockStrategy)
	}

	if c.Reservations.SweepIntervalSeconds < 0 {
		return fmt.Errorf("%w: reservations.sweep_interval_seconds must not be negative", ErrInvalidConfig)
	}

	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required when kafka is enabled", ErrInvalidConfig)
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("%w: tracing.endpoint is required when tracing is enabled", ErrInvalidConfig)
	}

	return nil
}
