package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env     string
	Port    int
	AppName string

	Log     LogConfig
	HTTP    HTTPConfig
	Tracker TrackerConfig

	MetricsEnabled bool
	SwaggerEnabled bool
}

type LogConfig struct {
	Level  string
	Format string
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// TrackerConfig ajusta el tracker en memoria.
type TrackerConfig struct {
	// 0 = sin límite.
	Capacity        int
	NearDueWindow   time.Duration
	DefaultInterval time.Duration
	SeedDemo        bool
}

// Load lee .env (si existe) y variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:     v.GetString("ENV"),
		Port:    v.GetInt("PORT"),
		AppName: v.GetString("APP_NAME"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     parseDuration(v.GetString("HTTP_READ_TIMEOUT"), 5*time.Second),
			WriteTimeout:    parseDuration(v.GetString("HTTP_WRITE_TIMEOUT"), 10*time.Second),
			ShutdownTimeout: parseDuration(v.GetString("HTTP_SHUTDOWN_TIMEOUT"), 10*time.Second),
		},
		Tracker: TrackerConfig{
			Capacity:        v.GetInt("TRACKER_CAPACITY"),
			NearDueWindow:   parseDuration(v.GetString("NEAR_DUE_WINDOW"), 5*time.Minute),
			DefaultInterval: parseDuration(v.GetString("DEFAULT_FEEDING_INTERVAL"), 3*time.Hour),
			SeedDemo:        v.GetBool("SEED_DEMO"),
		},
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		SwaggerEnabled: v.GetBool("SWAGGER_ENABLED"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("config: PORT must be between 1 and 65535")
	}
	if c.Tracker.Capacity < 0 {
		return errors.New("config: TRACKER_CAPACITY must not be negative")
	}
	if c.Tracker.NearDueWindow < 0 {
		return errors.New("config: NEAR_DUE_WINDOW must not be negative")
	}
	if c.Tracker.DefaultInterval < 0 {
		return errors.New("config: DEFAULT_FEEDING_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_NAME", "infant-feeding-tracker")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("TRACKER_CAPACITY", 10)
	v.SetDefault("NEAR_DUE_WINDOW", "5m")
	v.SetDefault("DEFAULT_FEEDING_INTERVAL", "3h")
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SWAGGER_ENABLED", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
