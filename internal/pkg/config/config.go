package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HomgarCfg        *HomgarConfig
	MqttCfg          *MqttConfig
	DatabaseURL      string `env:"DATABASE_URL"`
	MigrationsFolder string `env:"MIGRATIONS_FOLDER"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"INFO"`
}

type HomgarConfig struct {
	Email        string        `env:"HOMGAR_EMAIL"`
	Password     string        `env:"HOMGAR_PASSWORD"`
	AreaCode     string        `env:"HOMGAR_AREA_CODE" envDefault:"31"`
	APIBase      string        `env:"HOMGAR_API_BASE" envDefault:"https://region3.homgarus.com"`
	CacheFile    string        `env:"HOMGAR_CACHE_FILE"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"5m"`
}

type MqttConfig struct {
	Host     string `env:"MQTT_HOST"`
	Username string `env:"MQTT_USER"`
	Password string `env:"MQTT_PASS"`
}

// FromEnv builds a Config from environment variables only. The CLI flags in
// main take precedence; this exists for embedding without the CLI.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HomgarCfg: &HomgarConfig{},
		MqttCfg:   &MqttConfig{},
	}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg.HomgarCfg); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg.MqttCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
