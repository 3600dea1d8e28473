package config

import "github.com/caarlos0/env/v11"

// Config is the process configuration, read from the environment. Flags in
// main override the Addr, DSN and RedisAddr values.
type Config struct {
	Addr          string `env:"BRAMBLE_ADDR" envDefault:":8080"`
	DSN           string `env:"BRAMBLE_DSN" envDefault:"bramble.db"`
	RedisAddr     string `env:"BRAMBLE_REDIS_ADDR" envDefault:"localhost:6379"`
	SessionSecret string `env:"BRAMBLE_SESSION_SECRET"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
