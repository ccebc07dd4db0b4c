package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file leaves a value unset.
const (
	DefaultPort              = 8090
	DefaultCacheTTLSeconds   = 300
	DefaultRefreshIntervalMS = 300000
	DefaultTimeoutMS         = 10000
)

// Load reads and validates the application configuration. When no paths
// are given it tries config.yml in the working directory.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./deploy/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Disruption.RefreshIntervalMS == 0 {
		cfg.Disruption.RefreshIntervalMS = DefaultRefreshIntervalMS
	}
	if cfg.Disruption.TimeoutMS == 0 {
		cfg.Disruption.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Store.TimeoutMS == 0 {
		cfg.Store.TimeoutMS = DefaultTimeoutMS
	}
}
