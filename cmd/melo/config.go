package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration, read from a YAML file. Missing
// members keep their defaults.
type Config struct {
	HTTP struct {
		// Addr is the listen address of the control surface.
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	Settings struct {
		// Path is the location of the persisted settings snapshot.
		Path string `yaml:"path"`
	} `yaml:"settings"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.HTTP.Addr = "127.0.0.1:8686"
	cfg.Settings.Path = defaultSettingsPath()
	return cfg
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "melo-settings.cbor"
	}
	return dir + "/melo/settings.cbor"
}

// loadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults; a missing file is an error so typos do not silently
// start a misconfigured daemon.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "127.0.0.1:8686"
	}
	return cfg, nil
}
