// Package config loads the client's YAML configuration file: the server
// address to dial, the local player roster, and the feature-flag mapping
// that gates packet registration and bot handlers.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server is the host/port to connect both the TCP and UDP transports to.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config is the top-level shape of the client's YAML configuration file.
type Config struct {
	Server       Server         `yaml:"server"`
	LocalPlayers []string       `yaml:"local_players"`
	LogLevel     string         `yaml:"log_level"`
	Features     map[string]any `yaml:"features"`
}

// DefaultPort is the Jazz Jackrabbit 2 server's default TCP+UDP port.
const DefaultPort = 10052

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := &Config{Server: Server{Port: DefaultPort}}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	return cfg, nil
}

// SessionConfig projects Features into the map[string]any the dispatcher's
// Configure expects; a nil Features is treated as an empty map.
func (c *Config) SessionConfig() map[string]any {
	if c.Features == nil {
		return map[string]any{}
	}
	return c.Features
}
