// Package config loads the gateway's YAML configuration file. Grounded on
// haivivi-giztoy's cmd/giztoy/internal/config package: a plain struct
// populated with github.com/goccy/go-yaml and read with os.ReadFile, error
// paths wrapped with fmt.Errorf and %w.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the complete set of knobs the gateway reads at startup. Every
// field has a usable zero-value-adjacent default applied by Default, so a
// minimal or missing config file still produces a running gateway.
type Config struct {
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Sources SourcesConfig `yaml:"sources"`
	Sensors SensorsConfig `yaml:"sensors"`
	Navaid  NavaidConfig  `yaml:"navaid"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// MQTTConfig configures the embedded broker's fixed-size connection pool.
type MQTTConfig struct {
	ListenAddr string `yaml:"listenAddr"`
	MaxClients int    `yaml:"maxClients"`
}

// SourcesConfig lists the NMEA 0183/AIS feeds the gateway connects to.
type SourcesConfig struct {
	TCP []string `yaml:"tcp"`
}

// SensorsConfig configures the I²C environmental sensor poller.
type SensorsConfig struct {
	PollInterval time.Duration `yaml:"pollInterval"`
}

// NavaidConfig bounds the AIS aid-to-navigation slot table.
type NavaidConfig struct {
	MaxTracked int `yaml:"maxTracked"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	ListenAddr string `yaml:"listenAddr"`
}

// Default returns the configuration used when no file is given or a file
// omits a section entirely.
func Default() Config {
	return Config{
		MQTT: MQTTConfig{
			ListenAddr: ":1883",
			MaxClients: 8,
		},
		Sensors: SensorsConfig{
			PollInterval: 10 * time.Second,
		},
		Navaid: NavaidConfig{
			MaxTracked: 64,
		},
		Metrics: MetricsConfig{
			ListenAddr: ":9090",
		},
	}
}

// Load reads and parses the YAML file at path, starting from Default and
// overlaying whatever the file specifies.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
