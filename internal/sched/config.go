package sched

import (
	"fmt"
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// DefaultDevices is the size of the device bank when the config does not say.
const DefaultDevices = 10

// Config mirrors procsim.yml
type Config struct {
	Devices         int    `yaml:"devices"`          // 10 (by default)
	Preemptive      *bool  `yaml:"preemptive"`       // overrides the trace header when set
	LogFormat       string `yaml:"log_format"`       // text | json
	LogLevel        string `yaml:"log_level"`        // debug | info | warn | error
	EventLog        bool   `yaml:"event_log"`        // chronological log on stdout
	EventCSV        string `yaml:"event_csv"`        // CSV event log path, empty = off
	TraceFile       string `yaml:"trace_file"`       // OpenTelemetry stdout exporter target, empty = off
	Table           bool   `yaml:"table"`            // render the report as a table
	CheckInvariants bool   `yaml:"check_invariants"` // validate the engine after every event
}

// If the config file is not given, we use default values
func DefaultConfig() Config {
	return Config{
		Devices:   DefaultDevices,
		LogFormat: "text",
		LogLevel:  "info",
		EventLog:  true,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// sanity clamps
	if cfg.Devices <= 0 {
		cfg.Devices = DefaultDevices
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat != "json" {
		cfg.LogFormat = "text"
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
