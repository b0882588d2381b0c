// Package config loads the daemon configuration from an optional TOML file.
// Anything not set in the file keeps its default; command-line flags override
// file values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sweeney/lock-indication/internal/indication"
)

// Config holds the complete daemon configuration.
type Config struct {
	// Broker is the MQTT broker address.
	Broker string `toml:"broker"`

	// HTTPAddr is the status page address; empty disables the server.
	HTTPAddr string `toml:"http_addr"`

	// IconPin is the BCM pin of the fingerprint error LED; -1 disables it.
	IconPin int `toml:"icon_pin"`

	Charging ChargingConfig `toml:"charging"`
	Colors   ColorsConfig   `toml:"colors"`
	Messages MessagesConfig `toml:"messages"`
}

// ChargingConfig holds the charging classification and display settings.
type ChargingConfig struct {
	// SlowThresholdMicrowatt: rates strictly below are SLOW.
	SlowThresholdMicrowatt int `toml:"slow_threshold_microwatt"`
	// FastThresholdMicrowatt: rates strictly above are FAST.
	FastThresholdMicrowatt int `toml:"fast_threshold_microwatt"`
	// ShowCurrent appends a current/voltage line to the charging message.
	ShowCurrent bool `toml:"show_current"`
	// DebugSpeed appends the raw wattage to the charging message.
	DebugSpeed bool `toml:"debug_speed"`
}

// ColorsConfig holds display colors as "#rrggbb" or "#rrggbbaa" strings.
type ColorsConfig struct {
	Warning string `toml:"warning"`
}

// MessagesConfig overrides individual display templates. Empty fields keep
// the built-in default.
type MessagesConfig struct {
	StorageLocked    string `toml:"storage_locked"`
	Charged          string `toml:"charged"`
	Charging         string `toml:"charging"`
	ChargingTime     string `toml:"charging_time"`
	ChargingFast     string `toml:"charging_fast"`
	ChargingTimeFast string `toml:"charging_time_fast"`
	ChargingSlow     string `toml:"charging_slow"`
	ChargingTimeSlow string `toml:"charging_time_slow"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Broker:   "tcp://localhost:1883",
		HTTPAddr: ":8080",
		IconPin:  12,
		Charging: ChargingConfig{
			SlowThresholdMicrowatt: 1000000,
			FastThresholdMicrowatt: 7500000,
		},
		Colors: ColorsConfig{
			Warning: "#ffa000",
		},
	}
}

// Load reads the configuration. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Charging.SlowThresholdMicrowatt < 0 || c.Charging.FastThresholdMicrowatt < 0 {
		return fmt.Errorf("charging thresholds must not be negative")
	}
	if c.Charging.SlowThresholdMicrowatt > c.Charging.FastThresholdMicrowatt {
		return fmt.Errorf("slow threshold %d exceeds fast threshold %d",
			c.Charging.SlowThresholdMicrowatt, c.Charging.FastThresholdMicrowatt)
	}
	if c.Colors.Warning != "" {
		if _, err := ParseColor(c.Colors.Warning); err != nil {
			return fmt.Errorf("colors.warning: %w", err)
		}
	}
	return nil
}

// WarningColor returns the parsed warning color.
func (c *Config) WarningColor() indication.Color {
	col, err := ParseColor(c.Colors.Warning)
	if err != nil {
		// Validate catches this earlier; fall back anyway.
		return indication.Color{R: 255, G: 160, B: 0, A: 255}
	}
	return col
}

// IndicationMessages returns the templates with file overrides applied.
func (c *Config) IndicationMessages() indication.Messages {
	m := indication.DefaultMessages()
	override(&m.StorageLocked, c.Messages.StorageLocked)
	override(&m.Charged, c.Messages.Charged)
	override(&m.Charging, c.Messages.Charging)
	override(&m.ChargingTime, c.Messages.ChargingTime)
	override(&m.ChargingFast, c.Messages.ChargingFast)
	override(&m.ChargingTimeFast, c.Messages.ChargingTimeFast)
	override(&m.ChargingSlow, c.Messages.ChargingSlow)
	override(&m.ChargingTimeSlow, c.Messages.ChargingTimeSlow)
	return m
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (indication.Color, error) {
	var c indication.Color
	c.A = 255
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return indication.Color{}, fmt.Errorf("bad color %q", s)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return indication.Color{}, fmt.Errorf("bad color %q", s)
		}
	default:
		return indication.Color{}, fmt.Errorf("bad color %q (want #rrggbb or #rrggbbaa)", s)
	}
	return c, nil
}
