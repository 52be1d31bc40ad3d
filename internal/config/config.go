package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ecgsim/internal/ecg"
)

const (
	DefaultHeartRate      = 60.0
	DefaultSamplingRate   = 500.0
	DefaultGain           = 1.0
	DefaultWidth          = 800
	DefaultHeight         = 300
	DefaultDisplaySeconds = 8.0
)

type Config struct {
	HeartRate      float64 `yaml:"heart_rate"`
	SamplingRate   float64 `yaml:"sampling_rate"`
	Gain           float64 `yaml:"gain"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	DisplaySeconds float64 `yaml:"display_seconds"`
	Seed           int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		HeartRate:      DefaultHeartRate,
		SamplingRate:   DefaultSamplingRate,
		Gain:           DefaultGain,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		DisplaySeconds: DefaultDisplaySeconds,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values that would break derived constants or the
// display mapping. Heart rate is deliberately not rejected here; the
// engine floors it at ecg.MinHeartRate instead.
func (c *Config) Validate() error {
	if c.SamplingRate <= 0 {
		return fmt.Errorf("sampling_rate must be positive, got %f", c.SamplingRate)
	}
	if c.DisplaySeconds <= 0 {
		return fmt.Errorf("display_seconds must be positive, got %f", c.DisplaySeconds)
	}
	if c.Gain <= 0 {
		return fmt.Errorf("gain must be positive, got %f", c.Gain)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("display geometry must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// Params returns the generator parameters for this configuration.
func (c *Config) Params() ecg.Params {
	return ecg.Params{
		HeartRate:      c.HeartRate,
		SamplingRate:   c.SamplingRate,
		DisplaySeconds: c.DisplaySeconds,
	}
}

// Display returns the pixel mapping for this configuration.
func (c *Config) Display() ecg.Display {
	return ecg.Display{
		Width:          float64(c.Width),
		Height:         float64(c.Height),
		DisplaySeconds: c.DisplaySeconds,
		Gain:           c.Gain,
	}
}
