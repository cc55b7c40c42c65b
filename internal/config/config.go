// Package config holds the demo application settings, stored as YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Display describes the panel and how it is wired.
type Display struct {
	// Bus is the periph.io I²C bus name ("" for the first one).
	Bus string `yaml:"bus"`
	// Address is the 7-bit I²C address.
	Address uint16 `yaml:"address"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	// ExternalPower selects the external VDD supply.
	ExternalPower bool `yaml:"external_power"`
	// Contrast is applied after initialization (0-255).
	Contrast int `yaml:"contrast"`
	// MaxTxSize caps the I²C transaction length, 0 for no cap.
	MaxTxSize int `yaml:"max_tx_size"`
}

// Pins names the GPIO pins, as known to gpioreg.
type Pins struct {
	LED1    string `yaml:"led1"`
	LED2    string `yaml:"led2"`
	Button1 string `yaml:"button1"`
	Button2 string `yaml:"button2"`
	// PWM, when set, mirrors the ADC reading as a PWM duty cycle.
	PWM string `yaml:"pwm"`
}

// ADC describes the analog input, an ADS1115 sharing the display bus.
type ADC struct {
	// Pin is the single-ended channel, "A0" to "A3". Empty disables voltage
	// readings.
	Pin string `yaml:"pin"`
	// Address is the 7-bit I²C address of the converter.
	Address uint16 `yaml:"address"`
	// VRef is the full scale voltage.
	VRef float64 `yaml:"vref"`
}

// Config is the top-level application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// Refresh is the screen update period, as a Go duration ("100ms").
	Refresh string  `yaml:"refresh"`
	Display Display `yaml:"display"`
	Pins    Pins    `yaml:"pins"`
	ADC     ADC     `yaml:"adc"`
}

// DefaultConfig returns the wiring of the reference board: a 128x128 panel
// at 0x3C, LEDs on GP16/GP17 and buttons on GP18/GP19.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Refresh:  "100ms",
		Display: Display{
			Address:  0x3C,
			Width:    128,
			Height:   128,
			Contrast: 0x7F,
		},
		Pins: Pins{
			LED1:    "GPIO16",
			LED2:    "GPIO17",
			Button1: "GPIO18",
			Button2: "GPIO19",
		},
		ADC: ADC{Address: 0x48, VRef: 3.3},
	}
}

// Normalize fills in missing values with the defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Refresh == "" {
		c.Refresh = d.Refresh
	}
	if c.Display.Address == 0 {
		c.Display.Address = d.Display.Address
	}
	if c.Display.Width <= 0 {
		c.Display.Width = d.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = d.Display.Height
	}
	if c.Display.Contrast < 0 || c.Display.Contrast > 255 {
		c.Display.Contrast = d.Display.Contrast
	}
	if c.ADC.Address == 0 {
		c.ADC.Address = d.ADC.Address
	}
	if c.ADC.VRef <= 0 {
		c.ADC.VRef = d.ADC.VRef
	}
}

// RefreshInterval parses Refresh.
func (c *Config) RefreshInterval() (time.Duration, error) {
	p, err := time.ParseDuration(c.Refresh)
	if err != nil {
		return 0, fmt.Errorf("config: refresh: %w", err)
	}
	if p <= 0 {
		return 0, fmt.Errorf("config: refresh must be positive, got %s", p)
	}
	return p, nil
}

// Load loads configuration from the given YAML path.
//
// Keys missing from the file keep their default value. A missing file is
// created with the defaults (0600) and the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path atomically through a temporary file in the same
// directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ssd1327-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
