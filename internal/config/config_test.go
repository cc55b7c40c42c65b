package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, DefaultConfig()); diff != "" {
		t.Errorf("Load() difference (-got +want):\n%s", diff)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if perm := st.Mode().Perm(); perm != 0o600 {
		t.Errorf("config permissions = %o, want 600", perm)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(again, cfg); diff != "" {
		t.Errorf("reloaded config difference (-got +want):\n%s", diff)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
refresh: 250ms
display:
  width: 96
  height: 96
  max_tx_size: 32
pins:
  pwm: GPIO17
adc:
  pin: A0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		LogLevel: "info",
		Refresh:  "250ms",
		Display: Display{
			Address:   0x3C,
			Width:     96,
			Height:    96,
			Contrast:  0x7F,
			MaxTxSize: 32,
		},
		Pins: Pins{
			LED1:    "GPIO16",
			LED2:    "GPIO17",
			Button1: "GPIO18",
			Button2: "GPIO19",
			PWM:     "GPIO17",
		},
		ADC: ADC{Pin: "A0", Address: 0x48, VRef: 3.3},
	}
	if diff := cmp.Diff(cfg, want); diff != "" {
		t.Errorf("Load() difference (-got +want):\n%s", diff)
	}
}

func TestLoadContrast(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"missing key keeps default", "display:\n  width: 128\n", 0x7F},
		{"explicit value", "display:\n  contrast: 200\n", 200},
		{"explicit zero", "display:\n  contrast: 0\n", 0},
		{"out of range", "display:\n  contrast: 300\n", 0x7F},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o600); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Display.Contrast != tt.want {
				t.Errorf("Contrast = %d, want %d", cfg.Display.Contrast, tt.want)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("display: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
	if _, err := Load(""); err == nil {
		t.Error("Load() accepted an empty path")
	}
}

func TestRefreshInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"100ms", 100 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"0s", 0, true},
		{"-1s", 0, true},
		{"often", 0, true},
	}
	for _, tt := range tests {
		c := &Config{Refresh: tt.in}
		got, err := c.RefreshInterval()
		if (err != nil) != tt.wantErr {
			t.Errorf("RefreshInterval(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("RefreshInterval(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSaveNil(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "c.yaml"), nil); err == nil {
		t.Error("Save(nil) succeeded")
	}
}
