package gesture

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config configures an Engine.
type Config struct {
	Debug      bool
	Target     string
	Thresholds Thresholds
}

// DefaultConfig returns a config with the stock thresholds.
func DefaultConfig() Config {
	return Config{Thresholds: DefaultThresholds()}
}

// configFile is the on-disk shape. Durations are whole milliseconds;
// absent keys keep their defaults.
type configFile struct {
	Debug      bool            `yaml:"debug" toml:"debug"`
	Target     string          `yaml:"target" toml:"target"`
	Thresholds *thresholdsFile `yaml:"thresholds" toml:"thresholds"`
}

type thresholdsFile struct {
	TapMaxMs            *int     `yaml:"tap_max_ms" toml:"tap_max_ms"`
	TapMaxDistance      *float64 `yaml:"tap_max_distance" toml:"tap_max_distance"`
	DoubleTapMs         *int     `yaml:"double_tap_ms" toml:"double_tap_ms"`
	DoubleTapDistance   *float64 `yaml:"double_tap_distance" toml:"double_tap_distance"`
	PressMinMs          *int     `yaml:"press_min_ms" toml:"press_min_ms"`
	PressMaxMs          *int     `yaml:"press_max_ms" toml:"press_max_ms"`
	HardPressPressure   *float64 `yaml:"hard_press_pressure" toml:"hard_press_pressure"`
	SwipeMaxMs          *int     `yaml:"swipe_max_ms" toml:"swipe_max_ms"`
	SwipeMinVelocity    *float64 `yaml:"swipe_min_velocity" toml:"swipe_min_velocity"`
	MoveEpsilon         *float64 `yaml:"move_epsilon" toml:"move_epsilon"`
	PinchEpsilon        *float64 `yaml:"pinch_epsilon" toml:"pinch_epsilon"`
	RotateEpsilon       *float64 `yaml:"rotate_epsilon" toml:"rotate_epsilon"`
	ClickMaxDistance    *float64 `yaml:"click_max_distance" toml:"click_max_distance"`
	DoubleClickMs       *int     `yaml:"double_click_ms" toml:"double_click_ms"`
	DoubleClickDistance *float64 `yaml:"double_click_distance" toml:"double_click_distance"`
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	format, err := formatOf(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path in the format chosen by its extension.
func SaveConfig(path string, cfg Config) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := EncodeConfig(cfg, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("config %s: unsupported extension", path)
}

// ParseConfig decodes a config in the given format ("yaml" or "toml") on
// top of the defaults and validates the result.
func ParseConfig(data []byte, format string) (Config, error) {
	var f configFile
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Config{}, err
		}
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", format)
	}
	cfg := DefaultConfig()
	cfg.Debug = f.Debug
	cfg.Target = f.Target
	if f.Thresholds != nil {
		f.Thresholds.apply(&cfg.Thresholds)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return Config{}, fmt.Errorf("thresholds: %w", err)
	}
	return cfg, nil
}

// EncodeConfig renders cfg with every threshold spelled out.
func EncodeConfig(cfg Config, format string) ([]byte, error) {
	f := configFile{Debug: cfg.Debug, Target: cfg.Target, Thresholds: thresholdsToFile(cfg.Thresholds)}
	switch format {
	case "yaml":
		return yaml.Marshal(&f)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(&f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New("unknown config format " + format)
}

func setMs(dst *time.Duration, ms *int) {
	if ms != nil {
		*dst = time.Duration(*ms) * time.Millisecond
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func (f *thresholdsFile) apply(t *Thresholds) {
	setMs(&t.TapMaxDuration, f.TapMaxMs)
	setFloat(&t.TapMaxDistance, f.TapMaxDistance)
	setMs(&t.DoubleTapInterval, f.DoubleTapMs)
	setFloat(&t.DoubleTapDistance, f.DoubleTapDistance)
	setMs(&t.PressMinDuration, f.PressMinMs)
	setMs(&t.PressMaxDuration, f.PressMaxMs)
	setFloat(&t.HardPressPressure, f.HardPressPressure)
	setMs(&t.SwipeMaxDuration, f.SwipeMaxMs)
	setFloat(&t.SwipeMinVelocity, f.SwipeMinVelocity)
	setFloat(&t.MoveEpsilon, f.MoveEpsilon)
	setFloat(&t.PinchEpsilon, f.PinchEpsilon)
	setFloat(&t.RotateEpsilon, f.RotateEpsilon)
	setFloat(&t.ClickMaxDistance, f.ClickMaxDistance)
	setMs(&t.DoubleClickInterval, f.DoubleClickMs)
	setFloat(&t.DoubleClickDistance, f.DoubleClickDistance)
}

func thresholdsToFile(t Thresholds) *thresholdsFile {
	ms := func(d time.Duration) *int {
		v := int(d / time.Millisecond)
		return &v
	}
	f := func(v float64) *float64 { return &v }
	return &thresholdsFile{
		TapMaxMs:            ms(t.TapMaxDuration),
		TapMaxDistance:      f(t.TapMaxDistance),
		DoubleTapMs:         ms(t.DoubleTapInterval),
		DoubleTapDistance:   f(t.DoubleTapDistance),
		PressMinMs:          ms(t.PressMinDuration),
		PressMaxMs:          ms(t.PressMaxDuration),
		HardPressPressure:   f(t.HardPressPressure),
		SwipeMaxMs:          ms(t.SwipeMaxDuration),
		SwipeMinVelocity:    f(t.SwipeMinVelocity),
		MoveEpsilon:         f(t.MoveEpsilon),
		PinchEpsilon:        f(t.PinchEpsilon),
		RotateEpsilon:       f(t.RotateEpsilon),
		ClickMaxDistance:    f(t.ClickMaxDistance),
		DoubleClickMs:       ms(t.DoubleClickInterval),
		DoubleClickDistance: f(t.DoubleClickDistance),
	}
}
