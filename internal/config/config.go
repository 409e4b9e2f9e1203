// Package config loads arbor's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds everything the arbor command needs to open a window and grow
// a tree. Keys match the YAML file.
type Config struct {
	Word        string `mapstructure:"word"`
	WordFile    string `mapstructure:"word_file"`
	HistoryFile string `mapstructure:"history_file"`

	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Title   string `mapstructure:"title"`
	ShowFPS bool   `mapstructure:"show_fps"`
	Ground  bool   `mapstructure:"ground"`

	Duration time.Duration `mapstructure:"duration"`
	Seed     uint64        `mapstructure:"seed"`

	// Forest, when set, replaces the single tree.
	Forest []Planting `mapstructure:"forest"`

	MetricsAddr   string `mapstructure:"metrics_addr"`
	LogLevel      string `mapstructure:"log_level"`
	ScriptFile    string `mapstructure:"script_file"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// Planting is one tree of a forest.
type Planting struct {
	Word    string        `mapstructure:"word"`
	OffsetX float64       `mapstructure:"offset_x"`
	Delay   time.Duration `mapstructure:"delay"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Width:         1280,
		Height:        720,
		Title:         "arbor",
		Ground:        true,
		Duration:      5 * time.Second,
		Seed:          42,
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
	}
}

// Load reads path and overlays it on Default. A missing path is not an
// error when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg and validates the result. Unknown keys
// are rejected.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return cfg.Validate()
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			rejectBareDuration,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// rejectBareDuration refuses numbers for duration fields. Weak typing would
// otherwise read "duration: 5" as 5ns.
func rejectBareDuration(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil, fmt.Errorf("duration %v has no unit (write %vs or %vms)", data, data, data)
	}
	return data, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Word != "" && c.WordFile != "" {
		return errors.New("word and word_file are mutually exclusive")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	for i, p := range c.Forest {
		if p.Word == "" {
			return fmt.Errorf("forest[%d]: missing word", i)
		}
		if p.Delay < 0 {
			return fmt.Errorf("forest[%d]: negative delay %v", i, p.Delay)
		}
	}
	return nil
}

// ResolveWord returns the configured word, reading WordFile when set.
func (c Config) ResolveWord() (string, error) {
	if c.WordFile == "" {
		return c.Word, nil
	}
	data, err := os.ReadFile(c.WordFile)
	if err != nil {
		return "", fmt.Errorf("read word file: %w", err)
	}
	return string(data), nil
}
