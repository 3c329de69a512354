package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/hwkeys/internal/input/hardware"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete hwkeys configuration.
type Config struct {
	Keyboard KeyboardConfig    `toml:"keyboard"`
	DeadKeys map[string]string `toml:"dead_keys"`
	Log      LogConfig         `toml:"log"`
	Output   OutputConfig      `toml:"output"`
}

// KeyboardConfig identifies the keyboard being decoded.
type KeyboardConfig struct {
	DeviceID int `toml:"device_id"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// OutputConfig configures how decoded events are written.
type OutputConfig struct {
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DeadKeys: map[string]string{},
		Log:      LogConfig{Level: "info"},
		Output:   OutputConfig{Format: FormatText},
	}
}

// Load reads a configuration file. An empty path or a missing file
// yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML data on top of Default and validates the result.
// The source is only used in error messages.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if cfg.DeadKeys == nil {
		cfg.DeadKeys = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Setting: "log.level", Message: fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", c.Log.Level)}
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return &ValidationError{Setting: "output.format", Message: fmt.Sprintf("invalid format %q (must be text or json)", c.Output.Format)}
	}

	if c.Keyboard.DeviceID < 0 {
		return &ValidationError{Setting: "keyboard.device_id", Message: "must not be negative"}
	}

	_, err := c.DeadKeyTable()
	return err
}

// DeadKeyTable converts the dead_keys section into a translator table.
// Each key and value must be exactly one rune.
func (c *Config) DeadKeyTable() (hardware.DeadKeyTable, error) {
	table := make(hardware.DeadKeyTable, len(c.DeadKeys))
	for from, to := range c.DeadKeys {
		if utf8.RuneCountInString(from) != 1 || utf8.RuneCountInString(to) != 1 {
			return nil, &ValidationError{
				Setting: "dead_keys." + from,
				Message: fmt.Sprintf("entry %q = %q must map one rune to one rune", from, to),
			}
		}
		r, _ := utf8.DecodeRuneInString(from)
		accent, _ := utf8.DecodeRuneInString(to)
		table[r] = accent
	}
	return table, nil
}
