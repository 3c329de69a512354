package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if cfg.Keyboard.DeviceID != 0 {
		t.Errorf("Keyboard.DeviceID = %d, want 0", cfg.Keyboard.DeviceID)
	}
}

func TestParse(t *testing.T) {
	data := `
[keyboard]
device_id = 3

[dead_keys]
"´" = "\u0301"
"^" = "\u0302"

[log]
level = "debug"

[output]
format = "json"
`
	cfg, err := Parse("test.toml", []byte(data))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if cfg.Keyboard.DeviceID != 3 {
		t.Errorf("DeviceID = %d, want 3", cfg.Keyboard.DeviceID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}

	table, err := cfg.DeadKeyTable()
	if err != nil {
		t.Fatalf("DeadKeyTable error = %v", err)
	}
	if table['´'] != 0x0301 || table['^'] != 0x0302 {
		t.Errorf("DeadKeyTable = %v", table)
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse("partial.toml", []byte("[keyboard]\ndevice_id = 9\n"))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Output.Format != FormatText {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.DeadKeys == nil {
		t.Error("DeadKeys should not be nil")
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("bad.toml", []byte("[keyboard\ndevice_id = 1\n"))
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if perr.Path != "bad.toml" {
		t.Errorf("Path = %q, want bad.toml", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("Line should be set from the decoder position")
	}
	if !strings.Contains(err.Error(), "bad.toml") {
		t.Errorf("Error() = %q, should name the file", err.Error())
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		setting string
	}{
		{"level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"format", "[output]\nformat = \"xml\"\n", "output.format"},
		{"device", "[keyboard]\ndevice_id = -1\n", "keyboard.device_id"},
		{"dead key source", "[dead_keys]\n\"ab\" = \"\\u0301\"\n", "dead_keys.ab"},
		{"dead key accent", "[dead_keys]\n\"'\" = \"\"\n", "dead_keys.'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("v.toml", []byte(tt.data))
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("error = %v, want ErrValidationFailed", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %T, want *ValidationError", err)
			}
			if verr.Setting != tt.setting {
				t.Errorf("Setting = %q, want %q", verr.Setting, tt.setting)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hwkeys.toml")
	if err := os.WriteFile(path, []byte("[keyboard]\ndevice_id = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Keyboard.DeviceID != 5 {
		t.Errorf("DeviceID = %d, want 5", cfg.Keyboard.DeviceID)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}
