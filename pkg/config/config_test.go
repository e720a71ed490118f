package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Solver.MaxScore != 9999 || cfg.Solver.ScoreThreshold != 1100 || cfg.Solver.ResultLimit != 5 {
		t.Errorf("unexpected solver defaults: %+v", cfg.Solver)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(*Config)
		source      string
	}{
		{"negative max score", func(c *Config) { c.Solver.MaxScore = -1 }, "solver.max_score"},
		{"negative threshold", func(c *Config) { c.Solver.ScoreThreshold = -5 }, "solver.score_threshold"},
		{"negative steps", func(c *Config) { c.Solver.MaxSteps = -1 }, "solver.max_steps"},
		{"zero chunk size", func(c *Config) { c.Dict.ChunkSize = 0 }, "dict.chunk_size"},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) || ce.Source != tc.source {
				t.Errorf("expected source %q, got %v", tc.source, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
[solver]
score_threshold = 500
separator = " "

[output]
format = "msgpack"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Solver.ScoreThreshold != 500 {
		t.Errorf("expected threshold 500, got %d", cfg.Solver.ScoreThreshold)
	}
	if cfg.Solver.Separator != " " {
		t.Errorf("expected space separator, got %q", cfg.Solver.Separator)
	}
	if cfg.Solver.MaxScore != 9999 {
		t.Errorf("unset keys should keep defaults, got max_score=%d", cfg.Solver.MaxScore)
	}
	if cfg.Output.Format != FormatMsgpack {
		t.Errorf("expected msgpack format, got %q", cfg.Output.Format)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_score has the wrong type, the rest must still be picked up
	path := writeFile(t, "config.toml", `
[solver]
max_score = "lots"
result_limit = 3

[dict]
path = "words.txt"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Solver.MaxScore != 9999 {
		t.Errorf("bad value should fall back to default, got %d", cfg.Solver.MaxScore)
	}
	if cfg.Solver.ResultLimit != 3 {
		t.Errorf("expected result_limit 3, got %d", cfg.Solver.ResultLimit)
	}
	if cfg.Dict.Path != "words.txt" {
		t.Errorf("expected dict path words.txt, got %q", cfg.Dict.Path)
	}
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("reloaded config differs: %+v vs %+v", reloaded, cfg)
	}
}
