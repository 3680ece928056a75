// Package config loads the launcher contract for the map generator script.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultInterpreter = "python3"
	defaultScript      = "app.py"
	defaultOutputDir   = "maps"
	defaultBaseName    = "filtered_map"
)

// Config describes how the generator is launched and where it writes.
type Config struct {
	Interpreter     string   `yaml:"interpreter"`
	Script          string   `yaml:"script"`
	OutputDir       string   `yaml:"output_dir"`
	DefaultBaseName string   `yaml:"default_base_name"`
	InputExtensions []string `yaml:"input_extensions"`
	OpenMap         *bool    `yaml:"open_map"`
}

// Default returns the contract the bundled app.py expects.
func Default() Config {
	open := true
	return Config{
		Interpreter:     defaultInterpreter,
		Script:          defaultScript,
		OutputDir:       defaultOutputDir,
		DefaultBaseName: defaultBaseName,
		InputExtensions: []string{".json"},
		OpenMap:         &open,
	}
}

// ShouldOpenMap reports whether the generated map is opened after a run.
func (c Config) ShouldOpenMap() bool {
	return c.OpenMap == nil || *c.OpenMap
}

// Load reads YAML config from the provided path. If the file does not exist
// or is empty, defaults are returned with no error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("empty config path")
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from --config or the GUI preference
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML, used by "tlviz config".
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (c *Config) normalize() {
	c.Interpreter = strings.TrimSpace(c.Interpreter)
	c.Script = strings.TrimSpace(c.Script)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	c.DefaultBaseName = strings.TrimSpace(c.DefaultBaseName)
	if c.DefaultBaseName == "" {
		c.DefaultBaseName = defaultBaseName
	}
	c.InputExtensions = normalizeExtensions(c.InputExtensions)
}

// Validate rejects configs that cannot launch anything.
func (c Config) Validate() error {
	if c.Interpreter == "" {
		return errors.New("invalid interpreter: must not be empty")
	}
	if c.Script == "" {
		return errors.New("invalid script: must not be empty")
	}
	if strings.ContainsAny(c.DefaultBaseName, `/\`) || strings.Contains(c.DefaultBaseName, "..") {
		return fmt.Errorf("invalid default_base_name %q: must be a plain file name", c.DefaultBaseName)
	}
	return nil
}

// ScriptPath resolves a relative script against baseDir.
func (c Config) ScriptPath(baseDir string) string {
	if filepath.IsAbs(c.Script) || baseDir == "" {
		return c.Script
	}
	return filepath.Join(baseDir, c.Script)
}

func normalizeExtensions(in []string) []string {
	if len(in) == 0 {
		return []string{".json"}
	}
	seen := make(map[string]struct{}, len(in))
	normalized := make([]string, 0, len(in))
	for _, ext := range in {
		e := strings.ToLower(strings.TrimSpace(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		normalized = append(normalized, e)
	}
	return normalized
}
