package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cxxbind/internal/errs"
)

// FileNames are looked up, in order, when no config is given.
var FileNames = []string{"cxxbind.toml", "cxxbind.yaml", "cxxbind.yml"}

// Find walks up from startDir to the first directory holding one of
// FileNames.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a TOML or YAML config, by extension, and resolves its paths.
// It does not check them; see Preflight.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read config")
	}
	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = decodeYAML(path, data)
	default:
		cfg, err = decodeTOML(path, data)
	}
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.resolvePaths()
	return cfg, nil
}

func decodeTOML(path string, data []byte) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, new(errs.ConfigurationError).Add("%s: failed to parse TOML: %v", path, err)
	}
	var problems *errs.ConfigurationError
	if !meta.IsDefined("module") {
		problems = problems.Add("%s: missing [module]", path)
	}
	for _, key := range meta.Undecoded() {
		problems = problems.Add("%s: unknown key %s", path, key)
	}
	if err := problems.OrNil(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeYAML(path string, data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, new(errs.ConfigurationError).Add("%s: failed to parse YAML: %v", path, err)
	}
	return &cfg, nil
}

// Discover loads the config found by Find from startDir.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.WithHint(
			new(errs.ConfigurationError).Add("no %s found", FileNames[0]),
			"pass a config file or run from a directory that has one",
		)
	}
	return Load(path)
}
