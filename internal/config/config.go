// Package config loads optional project settings from an asp2cs.toml
// manifest discovered by walking up from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the loader looks for.
const ManifestName = "asp2cs.toml"

// Manifest bundles a parsed config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the asp2cs.toml layout. Every field is optional; zero
// values mean "use the built-in default".
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	AI      AIConfig      `toml:"ai"`
}

// ConvertConfig holds rule-engine output settings.
type ConvertConfig struct {
	Usings    bool   `toml:"using"`
	Namespace string `toml:"namespace"`
	OutDir    string `toml:"out_dir"`
}

// AIConfig holds Groq client settings. The API key itself never lives in
// the manifest; APIKeyEnv names the environment variable carrying it.
type AIConfig struct {
	Model          string `toml:"model"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	APIKeyEnv      string `toml:"api_key_env"`
}

// Find walks up from startDir looking for an asp2cs.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and parses the nearest manifest. The second return value
// reports whether one was found; a missing manifest is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parseFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func parseFile(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if len(meta.Undecoded()) > 0 {
		keys := make([]string, 0, len(meta.Undecoded()))
		for _, k := range meta.Undecoded() {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.AI.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("%s: [ai].timeout_seconds must not be negative", path)
	}
	return cfg, nil
}
