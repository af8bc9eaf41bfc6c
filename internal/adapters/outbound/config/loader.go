package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/patternscan/patternscan/internal/domain"
)

const (
	fileName  = ".patternscan.yaml"
	envPrefix = "PATTERNSCAN_"
)

// Loader implements domain.ConfigLoader. Values come from .patternscan.yaml
// in the project root, overridden by PATTERNSCAN_* environment variables.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load returns DefaultConfig overlaid with the project file and environment.
// A missing file is not an error.
func (l *Loader) Load(projectPath string) (domain.ProjectConfig, error) {
	k := koanf.New(".")

	content, err := os.ReadFile(filepath.Join(projectPath, fileName))
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return domain.ProjectConfig{}, fmt.Errorf("reading %s: %w", fileName, err)
	}

	// PATTERNSCAN_MAX_FILE_SIZE -> max_file_size
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := domain.DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ExcludePaths = domain.SplitList(cfg.ExcludePaths)
	cfg.Patterns = domain.SplitList(cfg.Patterns)

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}
