package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// ConfidenceMode selects how the matcher stamps confidence on occurrences.
type ConfidenceMode string

const (
	// ConfidenceFile uses every indicator found anywhere in the file, so all
	// occurrences of a pattern in one file share a single value.
	ConfidenceFile ConfidenceMode = "file"
	// ConfidenceCumulative stamps each occurrence with the evidence seen up to
	// it in textual order, as the legacy reports did.
	ConfidenceCumulative ConfidenceMode = "cumulative"
)

// DefaultMaxFileSize mirrors the analyzer's historical 10MB limit.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// ProjectConfig holds project-level configuration loaded from
// .patternscan.yaml and PATTERNSCAN_* environment variables.
type ProjectConfig struct {
	ExcludePaths        []string       `koanf:"exclude_paths"          json:"exclude_paths,omitempty"`
	Patterns            []string       `koanf:"patterns"               json:"patterns,omitempty"`
	MaxFilesPerLanguage int            `koanf:"max_files_per_language" json:"max_files_per_language,omitempty"`
	MaxFileSize         int64          `koanf:"max_file_size"          json:"max_file_size,omitempty"`
	ConfidenceMode      ConfidenceMode `koanf:"confidence_mode"        json:"confidence_mode,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is specified:
// no excludes, no filter, no file cap.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		MaxFileSize:    DefaultMaxFileSize,
		ConfidenceMode: ConfidenceFile,
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. caps must be non-negative (0 disables the cap)
	if c.MaxFilesPerLanguage < 0 {
		return fmt.Errorf("%w: max_files_per_language must be >= 0 (got %d)", ErrInvalidConfig, c.MaxFilesPerLanguage)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must be >= 0 (got %d)", ErrInvalidConfig, c.MaxFileSize)
	}

	// 2. confidence_mode must be known or empty
	switch c.ConfidenceMode {
	case "", ConfidenceFile, ConfidenceCumulative:
	default:
		return fmt.Errorf("%w: unknown confidence_mode %q (valid: file, cumulative)", ErrInvalidConfig, c.ConfidenceMode)
	}

	// 3. pattern filter entries must not normalize to nothing
	for _, p := range c.Patterns {
		if NormalizePatternID(p) == "" {
			return fmt.Errorf("%w: empty pattern id in patterns", ErrInvalidConfig)
		}
	}

	return nil
}

// Mode returns the effective confidence mode.
func (c ProjectConfig) Mode() ConfidenceMode {
	if c.ConfidenceMode == "" {
		return ConfidenceFile
	}
	return c.ConfidenceMode
}

// PatternFilter returns the normalized set of requested pattern ids, or nil
// when every pattern is requested.
func (c ProjectConfig) PatternFilter() map[string]bool {
	if len(c.Patterns) == 0 {
		return nil
	}
	filter := make(map[string]bool, len(c.Patterns))
	for _, p := range c.Patterns {
		if id := NormalizePatternID(p); id != "" {
			filter[id] = true
		}
	}
	return filter
}

// NormalizePatternID maps user spellings such as "WorkerPool", "worker pool"
// and "worker-pool" to the catalog id "worker_pool".
func NormalizePatternID(name string) string {
	var words []string
	for _, w := range camelcase.Split(strings.TrimSpace(name)) {
		if !hasAlnum(w) {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	return strings.Join(words, "_")
}

// SplitList expands comma-separated entries, as produced by environment
// variables, into individual trimmed values.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
