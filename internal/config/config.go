// Package config loads docweave.toml and merges it with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"docweave/internal/docgen"
	"docweave/internal/driver"
	"docweave/internal/trace"
)

// FileName is the configuration file looked up from the input directory upwards.
const FileName = "docweave.toml"

// EnvTraceLevel is the only environment variable docweave reads.
const EnvTraceLevel = "DOCWEAVE_TRACE_LEVEL"

// Config mirrors docweave.toml.
type Config struct {
	Style       string `toml:"style" validate:"omitempty,oneof=google numpy sphinx rest"`
	Summary     string `toml:"summary" validate:"omitempty,oneof=generic humanized"`
	Quote       string `toml:"quote" validate:"omitempty,docquote"`
	SkipPrivate bool   `toml:"skip_private"`
	SkipDunder  bool   `toml:"skip_dunder"`

	Batch BatchConfig `toml:"batch"`

	// Path is the file the values came from; empty for defaults.
	Path string `toml:"-"`
}

// BatchConfig holds the [batch] table.
type BatchConfig struct {
	Jobs  int    `toml:"jobs" validate:"gte=0"`
	Cache bool   `toml:"cache"`
	UI    UIMode `toml:"ui" validate:"omitempty,oneof=auto on off"`
}

// UIMode selects the batch progress display.
type UIMode string

const (
	UIAuto UIMode = "auto" // bubbletea only when stdout is a terminal
	UIOn   UIMode = "on"
	UIOff  UIMode = "off"
)

// ParseUIMode accepts auto|on|off in any case; empty means auto.
func ParseUIMode(value string) (UIMode, error) {
	switch m := UIMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return UIAuto, nil
	case UIAuto, UIOn, UIOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid ui mode %q (expected auto|on|off)", value)
}

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
		// кавычки в теге oneof не выразить, поэтому отдельное правило
		_ = validatorInstance.RegisterValidation("docquote", func(fl validator.FieldLevel) bool {
			q := fl.Field().String()
			return q == docgen.DefaultQuote || q == docgen.AltQuote
		})
	})
	return validatorInstance
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Style:   docgen.StyleGoogle.String(),
		Summary: docgen.SummaryGeneric.String(),
		Quote:   docgen.DefaultQuote,
		Batch:   BatchConfig{UI: UIAuto},
	}
}

// Find walks up from startDir looking for docweave.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load decodes and validates path. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest docweave.toml
// above startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field values.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("invalid %s %q (rule %s)", strings.ToLower(fe.Field()), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// DocOptions converts the generator settings.
func (c *Config) DocOptions() (docgen.Options, error) {
	style, err := docgen.ParseStyle(c.Style)
	if err != nil {
		return docgen.Options{}, err
	}
	summary, err := docgen.ParseSummaryMode(c.Summary)
	if err != nil {
		return docgen.Options{}, err
	}
	return docgen.Options{Style: style, Summary: summary, Quote: c.Quote}, nil
}

// ScanOptions converts the scanner settings.
func (c *Config) ScanOptions() driver.ScanOptions {
	return driver.ScanOptions{SkipPrivate: c.SkipPrivate, SkipDunder: c.SkipDunder}
}

// TraceLevelFromEnv reads DOCWEAVE_TRACE_LEVEL; unset means off.
func TraceLevelFromEnv() (trace.Level, error) {
	v, ok := os.LookupEnv(EnvTraceLevel)
	if !ok {
		return trace.LevelOff, nil
	}
	lvl, err := trace.ParseLevel(v)
	if err != nil {
		return trace.LevelOff, fmt.Errorf("%s: %w", EnvTraceLevel, err)
	}
	return lvl, nil
}
