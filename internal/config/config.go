package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teemow/inboxtriage/internal/triage"
)

// Snapshot source names.
const (
	SourceGmail = "gmail"
	SourceFile  = "file"
	SourceDemo  = "demo"
)

// Defaults.
const (
	DefaultAccount     = "default"
	DefaultMaxMessages = 500
	DefaultSnapshotTTL = 5 * time.Minute
)

// ErrUnknownCategory is returned when a category rule names a category
// that does not exist.
var ErrUnknownCategory = errors.New("unknown category")

// CategoryConfig overrides the keywords of one category. The order of
// entries in Config.Categories is the classification precedence.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Config holds the triage settings.
type Config struct {
	// DemoMode forces the demo fixtures everywhere.
	DemoMode bool `yaml:"demo_mode"`

	// Source is one of gmail, file or demo.
	Source       string `yaml:"source"`
	SnapshotFile string `yaml:"snapshot_file"`
	Account      string `yaml:"account"`

	// MaxMessages caps the number of messages fetched from Gmail.
	MaxMessages int64 `yaml:"max_messages"`

	// SnapshotTTL is how long the MCP server reuses a fetched snapshot.
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`

	TrustedSenders []string         `yaml:"trusted_senders"`
	Categories     []CategoryConfig `yaml:"categories"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source:      SourceGmail,
		Account:     DefaultAccount,
		MaxMessages: DefaultMaxMessages,
		SnapshotTTL: DefaultSnapshotTTL,
	}
}

// Load reads the file at path (if any) on top of the defaults, applies
// the environment and validates the result.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further
// overrides (command-line flags) before calling Validate.
func Read(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from TRIAGE_* variables. Invalid values are
// logged and ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("TRIAGE_DEMO_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DemoMode = b
		} else {
			slog.Warn("ignoring invalid TRIAGE_DEMO_MODE value", "value", v)
		}
	}
	if v := getenv("TRIAGE_SOURCE"); v != "" {
		c.Source = strings.ToLower(v)
	}
	if v := getenv("TRIAGE_SNAPSHOT_FILE"); v != "" {
		c.SnapshotFile = v
	}
	if v := getenv("TRIAGE_ACCOUNT"); v != "" {
		c.Account = v
	}
	if v := getenv("TRIAGE_MAX_MESSAGES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxMessages = n
		} else {
			slog.Warn("ignoring invalid TRIAGE_MAX_MESSAGES value", "value", v)
		}
	}
	if v := getenv("TRIAGE_SNAPSHOT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SnapshotTTL = d
		} else {
			slog.Warn("ignoring invalid TRIAGE_SNAPSHOT_TTL value", "value", v)
		}
	}
	if v := getenv("TRIAGE_TRUSTED_SENDERS"); v != "" {
		c.TrustedSenders = ParseList(v)
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.EffectiveSource() {
	case SourceGmail, SourceDemo:
	case SourceFile:
		if c.SnapshotFile == "" {
			return fmt.Errorf("source %q requires snapshot_file", SourceFile)
		}
	default:
		return fmt.Errorf("invalid source %q (expected gmail, file or demo)", c.Source)
	}
	if c.Account == "" {
		return fmt.Errorf("account must not be empty")
	}
	if c.MaxMessages <= 0 {
		return fmt.Errorf("max_messages must be positive, got %d", c.MaxMessages)
	}
	if c.SnapshotTTL < 0 {
		return fmt.Errorf("snapshot_ttl must not be negative, got %s", c.SnapshotTTL)
	}
	_, err := c.CategoryRules()
	return err
}

// EffectiveSource returns the source to use; demo mode always wins.
func (c *Config) EffectiveSource() string {
	if c.DemoMode {
		return SourceDemo
	}
	return c.Source
}

// CategoryRules converts the category overrides into classifier rules.
// It returns nil when no overrides are configured.
func (c *Config) CategoryRules() ([]triage.CategoryRule, error) {
	if len(c.Categories) == 0 {
		return nil, nil
	}

	seen := make(map[triage.Category]bool, len(c.Categories))
	rules := make([]triage.CategoryRule, 0, len(c.Categories))
	for _, cc := range c.Categories {
		cat, err := triage.ParseCategory(cc.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cc.Name)
		}
		if seen[cat] {
			return nil, fmt.Errorf("category %q configured twice", cat)
		}
		seen[cat] = true
		rules = append(rules, triage.CategoryRule{Category: cat, Keywords: cc.Keywords})
	}
	return rules, nil
}

// Classifier builds the classifier for this configuration.
func (c *Config) Classifier() (*triage.Classifier, error) {
	rules, err := c.CategoryRules()
	if err != nil {
		return nil, err
	}
	if rules == nil {
		return triage.DefaultClassifier(), nil
	}
	return triage.NewClassifier(rules), nil
}

// ParseList splits a comma-separated list, dropping empty entries.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
