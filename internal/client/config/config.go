package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/logging"
	"golang.org/x/term"
)

const (
	StorageAuto  = "auto"
	StorageFile  = "file"
	StorageLocal = "local"
)

// Tabs lists the shell tabs in display order.
var Tabs = []string{"plans", "calendar", "diary"}

var ErrInvalidConfig = errors.New("invalid configuration")

var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// Config holds runtime settings for the TimeFlow CLI.
type Config struct {
	StateDB       string
	Storage       string
	DownloadDir   string
	LogLevel      string
	QuoteInterval time.Duration
	DefaultTab    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StateDB = defaultStateDB()
	c.Storage = StorageAuto
	c.DownloadDir = "."
	c.LogLevel = "warn"
	c.QuoteInterval = 10 * time.Second
	c.DefaultTab = "plans"
}

func defaultStateDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "timeflow.db"
	}
	return filepath.Join(dir, "timeflow", "state.db")
}

// LoadConfig applies defaults, then the environment, JSON and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	if c.StateDB == "" {
		errs = append(errs, errors.New("state database path is empty"))
	}
	if !slices.Contains([]string{StorageAuto, StorageFile, StorageLocal}, c.Storage) {
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}
	if !slices.Contains(Tabs, c.DefaultTab) {
		errs = append(errs, fmt.Errorf("unknown tab %q", c.DefaultTab))
	}
	if c.QuoteInterval <= 0 {
		errs = append(errs, fmt.Errorf("quote interval must be positive, got %s", c.QuoteInterval))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// EffectiveStorage resolves "auto": an interactive terminal can answer
// path prompts, so it gets data files; anything else keeps the diary in the
// local store.
func (c *Config) EffectiveStorage() string {
	if c.Storage != StorageAuto {
		return c.Storage
	}
	if isTerminal() {
		return StorageFile
	}
	return StorageLocal
}
