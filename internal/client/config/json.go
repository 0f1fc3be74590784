package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/timeflow/internal/flagx"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals go
// through timex.Duration so they may be strings like "10s" or integer
// nanoseconds. Empty fields leave the current value alone.
type JsonConfig struct {
	StateDB       string          `json:"state_db"`
	Storage       string          `json:"storage"`
	DownloadDir   string          `json:"download_dir"`
	LogLevel      string          `json:"log_level"`
	QuoteInterval *timex.Duration `json:"quote_interval"`
	DefaultTab    string          `json:"default_tab"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.StateDB, jc.StateDB)
	overlay(&cfg.Storage, jc.Storage)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.DefaultTab, jc.DefaultTab)
	if jc.QuoteInterval != nil {
		cfg.QuoteInterval = jc.QuoteInterval.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
