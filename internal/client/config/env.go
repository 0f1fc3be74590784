package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "TIMEFLOW_"

// parseEnv overlays Config with TIMEFLOW_* variables. A dotenv file named by
// -e/-env must exist; the implicit .env is optional. Variables already set
// in the process environment win over dotenv values.
func parseEnv(cfg *Config) {
	if file := flagx.EnvFileFlags(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.StateDB, "STATE_DB")
	setString(&cfg.Storage, "STORAGE")
	setString(&cfg.DownloadDir, "DOWNLOAD_DIR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.DefaultTab, "DEFAULT_TAB")

	if v, ok := os.LookupEnv(envPrefix + "QUOTE_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.QuoteInterval = d
	}
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
		*dst = v
	}
}
