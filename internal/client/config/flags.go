package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/timeflow/internal/flagx"
)

// parseFlags populates Config from command-line flags. os.Args is filtered
// with flagx.FilterArgs first so flags owned by other loaders (-c, -e) do
// not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-o", "-l", "-q", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StateDB, "d", cfg.StateDB, "path of the local state database")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "diary storage: auto, file or local")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "directory offered for exports")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.QuoteInterval, "q", cfg.QuoteInterval, "quote rotation interval")
	fs.StringVar(&cfg.DefaultTab, "t", cfg.DefaultTab, "tab shown at start-up")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
