// Package config loads runtime configuration for the TimeFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables TIMEFLOW_*, optionally read from a dotenv file
//     given with -e or -env (a .env in the working directory is picked up
//     when present).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path of the local state database
//	-s string   diary storage: auto, file or local
//	-o string   directory offered for exports
//	-l string   log level: debug, info, warn, error
//	-q duration motivational quote rotation interval
//	-t string   tab shown at start-up: plans, calendar or diary
//
// # JSON schema
//
//	{
//	  "state_db": "/home/me/.config/timeflow/state.db",
//	  "storage": "auto",
//	  "download_dir": "/home/me/Documents",
//	  "log_level": "warn",
//	  "quote_interval": "10s",
//	  "default_tab": "plans"
//	}
//
// Loaders panic on unreadable sources, like a bad flag value; Validate
// reports values that parse but make no sense.
package config
