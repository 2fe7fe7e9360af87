package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base URL
//	-w string   channel URL
//	-r int      channel reconnect interval (seconds)
//	-d string   local database path
//	-m string   metrics listen address
//	-l string   log level
//
// Only these flags are looked at, so the config flags (-c/-config) pass
// through untouched.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.ChannelURL, "w", cfg.ChannelURL, "realtime channel URL")
	reconnect := fs.Int("r", int(cfg.ReconnectInterval.Seconds()), "channel reconnect interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address, empty to disable")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	// a sub-second interval from JSON survives unless -r is given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "r" {
			cfg.ReconnectInterval = time.Duration(*reconnect) * time.Second
		}
	})
}
