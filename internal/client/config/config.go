package config

import "time"

// Config holds runtime settings for the desk client.
//
// Fields:
//   - APIBaseURL: base URL every API path is appended to.
//   - ChannelURL: ws:// or wss:// address of the realtime channel.
//   - ReconnectInterval: fixed delay between a channel close and the next dial.
//   - DatabasePath: local SQLite file holding the identity hint and cookies.
//   - MetricsAddr: listen address for the Prometheus endpoint; empty disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL        string
	ChannelURL        string
	ReconnectInterval time.Duration
	DatabasePath      string
	MetricsAddr       string
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.ChannelURL = "ws://127.0.0.1:8080/ws"
	c.ReconnectInterval = 3 * time.Second
	c.DatabasePath = "desk.db"
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
