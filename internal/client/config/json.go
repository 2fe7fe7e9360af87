package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/flagx"
	"github.com/dmitrijs2005/clinicdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// use timex.Duration so they may be written as "3s" or as nanoseconds.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	ChannelURL        string         `json:"channel_url"`
	ReconnectInterval timex.Duration `json:"reconnect_interval"`
	DatabasePath      string         `json:"database_path"`
	MetricsAddr       string         `json:"metrics_addr"`
	LogLevel          string         `json:"log_level"`
}

// parseJson overlays Config with the values present in the JSON file named
// by -c or -config. Absent keys keep their current value. Panics on read or
// unmarshal errors.
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

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.ChannelURL, jc.ChannelURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.ReconnectInterval.Duration > 0 {
		cfg.ReconnectInterval = jc.ReconnectInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
