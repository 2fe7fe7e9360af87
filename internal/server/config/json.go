package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/flagx"
	"github.com/dmitrijs2005/clinicdesk/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for token lifetimes, which allows parsing both
// string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	ListenAddr                   string         `json:"listen_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	LogLevel                     string         `json:"log_level"`
	SecureCookie                 *bool          `json:"secure_cookie"`
	TokenPurgeInterval           timex.Duration `json:"token_purge_interval"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Zero values in the file leave the current value in
// place. Panics on read or unmarshal errors.
func parseJson(config *Config) {
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

	if jc.ListenAddr != "" {
		config.ListenAddr = jc.ListenAddr
	}
	if jc.DatabaseDSN != "" {
		config.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		config.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = jc.RefreshTokenValidityDuration.Duration
	}
	if jc.LogLevel != "" {
		config.LogLevel = jc.LogLevel
	}
	if jc.SecureCookie != nil {
		config.SecureCookie = *jc.SecureCookie
	}
	if jc.TokenPurgeInterval.Duration > 0 {
		config.TokenPurgeInterval = jc.TokenPurgeInterval.Duration
	}
}
