// Package config loads runtime configuration for the desk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://127.0.0.1:8080/api)
//	-w string   realtime channel URL (default ws://127.0.0.1:8080/ws)
//	-r int      channel reconnect interval in seconds (default 3)
//	-d string   local database path (default desk.db)
//	-m string   metrics listen address (default disabled)
//	-l string   log level (default info)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api",
//	  "channel_url": "ws://127.0.0.1:8080/ws",
//	  "reconnect_interval": "3s",
//	  "database_path": "desk.db",
//	  "metrics_addr": "127.0.0.1:9464",
//	  "log_level": "info"
//	}
package config
