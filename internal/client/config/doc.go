// Package config loads runtime configuration for the NexaBoard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory plus NEXABOARD_* environment
//     variables (see parseEnv).
//  3. Optional JSON file selected with -c / -config (see parseJSON).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a / --api string    base URL of the NexaBoard REST API
//	-t / --timeout int   per-request timeout (seconds)
//	-d / --data string   path of the local session database
//
// # JSON schema
//
// Durations are timex.Duration values, i.e. "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "data_file": "nexaboard.db",
//	  "request_timeout": "10s",
//	  "remember_for": "720h",
//	  "log_file": "nexaboard.log",
//	  "log_level": "info"
//	}
package config
