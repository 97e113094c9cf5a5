// Package config loads runtime configuration for the client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. The API_URL environment variable.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   local database path
//	-debug      debug logging
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:5000/api/v1",
//	  "request_timeout": "30s",
//	  "database_path": "/home/me/.linkedin-clone/client.db",
//	  "notification_ttl": "6s",
//	  "session_check_interval": "1m",
//	  "debug": true
//	}
package config
