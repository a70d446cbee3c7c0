// Package config loads runtime configuration for the GophVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-d string   local SQLite database file
//	-o          offline mode
//	-m string   lockout store (memory, sqlite, redis)
//	-r string   redis address
//	-s          share the lockout budget between unlock and delete
//	-b string   backup export directory
//	-l string   log level
//	-f string   log format
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "gophvault.db",
//	  "offline": false,
//	  "lockout_store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_password": "",
//	  "redis_db": 0,
//	  "redis_prefix": "gophvault:lockout:",
//	  "share_lockout": false,
//	  "max_attachment_size": 10485760,
//	  "backup_dir": "./backups",
//	  "upload_timeout": "60s",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
package config
