// Package config loads runtime configuration for the wghub shell and daemon.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. WGHUB_* variables from an optional dotenv file (-e or -env) and the
//     process environment. The process environment wins over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the backend gRPC gateway
//	-d string     path of the local SQLite cache
//	-l string     log file used by the interactive shell
//	-v string     log level (debug, info, warn, error)
//	-p string     listen address of the push relay endpoint
//	-s string     cron spec of the reconciliation sweep
//	-t duration   per-request gateway timeout
//	-k string     push token registered for this device
//
// # JSON schema
//
//	{
//	  "gateway_addr": "127.0.0.1:50051",
//	  "database_path": "wghub.db",
//	  "log_file": "wghub.log",
//	  "log_level": "info",
//	  "push_listen_addr": "127.0.0.1:8085",
//	  "sweep_schedule": "@every 15m",
//	  "request_timeout": "10s",
//	  "push_token": ""
//	}
//
// request_timeout accepts a duration string or integer nanoseconds.
package config
