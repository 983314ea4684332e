// Package config loads runtime settings for the wallet CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file named by -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-d string   path of the SQLite database (":memory:" for a throwaway wallet)
//	-l string   log level: debug, info, warn or error
//	-w int      default barcode width in pixels
//	-h int      default barcode height in pixels
//
// # JSON schema
//
//	{
//	  "db_path": "wallet.db",
//	  "log_level": "info",
//	  "barcode_width": 300,
//	  "barcode_height": 300
//	}
//
// Keys missing from the file keep their default.
package config
