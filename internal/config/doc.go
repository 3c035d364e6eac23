// Package config provides centralized configuration management for tradecheck.
// It layers defaults, an optional YAML file and environment variables into a
// single validated value.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// The file is taken from TRADECHECK_CONFIG when set, otherwise from
// config.yaml or configs/config.yaml in the working directory.
//
// # Environment Variables
//
// All environment variables follow the pattern TRADECHECK_<SECTION>_<FIELD>:
//
//	TRADECHECK_SERVER_PORT=8080
//	TRADECHECK_LOGGING_LEVEL=debug
//	TRADECHECK_IMPORT_MAX_FILE_SIZE=10485760
//	TRADECHECK_IMPORT_ALLOWED_EXTENSIONS=.csv,.txt
//	TRADECHECK_IMPORT_DECIMAL_SEPARATOR=,
//
// List values are comma separated. Date layouts contain no commas, so
// TRADECHECK_IMPORT_DATE_FORMATS can be set the same way.
//
// # Import Settings
//
// ImportConfig is the value handed to the validation engine. The engine keeps
// its own copy; changing the loaded Config afterwards has no effect on an
// engine that was already constructed.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := tradeimport.New(cfg.Import, logger)
//
// # Testing
//
// Use config.Default() or config.DefaultImport() for a configuration that
// needs no environment or files.
package config
