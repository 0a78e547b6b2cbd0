// Package config provides centralized configuration management for Sales Pulse.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALES_<SECTION>_<KEY>:
//
//	SALES_SERVER_PORT=8080
//	SALES_SOURCE_KIND=sheets
//	SALES_SOURCE_SHEET_ID=1RrgLJ5...
//	SALES_RENDER_LOCALE=en
//	SALES_LOGGING_LEVEL=debug
//
// # Validation
//
// Field constraints are declared as validator struct tags. Settings that
// depend on the source kind (a URL for csv, a sheet id and credentials for
// sheets, a path for file) are checked by Validate.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For testing, start from config.Default() and override fields directly.
package config
