package config

import "time"

// Application constants
const (
	AppName    = "Sales Pulse"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. SALES_SERVER_PORT
	EnvPrefix = "SALES"

	// DefaultSourceURL is the CSV export of the published sales sheet
	DefaultSourceURL = "https://docs.google.com/spreadsheets/d/1RrgLJ5nfgdJ2AzKRaDhOqeIcsLBO0G1W9g7Lj0Z0W5Q/gviz/tq?tqx=out:csv"

	// Source kinds
	SourceCSV    = "csv"
	SourceSheets = "sheets"
	SourceFile   = "file"

	// Network
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRetryMin    = 500 * time.Millisecond
	DefaultRetryMax    = 10 * time.Second
	DefaultMaxRetries  = 3

	// Cache
	DataCacheDuration = 15 * time.Minute

	// Chart sizes
	ChartWidth       = 800
	ChartHeight      = 600
	GroupChartWidth  = 600
	GroupChartHeight = 300

	DefaultOutputDir = "out"
	DefaultLogFile   = "logs/salespulse.log"
)
