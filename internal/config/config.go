package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Render    RenderConfig    `yaml:"render" envconfig:"RENDER"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"LISTEN_HOST"`
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration. File output is rotated.
type LoggingConfig struct {
	Level      string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output     string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath   string `yaml:"file_path" envconfig:"FILE_PATH"`
	MaxSizeMB  int    `yaml:"max_size_mb" envconfig:"MAX_SIZE_MB" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" envconfig:"MAX_BACKUPS" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" envconfig:"MAX_AGE_DAYS" validate:"gte=0"`
	Compress   bool   `yaml:"compress" envconfig:"COMPRESS"`
}

// SourceConfig selects and parameterizes the sales data source
type SourceConfig struct {
	Kind string `yaml:"kind" envconfig:"KIND" validate:"oneof=csv sheets file"`

	// csv
	URL string `yaml:"url" envconfig:"URL" validate:"omitempty,url"`

	// sheets
	SheetID         string `yaml:"sheet_id" envconfig:"SHEET_ID"`
	Range           string `yaml:"range" envconfig:"RANGE"`
	APIKey          string `yaml:"api_key" envconfig:"API_KEY"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`

	// file
	Path  string `yaml:"path" envconfig:"FILE"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"`

	Timeout    time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	MaxRetries int           `yaml:"max_retries" envconfig:"MAX_RETRIES" validate:"gte=0,lte=10"`
	RetryMin   time.Duration `yaml:"retry_min" envconfig:"RETRY_MIN"`
	RetryMax   time.Duration `yaml:"retry_max" envconfig:"RETRY_MAX"`
	CacheTTL   time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" validate:"gte=0"`
}

// RenderConfig controls labels and chart layout
type RenderConfig struct {
	Locale      string  `yaml:"locale" envconfig:"LOCALE" validate:"oneof=vi en"`
	Timezone    string  `yaml:"timezone" envconfig:"TIMEZONE"`
	PageTitle   string  `yaml:"page_title" envconfig:"PAGE_TITLE"`
	Width       float64 `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height      float64 `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"`
	GroupWidth  float64 `yaml:"group_width" envconfig:"GROUP_WIDTH" validate:"gt=0"`
	GroupHeight float64 `yaml:"group_height" envconfig:"GROUP_HEIGHT" validate:"gt=0"`
	OutputDir   string  `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	CSVWithBOM  bool    `yaml:"csv_with_bom" envconfig:"CSV_WITH_BOM"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	ServiceVersion string `yaml:"service_version" envconfig:"SERVICE_VERSION"`
	Environment    string `yaml:"environment" envconfig:"ENVIRONMENT"`
	TracesExporter string `yaml:"traces_exporter" envconfig:"TRACES_EXPORTER" validate:"oneof=none stdout"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty path searches the
// usual locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys absent from the file
// keep their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and the settings each source kind needs
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Source.Kind {
	case SourceCSV:
		if c.Source.URL == "" {
			return fmt.Errorf("source url is required for the %s source", SourceCSV)
		}
	case SourceSheets:
		if c.Source.SheetID == "" {
			return fmt.Errorf("source sheet_id is required for the %s source", SourceSheets)
		}
		if c.Source.APIKey == "" && c.Source.CredentialsFile == "" {
			return fmt.Errorf("source api_key or credentials_file is required for the %s source", SourceSheets)
		}
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source path is required for the %s source", SourceFile)
		}
	}

	if c.Source.RetryMax > 0 && c.Source.RetryMin > c.Source.RetryMax {
		return fmt.Errorf("source retry_min %s exceeds retry_max %s", c.Source.RetryMin, c.Source.RetryMax)
	}

	if c.Render.Timezone != "" {
		if _, err := time.LoadLocation(c.Render.Timezone); err != nil {
			return fmt.Errorf("invalid render timezone %q: %w", c.Render.Timezone, err)
		}
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// Location returns the configured time zone, or time.Local
func (c *Config) Location() *time.Location {
	if c.Render.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Render.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Output:     "console",
			FilePath:   DefaultLogFile,
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Source: SourceConfig{
			Kind:       SourceCSV,
			URL:        DefaultSourceURL,
			Range:      "A:Z",
			Timeout:    DefaultHTTPTimeout,
			MaxRetries: DefaultMaxRetries,
			RetryMin:   DefaultRetryMin,
			RetryMax:   DefaultRetryMax,
			CacheTTL:   DataCacheDuration,
		},
		Render: RenderConfig{
			Locale:      "vi",
			PageTitle:   AppName,
			Width:       ChartWidth,
			Height:      ChartHeight,
			GroupWidth:  GroupChartWidth,
			GroupHeight: GroupChartHeight,
			OutputDir:   DefaultOutputDir,
			CSVWithBOM:  true,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "salespulse",
			ServiceVersion: AppVersion,
			Environment:    "development",
			TracesExporter: "none",
			MetricsEnabled: true,
		},
	}
}
