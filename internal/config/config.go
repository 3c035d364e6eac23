package config

import (
	"fmt"
	"os"
	"strings"
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
	Import    ImportConfig    `yaml:"import" envconfig:"IMPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port                 int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout          time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout         time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout          time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gte=0"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	RequestTimeout       time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
	MaxConcurrentImports int64         `yaml:"max_concurrent_imports" envconfig:"MAX_CONCURRENT_IMPORTS" validate:"min=1"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ImportConfig drives one validation run. It is copied into the engine at
// construction and never mutated afterwards.
type ImportConfig struct {
	MaxFileSize       int64    `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE" validate:"gt=0"`
	AllowedExtensions []string `yaml:"allowed_extensions" envconfig:"ALLOWED_EXTENSIONS" validate:"min=1,dive,required"`
	RequiredColumns   []string `yaml:"required_columns" envconfig:"REQUIRED_COLUMNS" validate:"min=1,dive,required"`
	OptionalColumns   []string `yaml:"optional_columns" envconfig:"OPTIONAL_COLUMNS" validate:"dive,required"`
	DateFormats       []string `yaml:"date_formats" envconfig:"DATE_FORMATS" validate:"min=1,dive,required"`
	DecimalSeparator  string   `yaml:"decimal_separator" envconfig:"DECIMAL_SEPARATOR" validate:"len=1"`
	ThousandSeparator string   `yaml:"thousand_separator" envconfig:"THOUSAND_SEPARATOR" validate:"max=1"`
	TrimValues        bool     `yaml:"trim_values" envconfig:"TRIM_VALUES"`
	SkipEmptyLines    bool     `yaml:"skip_empty_lines" envconfig:"SKIP_EMPTY_LINES"`
	SampleLines       int      `yaml:"sample_lines" envconfig:"SAMPLE_LINES" validate:"min=1,max=100"`
	MaxCommentLength  int      `yaml:"max_comment_length" envconfig:"MAX_COMMENT_LENGTH" validate:"min=1"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Load loads configuration from the default file locations and the environment
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile layers configuration: defaults, then the YAML file at path (if
// any), then TRADECHECK_* environment variables. The result is validated.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no default tags, so only variables that are actually set
	// overwrite what the defaults and the file provided.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML file values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize canonicalizes names that are compared case-insensitively
func (c *Config) normalize() {
	for i, ext := range c.Import.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Import.AllowedExtensions[i] = ext
	}
	c.Import.RequiredColumns = NormalizeColumns(c.Import.RequiredColumns)
	c.Import.OptionalColumns = NormalizeColumns(c.Import.OptionalColumns)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// NormalizeColumns trims and lower-cases column names for header matching
func NormalizeColumns(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, strings.ToLower(strings.TrimSpace(col)))
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return c.Import.Validate()
}

// Validate checks the cross-field rules struct tags cannot express
func (ic ImportConfig) Validate() error {
	if err := validator.New().Struct(ic); err != nil {
		return err
	}

	if ic.ThousandSeparator != "" && ic.ThousandSeparator == ic.DecimalSeparator {
		return fmt.Errorf("decimal and thousand separators must differ: %q", ic.DecimalSeparator)
	}

	seen := make(map[string]bool, len(ic.RequiredColumns)+len(ic.OptionalColumns))
	for _, col := range append(append([]string{}, ic.RequiredColumns...), ic.OptionalColumns...) {
		if seen[col] {
			return fmt.Errorf("column %q is listed more than once", col)
		}
		seen[col] = true
	}

	if !seen["ticket"] || !seen["time"] {
		return fmt.Errorf("column lists must include ticket and time")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
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
			Port:                 8080,
			ReadTimeout:          DefaultReadTimeout,
			WriteTimeout:         DefaultWriteTimeout,
			IdleTimeout:          DefaultIdleTimeout,
			ShutdownTimeout:      DefaultShutdownTimeout,
			RequestTimeout:       DefaultRequestTimeout,
			MaxConcurrentImports: DefaultMaxConcurrentImports,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Import: DefaultImport(),
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}

// DefaultImport returns the engine defaults
func DefaultImport() ImportConfig {
	return ImportConfig{
		MaxFileSize:       DefaultMaxFileSize,
		AllowedExtensions: DefaultAllowedExtensions(),
		RequiredColumns:   DefaultRequiredColumns(),
		OptionalColumns:   DefaultOptionalColumns(),
		DateFormats:       DefaultDateFormats(),
		DecimalSeparator:  DefaultDecimalSeparator,
		ThousandSeparator: DefaultThousandSeparator,
		TrimValues:        true,
		SkipEmptyLines:    true,
		SampleLines:       DefaultSampleLines,
		MaxCommentLength:  DefaultMaxCommentLength,
	}
}
