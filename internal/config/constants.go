package config

import "time"

// Application constants
const (
	// Application Info
	AppName = "tradecheck"

	// EnvPrefix namespaces every environment override (TRADECHECK_*)
	EnvPrefix = "TRADECHECK"

	// ConfigFileEnv names an explicit config file location
	ConfigFileEnv = "TRADECHECK_CONFIG"

	// Import limits
	DefaultMaxFileSize      = 50 * 1024 * 1024 // 50 MiB
	DefaultSampleLines      = 5
	DefaultMaxCommentLength = 255

	// Number hints
	DefaultDecimalSeparator  = "."
	DefaultThousandSeparator = ""

	// Network Timeouts
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 2 * time.Minute

	// Rate Limiting
	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 10

	// DefaultMaxConcurrentImports bounds in-flight validations on the HTTP adapter
	DefaultMaxConcurrentImports = 4

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/tradecheck.log"

	// API Endpoints
	APIBasePath     = "/api/v1"
	ImportsEndpoint = APIBasePath + "/imports"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
	UploadFormField = "file"
	UploadBodySlack = 1 << 20 // multipart framing allowance on top of MaxFileSize
)

// DefaultAllowedExtensions are the file extensions admitted for import.
func DefaultAllowedExtensions() []string {
	return []string{".csv", ".txt"}
}

// DefaultRequiredColumns must all be present in a header row.
func DefaultRequiredColumns() []string {
	return []string{"ticket", "time", "type", "symbol", "volume", "price", "profit"}
}

// DefaultOptionalColumns are mapped when present.
func DefaultOptionalColumns() []string {
	return []string{"sl", "tp", "commission", "swap", "comment", "magic", "entry", "reason", "position_id", "order_id"}
}

// DefaultDateFormats are tried in order; the first layout that parses wins.
// Order matters for ambiguous day/month values.
func DefaultDateFormats() []string {
	return []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02 15:04:05",
		"02/01/2006 15:04:05",
		"01/02/2006 15:04:05",
		"02.01.2006 15:04:05",
		"2006-01-02T15:04:05",
		"2006.01.02 15:04:05",
	}
}
