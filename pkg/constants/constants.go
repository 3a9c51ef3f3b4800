// Package constants provides shared constants used throughout the conductor codebase.
// This includes timeouts, API defaults and the message formats
// written back into the conductor sheet.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the sheet service
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRunTimeout bounds a complete conductor run
	DefaultRunTimeout = 10 * time.Minute
)

// FilePermissions is the default permission for created files (rw-r--r--)
const FilePermissions = 0644

// Smartsheet API defaults
const (
	// DefaultBaseURL is the Smartsheet REST API 2.0 endpoint
	DefaultBaseURL = "https://api.smartsheet.com/2.0"

	// ServiceName identifies the sheet service in API errors
	ServiceName = "smartsheet"

	// UserAgent is sent with every API request
	UserAgent = "conductor"
)

// Configuration keys shared by the CLI config loader and its tests
const (
	EnvToken          = "SMARTSHEET_TOKEN"
	EnvBaseURL        = "SMARTSHEET_BASE_URL"
	EnvConductorSheet = "CONDUCTOR_SHEET_ID"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvRunTimeout     = "RUN_TIMEOUT"
)

// Format constants
const (
	// TimeFormatPosted is the timestamp prefix of a successful post message (MM/DD HH:MM)
	TimeFormatPosted = "01/02 15:04"

	// PostedSuffix completes a successful post message
	PostedSuffix = "POSTED"

	// DefaultConfigName is the config file searched for in $HOME and the working directory
	DefaultConfigName = ".conductor"
)

// SharedWithAccount is the automation account sheets must be shared with.
// It appears in the sheet-not-found message written back to the conductor sheet.
const SharedWithAccount = "automation@dowbuilt.com"
