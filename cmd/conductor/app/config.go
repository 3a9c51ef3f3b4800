package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/conductor/pkg/constants"
	"github.com/agentstation/conductor/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Smartsheet configuration
	Token            string
	ConductorSheetID int64
	BaseURL          string
	RequestTimeout   time.Duration
	RunTimeout       time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later through UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.conductor.yaml or ./.conductor.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file path.
// An explicit file that cannot be read is an error; a missing default file is not.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault(constants.EnvBaseURL, constants.DefaultBaseURL)
	v.SetDefault(constants.EnvRequestTimeout, constants.DefaultHTTPTimeout)
	v.SetDefault(constants.EnvRunTimeout, constants.DefaultRunTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "failed to read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Token:            firstString(v, constants.EnvToken, "smartsheet.token"),
		ConductorSheetID: firstInt64(v, constants.EnvConductorSheet, "conductor.sheet_id"),
		BaseURL:          firstString(v, constants.EnvBaseURL, "smartsheet.base_url"),
		RequestTimeout:   firstDuration(v, constants.EnvRequestTimeout, "smartsheet.request_timeout"),
		RunTimeout:       firstDuration(v, constants.EnvRunTimeout, "conductor.run_timeout"),

		// An empty level lets -v and -q decide.
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Validate checks the settings a run needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.NewConfigError("smartsheet", constants.EnvToken+" is required", nil)
	}
	if c.ConductorSheetID <= 0 {
		return errors.NewConfigError("conductor", constants.EnvConductorSheet+" must be a sheet id", nil)
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first; godotenv never overrides a variable already
// set, so its values win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// firstString returns the environment key or, failing that, the config file key.
func firstString(v *viper.Viper, envKey, fileKey string) string {
	if v.IsSet(fileKey) && os.Getenv(envKey) == "" {
		return v.GetString(fileKey)
	}
	return v.GetString(envKey)
}

func firstInt64(v *viper.Viper, envKey, fileKey string) int64 {
	if v.IsSet(fileKey) && os.Getenv(envKey) == "" {
		return v.GetInt64(fileKey)
	}
	return v.GetInt64(envKey)
}

func firstDuration(v *viper.Viper, envKey, fileKey string) time.Duration {
	if v.IsSet(fileKey) && os.Getenv(envKey) == "" {
		return v.GetDuration(fileKey)
	}
	return v.GetDuration(envKey)
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
