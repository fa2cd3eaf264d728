// Package config loads tool configuration from the environment and the
// business details document. Configuration failures are fatal: the core
// is never invoked without a fully populated BusinessDetails.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"invoicegen/internal/logger"
	"invoicegen/pkg/models"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultBusinessDetailsFile = "config/business_details.json"
	DefaultTrackerFile         = "data/invoice_tracker.json"
	DefaultContactsFile        = "data/business_contacts.json"
	DefaultOutputDir           = "invoices"
	DefaultCurrencySymbol      = "£"
)

// ErrConfigNotFound is returned when the business details file is missing.
var ErrConfigNotFound = errors.New("business details file not found")

// ConfigError wraps a configuration failure with the file it came from.
type ConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

type Config struct {
	// File locations
	BusinessDetailsFile string
	TrackerFile         string
	ContactsFile        string

	// Rendering
	OutputDir      string
	CurrencySymbol string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from environment variables, applying the
// documented defaults for anything unset.
func Load() *Config {
	return &Config{
		BusinessDetailsFile: getEnv("INVOICE_CONFIG", DefaultBusinessDetailsFile),
		TrackerFile:         getEnv("INVOICE_TRACKER_FILE", DefaultTrackerFile),
		ContactsFile:        getEnv("CONTACTS_FILE", DefaultContactsFile),
		OutputDir:           getEnv("INVOICE_OUTPUT_DIR", DefaultOutputDir),
		CurrencySymbol:      getEnv("CURRENCY_SYMBOL", DefaultCurrencySymbol),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:       getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:           getEnv("LOG_OUTPUT", "stderr"),
	}
}

// businessDetailsDoc is the strict on-disk shape of the business details
// file. Unknown fields are rejected rather than silently ignored.
type businessDetailsDoc struct {
	Name          string `json:"name"`
	AddressLine1  string `json:"address_line1"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`
	Email         string `json:"email"`
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
	OutputDir     string `json:"output_dir,omitempty"`
}

// LoadBusinessDetails reads and validates the business details document.
// Every required field must be present and non-empty; a missing file or
// malformed JSON is a fatal configuration error, never silently defaulted.
func (c *Config) LoadBusinessDetails() (models.BusinessDetails, error) {
	data, err := os.ReadFile(c.BusinessDetailsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.BusinessDetails{}, &ConfigError{
				Path: c.BusinessDetailsFile,
				Err:  fmt.Errorf("%w: create the file with your business details", ErrConfigNotFound),
			}
		}
		return models.BusinessDetails{}, &ConfigError{Path: c.BusinessDetailsFile, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc businessDetailsDoc
	if err := dec.Decode(&doc); err != nil {
		return models.BusinessDetails{}, &ConfigError{
			Path: c.BusinessDetailsFile,
			Err:  fmt.Errorf("invalid JSON: %w", err),
		}
	}

	required := map[string]string{
		"name":           doc.Name,
		"address_line1":  doc.AddressLine1,
		"city":           doc.City,
		"postcode":       doc.Postcode,
		"email":          doc.Email,
		"sort_code":      doc.SortCode,
		"account_number": doc.AccountNumber,
	}
	var missing []string
	for field, value := range required {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.BusinessDetails{}, &ConfigError{
			Path: c.BusinessDetailsFile,
			Err:  fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	business := models.BusinessDetails{
		Name:          doc.Name,
		AddressLine1:  doc.AddressLine1,
		City:          doc.City,
		Postcode:      doc.Postcode,
		Email:         doc.Email,
		SortCode:      doc.SortCode,
		AccountNumber: doc.AccountNumber,
		OutputDir:     doc.OutputDir,
	}
	if business.OutputDir == "" {
		business.OutputDir = c.OutputDir
	}
	return business, nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
