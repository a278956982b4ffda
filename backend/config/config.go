package config

import (
	"github.com/deckhubapp/deckhub/deckhub"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *deckhub.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *deckhub.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// SessionKey returns the HMAC key used to sign session cookies.
func (w *WebAppConfig) SessionKey() string {
	return w.Config.Session.Secret
}

// SessionTTLHours returns the session lifetime, defaulting to 24 hours.
func (w *WebAppConfig) SessionTTLHours() int {
	if w.Config.Session.TTLHours <= 0 {
		return 24
	}
	return w.Config.Session.TTLHours
}

// GetDatabaseConfig returns the database configuration
func (w *WebAppConfig) GetDatabaseConfig() deckhub.DBConfig {
	return w.Config.DB
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() deckhub.WebConfig {
	return w.Config.Web
}
