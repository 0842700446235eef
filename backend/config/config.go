package config

import (
	"github.com/gunceblog/gunce-backend/gunce"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *gunce.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *gunce.Config, debug bool) *WebAppConfig {
	environment := cfg.Web.Environment
	if environment == "" {
		environment = "production"
		if debug {
			environment = "development"
		}
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// GetDatabaseConfig returns the database configuration
func (w *WebAppConfig) GetDatabaseConfig() gunce.DBConfig {
	return w.Config.DB
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() gunce.WebConfig {
	return w.Config.Web
}

// GetLogConfig returns the log configuration
func (w *WebAppConfig) GetLogConfig() gunce.LogConfig {
	return w.Config.Log
}
