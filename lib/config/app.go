package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	DefaultWebappName    = "geonetwork"
	DefaultNodeID        = "srv"
	DefaultServerAddress = "localhost:8080"
	// SettingsDatabaseName is the settings database file kept in the config directory.
	SettingsDatabaseName = "settings.db"
)

// AppConfig is the process configuration.
type AppConfig struct {
	// WebappName prefixes the data directory lookup keys
	WebappName string
	// WebappDir is the directory the web application is installed in
	WebappDir string
	// ContextFile holds the host context parameters, empty for the default location
	ContextFile string
	// HandlerFile holds the handler configuration parameters, empty for the default location
	HandlerFile string

	NodeID      string
	DefaultNode bool

	// ServerAddress is the listen address of the admin API
	ServerAddress string

	// SettingsDatabase overrides <configDir>/settings.db
	SettingsDatabase string

	// AdminTokenHash is the bcrypt hash of the administrator bearer token.
	// Empty disables administrator access.
	AdminTokenHash string

	DevMode bool
}

// NewAppConfigFromViper creates an AppConfig from the current viper settings.
func NewAppConfigFromViper() *AppConfig {
	webappDir := viper.GetString("webapp.dir")
	if webappDir == "" {
		webappDir = "."
		if wd, err := os.Getwd(); err == nil {
			webappDir = wd
		}
	}
	return &AppConfig{
		WebappName:       viper.GetString("webapp.name"),
		WebappDir:        webappDir,
		ContextFile:      viper.GetString("webapp.context_file"),
		HandlerFile:      viper.GetString("webapp.handler_file"),
		NodeID:           viper.GetString("node.id"),
		DefaultNode:      viper.GetBool("node.default"),
		ServerAddress:    viper.GetString("server.address"),
		SettingsDatabase: viper.GetString("settings.database"),
		AdminTokenHash:   viper.GetString("admin.token_hash"),
		DevMode:          viper.GetBool("system.dev_mode"),
	}
}

// ContextFilePath is the host context parameter file, by default
// <webappDir>/WEB-INF/context.yaml.
func (c *AppConfig) ContextFilePath() string {
	if c.ContextFile != "" {
		return c.ContextFile
	}
	return filepath.Join(c.WebappDir, "WEB-INF", "context.yaml")
}

// HandlerFilePath is the handler configuration file, by default
// <webappDir>/WEB-INF/config.yaml.
func (c *AppConfig) HandlerFilePath() string {
	if c.HandlerFile != "" {
		return c.HandlerFile
	}
	return filepath.Join(c.WebappDir, "WEB-INF", "config.yaml")
}

// SettingsDatabasePath returns the settings database location for a resolved
// config directory.
func (c *AppConfig) SettingsDatabasePath(configDir string) string {
	if c.SettingsDatabase != "" {
		return c.SettingsDatabase
	}
	return filepath.Join(configDir, SettingsDatabaseName)
}
