package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/viper"

	"github.com/titellus/geonetwork-pnf/lib/util"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

// BaseDirName is the per-user directory holding the configuration file.
const BaseDirName = ".geonetwork-pnf"

// InitConfig loads the configuration file into viper, creating it with the
// defaults when it does not exist yet.
func InitConfig() error {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		// $HOME/.geonetwork-pnf/config.yaml
		viper.AddConfigPath(BuildDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("webapp.name", DefaultWebappName)
	// empty means the working directory
	viper.SetDefault("webapp.dir", "")
	viper.SetDefault("webapp.context_file", "")
	viper.SetDefault("webapp.handler_file", "")

	viper.SetDefault("node.id", DefaultNodeID)
	viper.SetDefault("node.default", true)

	viper.SetDefault("server.address", DefaultServerAddress)

	viper.SetDefault("settings.database", "")

	viper.SetDefault("admin.token_hash", "")

	viper.SetDefault("system.dev_mode", false)
}

func createDefaultConfig(defaultConfigDir string) error {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		return oops.Wrapf(err, "could not create config directory %s", defaultConfigDir)
	}

	if err := viper.SafeWriteConfigAs(defaultConfigFile); err != nil {
		return oops.Wrapf(err, "could not write default config file %s", defaultConfigFile)
	}

	log.WithField("file", defaultConfigFile).Debug("created default configuration")
	return nil
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !os.IsNotExist(err) {
		return oops.Wrapf(err, "error reading config file")
	}
	if CfgFile != "" {
		return oops.Wrapf(err, "config file %s is not found", CfgFile)
	}
	return createDefaultConfig(BuildDirPath())
}

// BuildDirPath returns $HOME/.geonetwork-pnf.
func BuildDirPath() string {
	return filepath.Join(util.UserHome(), BaseDirName)
}
