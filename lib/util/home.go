package util

import (
	"os"
)

// UserHome returns the current user's home directory.
// Falls back to $HOME, then %USERPROFILE%, then the working directory, so
// containers without a home still start.
func UserHome() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return homeDir
	}
	if home := os.Getenv("HOME"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to $HOME")
		return home
	}
	if home := os.Getenv("USERPROFILE"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to USERPROFILE")
		return home
	}
	if wd, wdErr := os.Getwd(); wdErr == nil {
		log.WithError(err).Warn("no home directory; falling back to working directory")
		return wd
	}
	return "."
}
