//go:build !windows

package signals

import (
	"os"
	"os/signal"
	"syscall"
)

func notify(ch chan<- os.Signal) {
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

func isReload(sig os.Signal) bool {
	return sig == syscall.SIGHUP
}
