// Package signals dispatches process signals to registered handlers:
// SIGINT/SIGTERM run the interrupt handlers and end Wait, SIGHUP runs the
// reload handlers (not available on windows).
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// Handler is a function called when a signal is received.
type Handler func()

// Dispatcher holds the handlers of one process.
type Dispatcher struct {
	mu           sync.RWMutex
	reloaders    []Handler
	interrupters []Handler
}

// New returns an empty Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// OnReload registers a handler called on SIGHUP. Nil handlers are ignored.
func (d *Dispatcher) OnReload(f Handler) {
	if f == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reloaders = append(d.reloaders, f)
}

// OnInterrupt registers a handler called on SIGINT/SIGTERM. Nil handlers are ignored.
func (d *Dispatcher) OnInterrupt(f Handler) {
	if f == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interrupters = append(d.interrupters, f)
}

// Wait blocks until an interrupt signal arrives or ctx is done. Interrupt
// handlers run before Wait returns in both cases.
func (d *Dispatcher) Wait(ctx context.Context) {
	ch := make(chan os.Signal, 1)
	notify(ch)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			d.Interrupt()
			return
		case sig := <-ch:
			log.WithField("signal", sig.String()).Info("received signal")
			if isReload(sig) {
				d.Reload()
				continue
			}
			d.Interrupt()
			return
		}
	}
}

// Reload runs the reload handlers in registration order.
func (d *Dispatcher) Reload() {
	d.run("reload", d.snapshot(&d.reloaders))
}

// Interrupt runs the interrupt handlers in registration order.
func (d *Dispatcher) Interrupt() {
	d.run("interrupt", d.snapshot(&d.interrupters))
}

func (d *Dispatcher) snapshot(handlers *[]Handler) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Handler, len(*handlers))
	copy(out, *handlers)
	return out
}

func (d *Dispatcher) run(kind string, handlers []Handler) {
	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(logger.Fields{
						"at":      "(Dispatcher) run",
						"handler": kind,
						"panic":   r,
					}).Error("signal handler panicked")
				}
			}()
			h()
		}()
	}
}
