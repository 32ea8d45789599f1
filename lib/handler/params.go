// Package handler holds the handler configuration: the mutable parameter map
// shared by the services of one deployment. The data directory resolver reads
// overrides from it and publishes resolved paths into it.
package handler

import (
	"os"
	"sort"
	"sync"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

var log = logger.GetGoI2PLogger()

// Params is a concurrency-safe string map. The zero value is not usable, use New.
type Params struct {
	mu     sync.RWMutex
	values map[string]string
}

// New returns Params seeded with a copy of initial.
func New(initial map[string]string) *Params {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Params{values: values}
}

// Load reads a flat YAML mapping of parameter names to values.
// A missing file yields empty Params.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Debug("no handler configuration file, starting empty")
			return New(nil), nil
		}
		return nil, oops.Wrapf(err, "reading handler configuration %s", path)
	}
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, oops.Wrapf(err, "parsing handler configuration %s", path)
	}
	log.WithFields(logger.Fields{
		"at":    "handler.Load",
		"path":  path,
		"count": len(values),
	}).Debug("loaded handler configuration")
	return New(values), nil
}

// Value returns the value stored under key.
func (p *Params) Value(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// SetValue stores value under key, replacing any previous value.
func (p *Params) SetValue(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

// Keys returns the parameter names in sorted order.
func (p *Params) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all parameters.
func (p *Params) Snapshot() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
