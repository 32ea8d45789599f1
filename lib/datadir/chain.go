package datadir

import (
	"sort"

	"github.com/go-i2p/logger"
)

// Chain resolves configuration keys against sources in fixed precedence
// order: runtime properties, host context, handler configuration, environment.
type Chain struct {
	sources []Source
}

// NewChain builds a chain from the given sources. Sources are ordered by their
// Type regardless of argument order; nil sources are skipped.
func NewChain(sources ...Source) *Chain {
	ordered := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Type() < ordered[j].Type()
	})
	return &Chain{sources: ordered}
}

// Lookup returns the value configured for key. Every source is first asked
// for "<nodeID>.<key>"; only when none answers is the plain key searched, in
// the same order.
func (c *Chain) Lookup(key, nodeID string) (string, bool) {
	log.WithFields(logger.Fields{
		"at":   "(Chain) Lookup",
		"key":  key,
		"node": nodeID,
	}).Debug("looking up property")

	if nodeID != "" {
		if v, ok := c.search(nodeID + "." + key); ok {
			return v, true
		}
	}
	return c.search(key)
}

// search asks each source for name and returns the first non-empty value.
func (c *Chain) search(name string) (string, bool) {
	for _, s := range c.sources {
		v, ok := s.Lookup(name)
		if !ok || v == "" {
			continue
		}
		log.WithFields(logger.Fields{
			"at":     "(Chain) search",
			"source": s.Type().String(),
			"name":   name,
			"value":  v,
		}).Debug("found property")
		return v, true
	}
	return "", false
}
