package htmlcache

import (
	"strconv"
)

// Key identifies one rendered formatter output.
type Key struct {
	MetadataID int
	Lang       string
	Formatter  string
}

func (k Key) String() string {
	return k.Formatter + "/" + k.Lang + "/" + strconv.Itoa(k.MetadataID)
}

// SystemInfo reports the runtime mode of the application.
type SystemInfo interface {
	IsDevMode() bool
}

// StaticSystemInfo is a SystemInfo with a fixed mode.
type StaticSystemInfo struct {
	DevMode bool
}

func (s StaticSystemInfo) IsDevMode() bool { return s.DevMode }

// Policy decides whether a key may be cached. Outputs are never cached in
// development mode; without SystemInfo the application is under test and
// caching is allowed.
type Policy struct {
	SystemInfo SystemInfo
	// ExtraChecks may veto caching of individual keys.
	ExtraChecks func(Key) bool
}

// AllowCaching reports whether output for key may be stored.
func (p Policy) AllowCaching(key Key) bool {
	underTest := p.SystemInfo == nil
	if !underTest && p.SystemInfo.IsDevMode() {
		return false
	}
	return p.ExtraChecks == nil || p.ExtraChecks(key)
}
