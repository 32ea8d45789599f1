package datadir

import (
	"path/filepath"
	"strings"
)

// RootOrigin records where the adopted root came from.
type RootOrigin string

const (
	// OriginOverride means a configuration source supplied the root.
	OriginOverride RootOrigin = "override"
	// OriginPreset means the caller supplied the root in Options.
	OriginPreset RootOrigin = "preset"
	// OriginDefault means the webapp default was used.
	OriginDefault RootOrigin = "default"
)

// Config is a resolved data directory layout. It is a value: once returned by
// Build it never changes and may be shared between goroutines.
type Config struct {
	webappDir     string
	systemDataDir string
	nodeID        string
	defaultNode   bool
	origin        RootOrigin
	rejection     *RootInvalidError
	dirs          map[Role]string
}

// WebappDir is the directory containing the web application.
func (c Config) WebappDir() string { return c.webappDir }

// SystemDataDir is the root under which the other directories live by default.
func (c Config) SystemDataDir() string { return c.systemDataDir }

// NodeID identifies the node this layout belongs to.
func (c Config) NodeID() string { return c.nodeID }

// IsDefaultNode reports whether the root carries no node suffix.
func (c Config) IsDefaultNode() bool { return c.defaultNode }

// RootOrigin tells whether the root was an override, a preset or the default.
func (c Config) RootOrigin() RootOrigin { return c.origin }

// RootRejection is the reason a configured root was discarded, or nil.
func (c Config) RootRejection() *RootInvalidError { return c.rejection }

// Dir returns the directory resolved for role.
func (c Config) Dir(role Role) string { return c.dirs[role] }

// Dirs returns a copy of every resolved directory keyed by role.
func (c Config) Dirs() map[Role]string {
	out := make(map[Role]string, len(c.dirs))
	for r, p := range c.dirs {
		out[r] = p
	}
	return out
}

// LuceneDir holds the search indexes.
func (c Config) LuceneDir() string { return c.dirs[RoleIndex] }

// SpatialIndexDir holds the local spatial index.
func (c Config) SpatialIndexDir() string { return c.dirs[RoleSpatialIndex] }

// ConfigDir holds configuration files.
func (c Config) ConfigDir() string { return c.dirs[RoleConfig] }

// ThesauriDir holds the codelists and thesauri.
func (c Config) ThesauriDir() string { return c.dirs[RoleCodelists] }

// SchemaPluginsDir holds the schema plugins.
func (c Config) SchemaPluginsDir() string { return c.dirs[RoleSchemaPlugins] }

// MetadataDataDir holds metadata resources such as thumbnails and attachments.
func (c Config) MetadataDataDir() string { return c.dirs[RoleMetadataData] }

// MetadataRevisionDir holds the metadata revision history.
func (c Config) MetadataRevisionDir() string { return c.dirs[RoleMetadataRevisions] }

// ResourcesDir holds the system resources (logos, images).
func (c Config) ResourcesDir() string { return c.dirs[RoleResources] }

// HTMLCacheDir holds cached formatter output.
func (c Config) HTMLCacheDir() string { return c.dirs[RoleHTMLCache] }

// ResolveWebResource resolves a webapp-relative path. A single leading
// separator is ignored so "/images/logo.png" stays inside the webapp.
func (c Config) ResolveWebResource(resourcePath string) string {
	if strings.HasPrefix(resourcePath, "/") || strings.HasPrefix(resourcePath, `\`) {
		resourcePath = resourcePath[1:]
	}
	return filepath.Join(c.webappDir, resourcePath)
}

// Summary is a serializable view of a Config.
type Summary struct {
	WebappDir     string            `json:"webappDir" yaml:"webappDir"`
	SystemDataDir string            `json:"systemDataDir" yaml:"systemDataDir"`
	NodeID        string            `json:"nodeId" yaml:"nodeId"`
	DefaultNode   bool              `json:"defaultNode" yaml:"defaultNode"`
	RootOrigin    RootOrigin        `json:"rootOrigin" yaml:"rootOrigin"`
	Rejected      string            `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	Directories   map[string]string `json:"directories" yaml:"directories"`
}

// Summary returns the serializable view of c.
func (c Config) Summary() Summary {
	s := Summary{
		WebappDir:     c.webappDir,
		SystemDataDir: c.systemDataDir,
		NodeID:        c.nodeID,
		DefaultNode:   c.defaultNode,
		RootOrigin:    c.origin,
		Directories:   make(map[string]string, len(c.dirs)),
	}
	if c.rejection != nil {
		s.Rejected = c.rejection.Error()
	}
	for r, p := range c.dirs {
		s.Directories[string(r)] = p
	}
	return s
}
