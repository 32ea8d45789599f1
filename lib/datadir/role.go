package datadir

import (
	"path/filepath"
)

const (
	// KeySuffix is appended to every directory lookup key.
	KeySuffix = ".dir"
	// GeonetworkDirKey is the lookup key shared by every deployment.
	GeonetworkDirKey = "geonetwork.dir"
	// SchemaPluginsCatalog is the schema plugin catalogue file kept in the config directory.
	SchemaPluginsCatalog = "schemaplugin-uri-catalog.xml"
	// SystemDataDirKey is the handler key the resolved root is published under.
	SystemDataDirKey = "systemDataDir"
	// HTMLCacheDirKey is the handler key of the html cache directory.
	HTMLCacheDirKey = "htmlCacheDir"
)

// defaultDataDirParts is the webapp-relative location of the default data directory.
var defaultDataDirParts = []string{"WEB-INF", "data"}

// DefaultDataDir returns the default root for a webapp, without node suffix.
func DefaultDataDir(webappDir string) string {
	return filepath.Join(append([]string{webappDir}, defaultDataDirParts...)...)
}

// Role names one subdirectory of the data directory.
type Role string

const (
	RoleIndex             Role = "index"
	RoleSpatialIndex      Role = "spatial-index"
	RoleConfig            Role = "config"
	RoleCodelists         Role = "codelists"
	RoleSchemaPlugins     Role = "schema-plugins"
	RoleMetadataData      Role = "metadata-data"
	RoleMetadataRevisions Role = "metadata-revisions"
	RoleResources         Role = "resources"
	RoleHTMLCache         Role = "html-cache"
)

// roleLayout describes how a role is resolved.
type roleLayout struct {
	role Role
	// keySegment is inserted between the webapp name and KeySuffix.
	keySegment string
	// relative is the root-relative default.
	relative string
	// handlerKey is the handler configuration key the path is published under,
	// empty when the path is not published.
	handlerKey string
}

// overridableRoles lists roles in resolution order. The html cache is derived
// from the resources directory and is deliberately absent.
var overridableRoles = []roleLayout{
	{RoleIndex, "lucene", "index", "luceneDir"},
	{RoleSpatialIndex, "spatial", "spatialindex", ""},
	{RoleConfig, "config", "config", "configDir"},
	{RoleCodelists, "codeList", filepath.Join("config", "codelist"), "codeListDir"},
	{RoleSchemaPlugins, "schema", filepath.Join("config", "schema_plugins"), "schemapluginsDir"},
	{RoleMetadataData, "data", filepath.Join("data", "metadata_data"), "dataDir"},
	{RoleMetadataRevisions, "svn", filepath.Join("data", "metadata_subversion"), "subversionPath"},
	{RoleResources, "resources", filepath.Join("data", "resources"), "resourcesDir"},
}

// Roles returns every role, html cache last.
func Roles() []Role {
	roles := make([]Role, 0, len(overridableRoles)+1)
	for _, rs := range overridableRoles {
		roles = append(roles, rs.role)
	}
	return append(roles, RoleHTMLCache)
}

// OverrideKey returns the lookup key for a role override, e.g. "geonetwork.lucene.dir".
// The html cache has no override key and yields "".
func OverrideKey(webappName string, role Role) string {
	for _, rs := range overridableRoles {
		if rs.role == role {
			return webappName + "." + rs.keySegment + KeySuffix
		}
	}
	return ""
}

// HandlerKey returns the handler configuration key a role is published under,
// or "" for a role that is not published.
func HandlerKey(role Role) string {
	if role == RoleHTMLCache {
		return HTMLCacheDirKey
	}
	for _, rs := range overridableRoles {
		if rs.role == role {
			return rs.handlerKey
		}
	}
	return ""
}
