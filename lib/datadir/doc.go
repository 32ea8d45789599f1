// Package datadir resolves the data directory of a catalogue deployment.
//
// # Root directory
//
// The root is looked up under "<webapp>.dir", then "geonetwork.dir". Every
// lookup first tries the node scoped key "<node>.<key>" in all sources and
// only then the plain key, the sources being always asked in this order:
//
//  1. runtime properties (-D key=value)
//  2. host context parameters
//  3. handler configuration parameters
//  4. environment variables, with dots replaced by underscores
//
// A configured root gets the node suffix ("data" becomes "data_node2" for a
// non default node) and must be creatable, existing, writable and absolute.
// When nothing is configured or the candidate is rejected the suffixed
// "<webapp dir>/WEB-INF/data" is used instead.
//
// # Subdirectories
//
// Each subdirectory may be overridden with "<webapp>.<segment>.dir"
// (lucene, spatial, config, codeList, schema, data, svn, resources) and
// otherwise lives at its default place under the root:
//
//	index/
//	spatialindex/
//	config/
//	config/codelist/
//	config/schema_plugins/
//	data/metadata_data/
//	data/metadata_subversion/
//	data/resources/
//	data/resources/htmlcache/
//
// All of them are created during resolution; a directory that cannot be
// created is fatal. The resolved paths are published into the handler
// configuration and empty codelist and schema plugin directories are seeded
// from the webapp.
package datadir
