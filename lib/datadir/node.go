package datadir

import (
	"path/filepath"
)

// NodeSuffix is the suffix a node adds to the root directory name. The default
// node shares the unsuffixed directory.
func NodeSuffix(nodeID string, isDefaultNode bool) string {
	if isDefaultNode {
		return ""
	}
	return "_" + nodeID
}

// ApplyNodeSuffix appends the node suffix to the last segment of root, so
// ".../data" becomes ".../data_node2". Callers apply it once per candidate.
func ApplyNodeSuffix(root, nodeID string, isDefaultNode bool) string {
	suffix := NodeSuffix(nodeID, isDefaultNode)
	if suffix == "" {
		return root
	}
	cleaned := filepath.Clean(root)
	return filepath.Join(filepath.Dir(cleaned), filepath.Base(cleaned)+suffix)
}
