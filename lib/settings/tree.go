package settings

import (
	"sort"
	"strings"
)

// Node is one element of the settings tree. Leaves carry the stored value.
type Node struct {
	Name     string   `json:"name"`
	Path     string   `json:"path,omitempty"`
	Value    *string  `json:"value,omitempty"`
	DataType DataType `json:"datatype,omitempty"`
	Children []*Node  `json:"children,omitempty"`

	index map[string]*Node
}

// Child returns the direct child called name.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.index[name]
	return c, ok
}

// Find walks a "/" separated path from n.
func (n *Node) Find(path string) (*Node, bool) {
	cur := n
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (n *Node) child(name, path string) *Node {
	if c, ok := n.index[name]; ok {
		return c
	}
	c := &Node{Name: name, Path: path}
	if n.index == nil {
		n.index = make(map[string]*Node)
	}
	n.index[name] = c
	n.Children = append(n.Children, c)
	return c
}

// BuildTree groups records by their path segments. Records are visited in
// name order so the first one to reach a segment under a given parent
// creates it; children keep that order.
func BuildTree(records []Setting) *Node {
	sorted := make([]Setting, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	root := &Node{Name: "settings"}
	for _, rec := range sorted {
		segments := strings.Split(strings.Trim(rec.Name, "/"), "/")
		cur := root
		for i, seg := range segments {
			cur = cur.child(seg, strings.Join(segments[:i+1], "/"))
		}
		if !rec.Null {
			v := rec.Value
			cur.Value = &v
		}
		cur.DataType = rec.DataType
	}
	return root
}
