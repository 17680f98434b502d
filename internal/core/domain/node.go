package domain

import (
	"path"
	"strings"
)

// PartialPrefix marks a stylesheet fragment that is only ever included by
// other files and never compiled directly.
const PartialPrefix = "_"

// StylesheetNode is one entry in the dependency graph. Edges are kept
// symmetric: for every identity in Uses, the target node's UsedBy contains
// this node's identity, and vice versa.
type StylesheetNode struct {
	// Identity is the canonical graph key.
	Identity FileIdentity
	// Display is the original-case path used in logs and notifications.
	Display string
	// IsPartial is true when the filename carries the partial marker.
	IsPartial bool
	// Uses holds direct outgoing dependency edges.
	Uses map[FileIdentity]struct{}
	// UsedBy holds direct incoming edges, the inverse of Uses.
	UsedBy map[FileIdentity]struct{}
}

// NewStylesheetNode creates a node for the given path with empty edge sets.
func NewStylesheetNode(p string) *StylesheetNode {
	return &StylesheetNode{
		Identity:  NewFileIdentity(p),
		Display:   p,
		IsPartial: IsPartialPath(p),
		Uses:      make(map[FileIdentity]struct{}),
		UsedBy:    make(map[FileIdentity]struct{}),
	}
}

// IsEntry reports whether the node is a buildable entry file: a non-partial
// with no known importers.
func (n *StylesheetNode) IsEntry() bool {
	return !n.IsPartial && len(n.UsedBy) == 0
}

// IsPartialPath reports whether the filename carries the partial marker.
func IsPartialPath(p string) bool {
	base := path.Base(NormalizePath(p))
	return strings.HasPrefix(base, PartialPrefix)
}
