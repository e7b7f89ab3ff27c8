package olock

import "github.com/conftree/conftree/ir"

const (
	// HashKey holds a lock-protected node's content hash as currently held
	// in this copy of the tree.
	HashKey = "#hash"
	// OldHashKey holds the hash the client observed for this subtree when
	// it read the configuration, before its edits. Present only on
	// client-side nodes.
	OldHashKey = "#old_hash"
)

// IsLocked reports whether n is a lock-protected node.
func IsLocked(n *ir.Node) bool {
	return n.Type == ir.ObjectType && n.Has(HashKey)
}

// Mark makes n lock-protected. The hash value is a placeholder until the
// next Stamp.
func Mark(n *ir.Node) {
	if n.Type != ir.ObjectType || n.Has(HashKey) {
		return
	}
	n.Set(HashKey, ir.FromString(""))
}
