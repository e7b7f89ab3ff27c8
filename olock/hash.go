package olock

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"

	"github.com/conftree/conftree/debug"
	"github.com/conftree/conftree/ir"
)

// HashNode returns the content hash of a node: the SHA-1 hex digest of a
// canonical serialization. The reserved keys are excluded, and any child
// value that is itself lock-protected contributes only its field key: its
// content is covered by its own hash, which keeps lock granularity
// independent per subtree.
func HashNode(n *ir.Node) string {
	h := sha1.New()
	writeNode(h, n)
	res := hex.EncodeToString(h.Sum(nil))
	if debug.Hash() {
		debug.Logf("hash %s = %s\n", n.Path(), res)
	}
	return res
}

func writeNode(h hash.Hash, n *ir.Node) {
	switch n.Type {
	case ir.NullType:
		h.Write([]byte{'z'})
	case ir.BoolType:
		if n.Bool {
			h.Write([]byte{'b', 1})
		} else {
			h.Write([]byte{'b', 0})
		}
	case ir.NumberType:
		h.Write([]byte{'n'})
		writeString(h, numberString(n))
	case ir.StringType:
		h.Write([]byte{'s'})
		writeString(h, n.String)
	case ir.ArrayType:
		h.Write([]byte{'a'})
		writeLen(h, len(n.Values))
		for _, v := range n.Values {
			if IsLocked(v) {
				h.Write([]byte{'l'})
				continue
			}
			writeNode(h, v)
		}
	case ir.ObjectType:
		h.Write([]byte{'o'})
		// The field count delimits the object in the flat stream, so a
		// field moved between a node and its child changes both hashes.
		nf := 0
		for _, f := range n.Fields {
			if f.String != HashKey && f.String != OldHashKey {
				nf++
			}
		}
		writeLen(h, nf)
		for i, f := range n.Fields {
			key := f.String
			if key == HashKey || key == OldHashKey {
				continue
			}
			writeString(h, key)
			if IsLocked(n.Values[i]) {
				h.Write([]byte{'l'})
				continue
			}
			writeNode(h, n.Values[i])
		}
	default:
		panic(fmt.Sprintf("olock: unknown node type %d", n.Type))
	}
}

func numberString(n *ir.Node) string {
	if n.Int64 != nil {
		return strconv.FormatInt(*n.Int64, 10)
	}
	if n.Float64 != nil {
		return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
	}
	return n.Number
}

func writeString(h hash.Hash, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}

func writeLen(h hash.Hash, n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	h.Write(b[:])
}

// Stamp recomputes the hash of every lock-protected node under root,
// children first.
func Stamp(root *ir.Node) {
	root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost && IsLocked(n) {
			n.Set(HashKey, ir.FromString(HashNode(n)))
		}
		return true, nil
	})
}

// Rebase records every lock-protected node's current hash as its baseline.
// A client calls this on a freshly read tree before editing it. Nodes with
// a placeholder hash are rebased too; nodes without a hash are untouched.
func Rebase(root *ir.Node) {
	root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost && IsLocked(n) {
			n.Set(OldHashKey, ir.FromString(n.Get(HashKey).String))
		}
		return true, nil
	})
}

// Strip removes the reserved keys from every node under root.
func Strip(root *ir.Node) {
	root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.Type == ir.ObjectType {
			n.Remove(HashKey)
			n.Remove(OldHashKey)
		}
		return true, nil
	})
}
