package ir

import (
	"testing"
)

func obj(kvs ...KeyVal) *Node {
	return FromKeyVals(kvs)
}

func kv(k string, v *Node) KeyVal {
	return KeyVal{Key: FromString(k), Val: v}
}

func TestNodeGetSet(t *testing.T) {
	n := obj(kv("a", FromInt(1)), kv("b", FromString("x")))

	if got := n.Get("a"); got == nil || *got.Int64 != 1 {
		t.Fatalf("Get(a) = %v", got)
	}
	if n.Get("zzz") != nil {
		t.Fatal("Get of absent key should be nil")
	}
	if !n.Has("b") || n.Has("c") {
		t.Fatal("Has mismatch")
	}

	n.Set("a", FromInt(2))
	if got := n.Get("a"); *got.Int64 != 2 {
		t.Fatalf("Set did not replace: %v", got)
	}
	if len(n.Fields) != 2 {
		t.Fatalf("Set replaced but grew fields: %d", len(n.Fields))
	}

	n.Set("c", FromBool(true))
	if len(n.Fields) != 3 || !n.Get("c").Bool {
		t.Fatal("Set append failed")
	}
	if n.Get("c").Parent != n || n.Get("c").ParentField != "c" {
		t.Fatal("Set append did not wire parent")
	}
}

func TestNodeRemove(t *testing.T) {
	n := obj(kv("a", FromInt(1)), kv("b", FromInt(2)), kv("c", FromInt(3)))
	if !n.Remove("b") {
		t.Fatal("Remove(b) = false")
	}
	if n.Remove("b") {
		t.Fatal("second Remove(b) = true")
	}
	if len(n.Fields) != 2 {
		t.Fatalf("fields after remove: %d", len(n.Fields))
	}
	// indices reflow after removal
	if c := n.Get("c"); c.ParentIndex != 1 {
		t.Fatalf("c.ParentIndex = %d", c.ParentIndex)
	}
}

func TestNodeClearCopyFrom(t *testing.T) {
	src := obj(kv("x", FromInt(10)), kv("y", obj(kv("z", FromString("deep")))))
	dst := obj(kv("old", FromInt(0)))

	dst.CopyFrom(src)
	if !Equal(dst, src) {
		t.Fatal("CopyFrom not equal to source")
	}
	// deep copy: mutating the copy leaves the source alone
	dst.Get("y").Set("z", FromString("changed"))
	if src.Get("y").Get("z").String != "deep" {
		t.Fatal("CopyFrom shared children with source")
	}

	dst.Clear()
	if len(dst.Fields) != 0 || len(dst.Values) != 0 {
		t.Fatal("Clear left entries")
	}
}

func TestNodeSwapContents(t *testing.T) {
	a := obj(kv("a", FromInt(1)), kv("sub", obj(kv("k", FromString("va")))))
	b := obj(kv("b", FromString("two")))

	a.SwapContents(b)

	if a.Has("a") || !a.Has("b") {
		t.Fatal("a did not take b's content")
	}
	if !b.Has("sub") || b.Has("b") {
		t.Fatal("b did not take a's content")
	}
	if b.Get("sub").Parent != b {
		t.Fatal("children not re-parented")
	}
	if got := b.Get("sub").Get("k").String; got != "va" {
		t.Fatalf("subtree content lost: %q", got)
	}
}

func TestClone(t *testing.T) {
	n := obj(
		kv("s", FromString("str")),
		kv("arr", FromSlice([]*Node{FromInt(1), FromBool(false)})),
	)
	c := n.Clone()
	if !Equal(n, c) {
		t.Fatal("clone not equal")
	}
	c.Get("arr").Values[0] = FromInt(99)
	if *n.Get("arr").Values[0].Int64 != 1 {
		t.Fatal("clone shares array values")
	}
}
