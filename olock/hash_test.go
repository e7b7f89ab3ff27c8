package olock

import (
	"testing"

	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestHashNodeDeterministic(t *testing.T) {
	a := mustParse(t, "name: scanner\nport: 104")
	b := mustParse(t, "name: scanner\nport: 104")
	if HashNode(a) != HashNode(b) {
		t.Fatal("equal trees hash differently")
	}
	b.Set("port", ir.FromInt(105))
	if HashNode(a) == HashNode(b) {
		t.Fatal("different trees hash equal")
	}
}

func TestHashNodeIgnoresReservedKeys(t *testing.T) {
	n := mustParse(t, "name: scanner")
	before := HashNode(n)
	n.Set(HashKey, ir.FromString("whatever"))
	n.Set(OldHashKey, ir.FromString("older"))
	if HashNode(n) != before {
		t.Fatal("reserved keys leaked into the hash")
	}
}

func TestHashNodeNestedLockOpaque(t *testing.T) {
	mk := func() *ir.Node {
		n := mustParse(t, "outer: 1\ninner:\n  deep: a")
		Mark(n.Get("inner"))
		Stamp(n)
		return n
	}
	a := mk()
	b := mk()
	// change content inside the nested lock only
	b.Get("inner").Set("deep", ir.FromString("edited"))
	Stamp(b)

	if HashNode(a.Get("inner")) == HashNode(b.Get("inner")) {
		t.Fatal("inner hash should change")
	}
	if HashNode(a) != HashNode(b) {
		t.Fatal("edit inside a nested lock changed the outer hash")
	}

	// but changes outside the nested lock do change the outer hash
	b.Set("outer", ir.FromInt(2))
	if HashNode(a) == HashNode(b) {
		t.Fatal("outer edit not reflected in outer hash")
	}
}

func TestHashNodeNestingSensitive(t *testing.T) {
	// same flat key/value stream, different structure
	nested := mustParse(t, "a:\n  b: 1\n  c: 2")
	flat := mustParse(t, "a:\n  b: 1\nc: 2")
	if HashNode(nested) == HashNode(flat) {
		t.Fatal("moving a field across an object boundary should change the hash")
	}

	empty := mustParse(t, "a: {}\nb: {}")
	one := mustParse(t, "a:\n  b: {}")
	if HashNode(empty) == HashNode(one) {
		t.Fatal("sibling empty objects hash like a nested one")
	}
}

func TestHashNodeKeyOrderSensitive(t *testing.T) {
	a := mustParse(t, "x: 1\ny: 2")
	b := mustParse(t, "y: 2\nx: 1")
	if HashNode(a) == HashNode(b) {
		t.Fatal("key order should be part of the content")
	}
}

func TestStampRebaseStrip(t *testing.T) {
	n := mustParse(t, "device:\n  name: scanner")
	dev := n.Get("device")
	Mark(dev)
	if !IsLocked(dev) {
		t.Fatal("Mark did not lock")
	}
	if IsLocked(n) {
		t.Fatal("root should not be locked")
	}

	Stamp(n)
	h := dev.Get(HashKey).String
	if h == "" {
		t.Fatal("Stamp left placeholder")
	}
	if h != HashNode(dev) {
		t.Fatal("stamped hash != HashNode")
	}

	Rebase(n)
	if dev.Get(OldHashKey).String != h {
		t.Fatal("Rebase did not record baseline")
	}

	// editing then restamping changes #hash but not #old_hash
	dev.Set("name", ir.FromString("edited"))
	Stamp(n)
	if dev.Get(HashKey).String == h {
		t.Fatal("Stamp did not refresh hash")
	}
	if dev.Get(OldHashKey).String != h {
		t.Fatal("Stamp touched baseline")
	}

	Strip(n)
	if dev.Has(HashKey) || dev.Has(OldHashKey) {
		t.Fatal("Strip left reserved keys")
	}
}
