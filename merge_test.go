package conftree

import (
	"errors"
	"testing"

	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/olock"
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

// Full update cycle: read, rebase, patch, stamp, merge.
func TestUpdateCycle(t *testing.T) {
	stored := mustParse(t, `
server:
  listen: ":8080"
  limits:
    maxConns: 100
`)
	olock.Mark(stored.Get("server"))
	olock.Mark(stored.Get("server").Get("limits"))
	olock.Stamp(stored)

	client := stored.Clone()
	olock.Rebase(client)
	client, err := Patch(client, []byte(`[
		{"op": "replace", "path": "/server/limits/maxConns", "value": 250}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	olock.Stamp(client)

	// concurrent backend change outside the limits lock
	stored.Get("server").Set("listen", ir.FromString(":9090"))
	olock.Stamp(stored)

	merged, err := Merge(stored, client)
	if err != nil {
		t.Fatal(err)
	}
	srv := merged.Get("server")
	if srv.Get("listen").String != ":9090" {
		t.Error("backend change lost")
	}
	if *srv.Get("limits").Get("maxConns").Int64 != 250 {
		t.Error("client edit lost")
	}
}

func TestMergeConflictSurfaces(t *testing.T) {
	stored := mustParse(t, "app:\n  replicas: 1")
	olock.Mark(stored.Get("app"))
	olock.Stamp(stored)

	client := stored.Clone()
	olock.Rebase(client)
	client.Get("app").Set("replicas", ir.FromInt(3))
	olock.Stamp(client)

	stored.Get("app").Set("replicas", ir.FromInt(5))
	olock.Stamp(stored)

	_, err := Merge(stored, client)
	conflict := &olock.ConflictError{}
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if conflict.Path != "$.app" {
		t.Errorf("path = %q", conflict.Path)
	}
}
