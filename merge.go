package conftree

import (
	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/olock"
)

// Merge merges the backend's current configuration tree with a client's
// submitted tree and returns the merged result. The client tree is the
// result slot; both inputs are mutated and must be discarded afterwards,
// whether or not the merge succeeds. On a concurrent change to a subtree
// the client also edited, the error is a *olock.ConflictError.
func Merge(backend, client *ir.Node) (*ir.Node, error) {
	if err := olock.Merge(backend, client); err != nil {
		return nil, err
	}
	return client, nil
}
