// Package traverse walks two same-shaped configuration trees in lockstep.
package traverse

import (
	"github.com/conftree/conftree/debug"
	"github.com/conftree/conftree/ir"
)

// DualVisitor receives the hooks of a synchronized depth-first walk over a
// backend tree and a client tree. Node hooks fire once per object-node pair;
// property and list-element hooks bracket the descent into each child pair.
// Any non-nil error aborts the walk immediately.
type DualVisitor interface {
	BeforeNode(backend, client *ir.Node) error
	AfterNode(backend, client *ir.Node) error
	BeforeProperty(key string) error
	AfterProperty(key string) error
	BeforeListElement(backendIndex, clientIndex int) error
	AfterListElement(backendIndex, clientIndex int) error
}

// Traverse walks backend and client together, driving v. Both roots must be
// objects. Children are enumerated after BeforeNode returns, so content the
// visitor moves between the two nodes is walked in its new position.
func Traverse(backend, client *ir.Node, v DualVisitor) error {
	return traverseNode(backend, client, v)
}

func traverseNode(backend, client *ir.Node, v DualVisitor) error {
	if debug.Traverse() {
		debug.Logf("traverse node %s\n", client.Path())
	}
	if err := v.BeforeNode(backend, client); err != nil {
		return err
	}
	// no cached child list: BeforeNode may have exchanged the nodes' contents
	for i := 0; i < len(client.Fields); i++ {
		key := client.Fields[i].String
		clientVal := client.Values[i]
		backendVal := backend.Get(key)
		if backendVal == nil {
			continue
		}
		switch {
		case clientVal.Type == ir.ObjectType && backendVal.Type == ir.ObjectType:
			if err := v.BeforeProperty(key); err != nil {
				return err
			}
			if err := traverseNode(backendVal, clientVal, v); err != nil {
				return err
			}
			if err := v.AfterProperty(key); err != nil {
				return err
			}
		case clientVal.Type == ir.ArrayType && backendVal.Type == ir.ArrayType:
			if err := v.BeforeProperty(key); err != nil {
				return err
			}
			if err := traverseList(backendVal, clientVal, v); err != nil {
				return err
			}
			if err := v.AfterProperty(key); err != nil {
				return err
			}
		}
	}
	return v.AfterNode(backend, client)
}

func traverseList(backend, client *ir.Node, v DualVisitor) error {
	n := min(len(backend.Values), len(client.Values))
	for i := 0; i < n; i++ {
		backendVal := backend.Values[i]
		clientVal := client.Values[i]
		switch {
		case clientVal.Type == ir.ObjectType && backendVal.Type == ir.ObjectType:
			if err := v.BeforeListElement(i, i); err != nil {
				return err
			}
			if err := traverseNode(backendVal, clientVal, v); err != nil {
				return err
			}
			if err := v.AfterListElement(i, i); err != nil {
				return err
			}
		case clientVal.Type == ir.ArrayType && backendVal.Type == ir.ArrayType:
			if err := v.BeforeListElement(i, i); err != nil {
				return err
			}
			if err := traverseList(backendVal, clientVal, v); err != nil {
				return err
			}
			if err := v.AfterListElement(i, i); err != nil {
				return err
			}
		}
	}
	return nil
}
