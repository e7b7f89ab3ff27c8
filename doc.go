// Package conftree works with tree-shaped configuration data: ordered
// object trees parsed from YAML or JSON, patched with JSON patches, diffed,
// queried, and merged under hash-based optimistic locking.
//
// The typical update cycle against a backend-held configuration:
//
//	backend := parse.Parse(stored)        // hashes stamped by the backend
//	client := backend.Clone()
//	olock.Rebase(client)                  // record baselines before editing
//	client, _ = conftree.Patch(client, edits)
//	olock.Stamp(client)                   // fresh hashes over the edits
//	merged, err := conftree.Merge(backend, client)
//
// A *olock.ConflictError from Merge means a lock-protected subtree changed
// both on the backend and in the client's edit; the caller re-reads and
// retries.
package conftree
