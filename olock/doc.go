// Package olock implements hash-based optimistic locking for configuration
// trees.
//
// A node is lock-protected when it carries the "#hash" attribute. The
// backend stamps every lock-protected node with a content hash before
// serving a tree (Stamp). A client that wants to update configuration
// rebases the tree it read (Rebase), which records every "#hash" value as
// the "#old_hash" baseline, then edits the content and stamps fresh hashes
// before submitting. Merge then walks the backend's current tree and the
// client's submitted tree together and, per lock-protected subtree, keeps
// the client's edit, adopts a concurrent backend change, or rejects the
// whole update with a ConflictError.
//
// Merge mutates both trees; on success the client tree holds the merged
// result and neither input is reusable as its original version.
package olock
