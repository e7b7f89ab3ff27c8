package olock

import (
	"fmt"

	"github.com/conftree/conftree/debug"
	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/traverse"
)

// ConflictError is returned when a lock-protected subtree was edited by the
// client and changed concurrently on the backend. The whole merge is
// rejected; both input trees are left in a recombined state and must be
// discarded.
type ConflictError struct {
	Path        string
	ClientHash  string
	BackendHash string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot merge %s: client hash %q does not match backend hash %q",
		e.Path, e.ClientHash, e.BackendHash)
}

// Merge merges the backend's current tree and a client's submitted tree.
// The client tree must carry baseline hashes (see Rebase) on every
// lock-protected node. Both trees are mutated; on success the client tree
// is the merged result. A fresh Merger is used per call, so Merge is safe
// for concurrent use on disjoint tree pairs.
func Merge(backend, client *ir.Node) error {
	return traverse.Traverse(backend, client, NewMerger())
}

// Merger implements traverse.DualVisitor over a backend/client tree pair.
// It holds the state of one merge operation and must not be reused.
type Merger struct {
	path []ir.Segment

	// merging records, per traversal depth, whether the backend's content
	// has been adopted as authoritative for the current subtree (an
	// ancestor swap moved it into the client slot). The root frame is
	// false: the client's content is authoritative until a lock says
	// otherwise.
	merging []bool
}

func NewMerger() *Merger {
	return &Merger{merging: []bool{false}}
}

func (m *Merger) BeforeNode(backend, client *ir.Node) error {
	if !client.Has(HashKey) {
		// not lock-protected: inherit the ambient mode
		m.merging = append(m.merging, m.top())
		return nil
	}
	if !m.top() {
		return m.scanNode(backend, client)
	}
	return m.mergeNode(backend, client)
}

func (m *Merger) AfterNode(backend, client *ir.Node) error {
	if len(m.merging) <= 1 {
		panic("olock: node exit without matching enter")
	}
	m.merging = m.merging[:len(m.merging)-1]
	return nil
}

func (m *Merger) BeforeProperty(key string) error {
	m.path = append(m.path, ir.FieldSegment(key))
	return nil
}

func (m *Merger) AfterProperty(key string) error {
	m.popSegment()
	return nil
}

// BeforeListElement records the index of whichever side is currently
// authoritative, so diagnostics name the element the resolver is about to
// treat as the result.
func (m *Merger) BeforeListElement(backendIndex, clientIndex int) error {
	if m.top() {
		m.path = append(m.path, ir.IndexSegment(backendIndex))
	} else {
		m.path = append(m.path, ir.IndexSegment(clientIndex))
	}
	return nil
}

func (m *Merger) AfterListElement(backendIndex, clientIndex int) error {
	m.popSegment()
	return nil
}

// scanNode resolves a lock-protected node while the client's content
// occupies the client slot.
func (m *Merger) scanNode(backend, client *ir.Node) error {
	baseline := baselineHash(client)
	if baseline == currentHash(client) {
		// The client copy is byte-identical to what it read: any change at
		// or below here came from the backend. Adopt the backend's content
		// and keep checking nested locks, which may carry their own edits.
		if debug.Merge() {
			debug.Logf("merge: adopt backend at %s\n", ir.RenderPath(m.path))
		}
		m.merging = append(m.merging, true)
		client.SwapContents(backend)
		return nil
	}
	backendNow := currentHash(backend)
	if baseline == backendNow {
		// The client edited and the backend did not change since the
		// baseline: the edit stands.
		if debug.Merge() {
			debug.Logf("merge: keep client at %s\n", ir.RenderPath(m.path))
		}
		m.merging = append(m.merging, false)
		return nil
	}
	return m.conflict(baseline, backendNow)
}

// mergeNode resolves a lock-protected node after an ancestor swap: the
// backend's content occupies the client slot and the client's own content
// is in the backend handle. Same comparison, roles exchanged.
func (m *Merger) mergeNode(backend, client *ir.Node) error {
	actualClient, actualBackend := backend, client
	baseline := baselineHash(actualClient)
	if baseline == currentHash(actualClient) {
		// client unedited here too: keep merging from the backend
		m.merging = append(m.merging, true)
		return nil
	}
	backendNow := currentHash(actualBackend)
	if baseline == backendNow {
		// a genuine client edit nested inside a backend-dominated subtree:
		// move the client's content back into the result slot
		if debug.Merge() {
			debug.Logf("merge: restore client at %s\n", ir.RenderPath(m.path))
		}
		m.merging = append(m.merging, false)
		actualClient.SwapContents(actualBackend)
		return nil
	}
	return m.conflict(baseline, backendNow)
}

func (m *Merger) conflict(clientHash, backendHash string) error {
	return &ConflictError{
		Path:        ir.RenderPath(m.path),
		ClientHash:  clientHash,
		BackendHash: backendHash,
	}
}

func (m *Merger) top() bool {
	return m.merging[len(m.merging)-1]
}

func (m *Merger) popSegment() {
	if len(m.path) == 0 {
		panic("olock: path exit without matching enter")
	}
	m.path = m.path[:len(m.path)-1]
}

func currentHash(n *ir.Node) string {
	v := n.Get(HashKey)
	if v == nil {
		return ""
	}
	return v.String
}

func baselineHash(n *ir.Node) string {
	v := n.Get(OldHashKey)
	if v == nil {
		panic("olock: lock-protected client node has no baseline hash")
	}
	return v.String
}
