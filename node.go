package snapshot

import (
	"github.com/mwantia/snapshot/data"
)

// Node is an immutable snapshot of a single file system path, captured at
// one point in time. Nodes are safe to share across concurrent traversals.
type Node interface {
	// Path returns the absolute, slash-separated path of the entry.
	Path() string

	// Name returns the base name of the entry.
	Name() string

	// Type returns the kind of entry that was captured.
	Type() data.FileType

	// Metadata returns the captured attributes.
	// It is nil for missing and unavailable entries.
	Metadata() *data.FileMetadata

	// Fingerprint identifies the captured content.
	// Directories combine the fingerprints of their children.
	Fingerprint() data.Fingerprint

	// Accept walks the node and its descendants depth-first, invoking the
	// visitor at every entry. It returns Terminate if the visitor stopped
	// the walk and Continue otherwise.
	Accept(visitor HierarchyVisitor) VisitResult
}

// entry holds the fields shared by all snapshot variants.
type entry struct {
	path string
	name string
}

func newEntry(path string) entry {
	return entry{
		path: path,
		name: data.BaseName(path),
	}
}

func (e *entry) Path() string {
	return e.path
}

func (e *entry) Name() string {
	return e.name
}

// acceptLeaf drives a visitor over an entry without children.
func acceptLeaf(node Node, visitor HierarchyVisitor) VisitResult {
	if visitor.VisitEntry(node) == Terminate {
		return Terminate
	}
	return Continue
}
