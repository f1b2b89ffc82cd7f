package snapshot

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/mwantia/snapshot/data"
)

// DirectorySnapshot is a captured directory owning its ordered children.
type DirectorySnapshot struct {
	entry

	metadata    *data.FileMetadata
	fingerprint data.Fingerprint
	children    []Node
}

// NewDirectory creates a directory snapshot from its immediate children.
// The children are copied and sorted by name; every child must live directly
// beneath path and names must be unique.
func NewDirectory(dirPath string, metadata *data.FileMetadata, children []Node) (*DirectorySnapshot, error) {
	sorted := slices.Clone(children)
	slices.SortFunc(sorted, func(a, b Node) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for i, child := range sorted {
		if path.Dir(child.Path()) != dirPath {
			return nil, fmt.Errorf("%w: '%s' is not a child of '%s'", ErrInvalidTree, child.Path(), dirPath)
		}
		if i > 0 && sorted[i-1].Name() == child.Name() {
			return nil, fmt.Errorf("%w: duplicate entry '%s'", ErrInvalidTree, child.Path())
		}
	}

	if metadata == nil {
		metadata = data.NewDirectoryMetadata(0755, time.Time{})
	}

	return &DirectorySnapshot{
		entry:       newEntry(dirPath),
		metadata:    metadata,
		fingerprint: directoryFingerprint(sorted),
		children:    sorted,
	}, nil
}

func (*DirectorySnapshot) Type() data.FileType {
	return data.FileTypeDirectory
}

func (ds *DirectorySnapshot) Metadata() *data.FileMetadata {
	return ds.metadata
}

func (ds *DirectorySnapshot) Fingerprint() data.Fingerprint {
	return ds.fingerprint
}

// Children returns the immediate children ordered by name.
// The returned slice must not be modified.
func (ds *DirectorySnapshot) Children() []Node {
	return ds.children
}

// Child returns the immediate child with the given name.
func (ds *DirectorySnapshot) Child(name string) (Node, bool) {
	idx, found := slices.BinarySearchFunc(ds.children, name, func(n Node, name string) int {
		return strings.Compare(n.Name(), name)
	})
	if !found {
		return nil, false
	}
	return ds.children[idx], true
}

// Accept visits the directory before entering it, so that VisitEntry and the
// enter/leave pair observe the same nesting depth. Children are only walked
// when VisitEntry returned Continue; LeaveDirectory fires unless the walk
// was terminated.
func (ds *DirectorySnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	result := visitor.VisitEntry(ds)
	if result == Terminate {
		return Terminate
	}

	visitor.EnterDirectory(ds)
	if result == Continue {
		for _, child := range ds.children {
			if child.Accept(visitor) == Terminate {
				return Terminate
			}
		}
	}
	visitor.LeaveDirectory(ds)

	return Continue
}

func directoryFingerprint(children []Node) data.Fingerprint {
	parts := make([]string, 0, len(children)*3)
	for _, child := range children {
		parts = append(parts, child.Name(), child.Type().String(), child.Fingerprint().String())
	}
	return data.HashStrings(parts...)
}
