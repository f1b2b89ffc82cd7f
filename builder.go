package snapshot

import (
	"fmt"

	"github.com/mwantia/snapshot/data"
)

// Builder assembles an immutable snapshot tree from a depth-first sequence of
// entries, as produced by a capture walk. Directories are completed, and their
// fingerprint computed, when they are left.
type Builder struct {
	stack  []*pendingDirectory
	result Node
}

type pendingDirectory struct {
	path     string
	metadata *data.FileMetadata
	children []Node
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// EnterDirectory opens a new directory beneath the current one.
func (b *Builder) EnterDirectory(path string, metadata *data.FileMetadata) error {
	if err := b.checkPlacement(path); err != nil {
		return err
	}

	b.stack = append(b.stack, &pendingDirectory{
		path:     path,
		metadata: metadata,
	})
	return nil
}

// Add places a finished node into the current directory. Without any open
// directory the node becomes the result.
func (b *Builder) Add(node Node) error {
	if err := b.checkPlacement(node.Path()); err != nil {
		return err
	}

	if len(b.stack) == 0 {
		b.result = node
		return nil
	}

	current := b.stack[len(b.stack)-1]
	current.children = append(current.children, node)
	return nil
}

// VisitFile adds a regular file to the current directory.
func (b *Builder) VisitFile(path string, metadata *data.FileMetadata, fingerprint data.Fingerprint) error {
	return b.Add(NewRegularFile(path, metadata, fingerprint))
}

// VisitMissing adds a missing entry to the current directory.
func (b *Builder) VisitMissing(path string) error {
	return b.Add(NewMissing(path))
}

// VisitUnavailable adds an unreadable entry to the current directory.
func (b *Builder) VisitUnavailable(path string, reason string) error {
	return b.Add(NewUnavailable(path, reason))
}

// LeaveDirectory completes the current directory and adds it to its parent.
func (b *Builder) LeaveDirectory() (*DirectorySnapshot, error) {
	if len(b.stack) == 0 {
		return nil, fmt.Errorf("%w: no directory to leave", data.ErrInvalid)
	}

	current := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	directory, err := NewDirectory(current.path, current.metadata, current.children)
	if err != nil {
		return nil, err
	}

	if len(b.stack) == 0 {
		b.result = directory
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.children = append(parent.children, directory)
	}

	return directory, nil
}

// Result returns the finished tree.
func (b *Builder) Result() (Node, error) {
	if len(b.stack) > 0 {
		return nil, fmt.Errorf("%w: directory '%s' not left", data.ErrInvalid, b.stack[len(b.stack)-1].path)
	}
	if b.result == nil {
		return nil, fmt.Errorf("%w: nothing was built", data.ErrInvalid)
	}

	return b.result, nil
}

func (b *Builder) checkPlacement(path string) error {
	if len(b.stack) == 0 {
		if b.result != nil {
			return fmt.Errorf("%w: root already built", data.ErrInvalid)
		}
		return nil
	}

	current := b.stack[len(b.stack)-1].path
	if path == current || !data.HasPathPrefix(path, current) {
		return fmt.Errorf("%w: '%s' is not beneath '%s'", ErrInvalidTree, path, current)
	}
	return nil
}
