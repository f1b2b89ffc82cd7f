package snapshot

import (
	"github.com/mwantia/snapshot/data"
)

// RegularFileSnapshot is a captured regular file.
type RegularFileSnapshot struct {
	entry

	metadata    *data.FileMetadata
	fingerprint data.Fingerprint
}

// NewRegularFile creates a snapshot for the file at path.
func NewRegularFile(path string, metadata *data.FileMetadata, fingerprint data.Fingerprint) *RegularFileSnapshot {
	return &RegularFileSnapshot{
		entry:       newEntry(path),
		metadata:    metadata,
		fingerprint: fingerprint,
	}
}

func (*RegularFileSnapshot) Type() data.FileType {
	return data.FileTypeRegularFile
}

func (fs *RegularFileSnapshot) Metadata() *data.FileMetadata {
	return fs.metadata
}

func (fs *RegularFileSnapshot) Fingerprint() data.Fingerprint {
	return fs.fingerprint
}

// Size returns the captured size in bytes.
func (fs *RegularFileSnapshot) Size() int64 {
	if fs.metadata == nil {
		return 0
	}
	return fs.metadata.Size
}

func (fs *RegularFileSnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	return acceptLeaf(fs, visitor)
}

// MissingSnapshot records that nothing existed at a path.
type MissingSnapshot struct {
	entry
}

// NewMissing creates a snapshot for a path that did not exist.
func NewMissing(path string) *MissingSnapshot {
	return &MissingSnapshot{
		entry: newEntry(path),
	}
}

func (*MissingSnapshot) Type() data.FileType {
	return data.FileTypeMissing
}

func (*MissingSnapshot) Metadata() *data.FileMetadata {
	return nil
}

func (*MissingSnapshot) Fingerprint() data.Fingerprint {
	return ""
}

func (ms *MissingSnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	return acceptLeaf(ms, visitor)
}

// UnavailableSnapshot records a path that existed but could not be read,
// for example because of missing permissions or an unsupported file type.
type UnavailableSnapshot struct {
	entry

	reason string
}

// NewUnavailable creates a snapshot for an unreadable path.
func NewUnavailable(path string, reason string) *UnavailableSnapshot {
	return &UnavailableSnapshot{
		entry:  newEntry(path),
		reason: reason,
	}
}

func (*UnavailableSnapshot) Type() data.FileType {
	return data.FileTypeUnavailable
}

func (*UnavailableSnapshot) Metadata() *data.FileMetadata {
	return nil
}

func (*UnavailableSnapshot) Fingerprint() data.Fingerprint {
	return ""
}

// Reason describes why the path could not be read.
func (us *UnavailableSnapshot) Reason() string {
	return us.reason
}

func (us *UnavailableSnapshot) Accept(visitor HierarchyVisitor) VisitResult {
	return acceptLeaf(us, visitor)
}
