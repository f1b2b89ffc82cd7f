package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
)

// Backend persists captured snapshot trees under generated record IDs.
type Backend interface {
	// Name returns the identifier name defined for this backend.
	Name() string

	// Open is part of the lifecycle behaviour and gets called before first use.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and releases all resources.
	// Every later call returns data.ErrClosed.
	Close(ctx context.Context) error

	// Put stores root and returns the created record.
	Put(ctx context.Context, root snapshot.Node) (*Record, error)

	// Get returns the record with the given ID including its tree.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) error

	// List returns all records ordered by ID, without their trees.
	List(ctx context.Context) ([]*Record, error)

	// Lookup returns the node stored at path within the record.
	Lookup(ctx context.Context, id string, path string) (snapshot.Node, error)
}

// Record describes one stored snapshot tree.
type Record struct {
	ID        string     `json:"id"`
	RootPath  string     `json:"root_path"`
	CreatedAt time.Time  `json:"created_at"`
	Stats     data.Stats `json:"stats"`

	// Root is nil for records returned by List.
	Root snapshot.Node `json:"-"`
}

// NewRecord prepares a record for root with a fresh time-ordered ID.
func NewRecord(root snapshot.Node) *Record {
	return &Record{
		ID:        NewRecordID(),
		RootPath:  root.Path(),
		CreatedAt: time.Now(),
		Stats:     snapshot.Count(root),
		Root:      root,
	}
}

// NewRecordID generates a UUIDv7, so IDs sort by creation time.
func NewRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Summary returns a copy of the record without its tree.
func (r *Record) Summary() *Record {
	clone := *r
	clone.Root = nil
	return &clone
}
