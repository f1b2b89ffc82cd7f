package memory

import (
	"context"
	"sync"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
	"github.com/mwantia/snapshot/store"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps records in process memory. Trees are immutable, so
// they are stored as-is and shared with callers.
type MemoryBackend struct {
	mu     sync.RWMutex
	closed bool

	records *btree.Map[string, *memoryRecord]
}

type memoryRecord struct {
	record *store.Record
	// Path index for fast lookups within the tree
	paths *btree.Map[string, snapshot.Node]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		records: btree.NewMap[string, *memoryRecord](0),
	}
}

// Returns the identifier name defined for this backend
func (*MemoryBackend) Name() string {
	return "memory"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (mb *MemoryBackend) Open(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.closed {
		return data.ErrClosed
	}

	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.records.Clear()
	mb.closed = true

	return nil
}

func (mb *MemoryBackend) Put(ctx context.Context, root snapshot.Node) (*store.Record, error) {
	if root == nil {
		return nil, data.ErrInvalid
	}

	record := store.NewRecord(root)
	paths := btree.NewMap[string, snapshot.Node](0)
	root.Accept(snapshot.HierarchyVisitorFunc(func(node snapshot.Node) snapshot.VisitResult {
		paths.Set(node.Path(), node)
		return snapshot.Continue
	}))

	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.closed {
		return nil, data.ErrClosed
	}
	if _, exists := mb.records.Get(record.ID); exists {
		return nil, data.ErrExist
	}

	mb.records.Set(record.ID, &memoryRecord{
		record: record,
		paths:  paths,
	})

	return record, nil
}

func (mb *MemoryBackend) Get(ctx context.Context, id string) (*store.Record, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	if mb.closed {
		return nil, data.ErrClosed
	}

	rec, exists := mb.records.Get(id)
	if !exists {
		return nil, data.NotExist(id)
	}

	clone := *rec.record
	return &clone, nil
}

func (mb *MemoryBackend) Delete(ctx context.Context, id string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.closed {
		return data.ErrClosed
	}

	if _, deleted := mb.records.Delete(id); !deleted {
		return data.NotExist(id)
	}

	return nil
}

func (mb *MemoryBackend) List(ctx context.Context) ([]*store.Record, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	if mb.closed {
		return nil, data.ErrClosed
	}

	records := make([]*store.Record, 0, mb.records.Len())
	mb.records.Scan(func(id string, rec *memoryRecord) bool {
		records = append(records, rec.record.Summary())
		return true
	})

	return records, nil
}

func (mb *MemoryBackend) Lookup(ctx context.Context, id string, path string) (snapshot.Node, error) {
	cleaned, err := data.CleanPath(path)
	if err != nil {
		return nil, err
	}

	mb.mu.RLock()
	defer mb.mu.RUnlock()

	if mb.closed {
		return nil, data.ErrClosed
	}

	rec, exists := mb.records.Get(id)
	if !exists {
		return nil, data.NotExist(id)
	}

	node, exists := rec.paths.Get(cleaned)
	if !exists {
		return nil, data.NotExist(cleaned)
	}

	return node, nil
}
