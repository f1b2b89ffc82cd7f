package store

import (
	"fmt"
	"time"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
)

// Entry is the flat form of one snapshot node, as written by storage backends.
type Entry struct {
	Position    int              `json:"position"`
	Path        string           `json:"path"`
	Parent      string           `json:"parent"`
	Type        data.FileType    `json:"type"`
	Size        int64            `json:"size"`
	Mode        data.FileMode    `json:"mode"`
	ModifyTime  time.Time        `json:"modify_time"`
	Access      data.AccessType  `json:"access"`
	Fingerprint data.Fingerprint `json:"fingerprint"`
	Reason      string           `json:"reason,omitempty"`
	IsRoot      bool             `json:"is_root"`
}

// Flatten lists every node of root in visit order. The root entry is marked
// and has no parent; every other entry references its enclosing directory.
func Flatten(root snapshot.Node) []Entry {
	visitor := &flattenVisitor{}
	snapshot.Walk(root, visitor)

	return visitor.entries
}

type flattenVisitor struct {
	entries []Entry
	parents []string
}

func (fv *flattenVisitor) EnterDirectory(directory *snapshot.DirectorySnapshot, isRoot bool) {
	fv.parents = append(fv.parents, directory.Path())
}

func (fv *flattenVisitor) VisitEntry(node snapshot.Node, isRoot bool) snapshot.VisitResult {
	entry := Entry{
		Position:    len(fv.entries),
		Path:        node.Path(),
		Type:        node.Type(),
		Fingerprint: node.Fingerprint(),
		IsRoot:      isRoot,
	}

	if !isRoot {
		entry.Parent = fv.parents[len(fv.parents)-1]
	}

	if meta := node.Metadata(); meta != nil {
		entry.Size = meta.Size
		entry.Mode = meta.Mode
		entry.ModifyTime = meta.ModifyTime
		entry.Access = meta.Access
	}

	if unavailable, ok := node.(*snapshot.UnavailableSnapshot); ok {
		entry.Reason = unavailable.Reason()
	}

	fv.entries = append(fv.entries, entry)
	return snapshot.Continue
}

func (fv *flattenVisitor) LeaveDirectory(directory *snapshot.DirectorySnapshot, isRoot bool) {
	fv.parents = fv.parents[:len(fv.parents)-1]
}

// Rebuild reverses Flatten. Entries must be in visit order with the root first.
// Directory fingerprints are recomputed and compared with the stored ones.
func Rebuild(entries []Entry) (snapshot.Node, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", snapshot.ErrInvalidTree)
	}
	if !entries[0].IsRoot {
		return nil, fmt.Errorf("%w: first entry '%s' is not the root", snapshot.ErrInvalidTree, entries[0].Path)
	}

	builder := snapshot.NewBuilder()
	expected := make(map[string]data.Fingerprint)
	var open []string

	leave := func() error {
		dir, err := builder.LeaveDirectory()
		if err != nil {
			return err
		}
		open = open[:len(open)-1]

		if stored := expected[dir.Path()]; stored != dir.Fingerprint() {
			return fmt.Errorf("%w: fingerprint mismatch for '%s'", snapshot.ErrInvalidTree, dir.Path())
		}
		return nil
	}

	for i, entry := range entries {
		if i > 0 && entry.IsRoot {
			return nil, fmt.Errorf("%w: second root '%s'", snapshot.ErrInvalidTree, entry.Path)
		}

		for len(open) > 0 && open[len(open)-1] != entry.Parent {
			if err := leave(); err != nil {
				return nil, err
			}
		}
		if !entry.IsRoot && len(open) == 0 {
			return nil, fmt.Errorf("%w: parent '%s' of '%s' not found", snapshot.ErrInvalidTree, entry.Parent, entry.Path)
		}

		var err error
		switch entry.Type {
		case data.FileTypeDirectory:
			meta := &data.FileMetadata{Mode: entry.Mode, ModifyTime: entry.ModifyTime, Access: entry.Access}
			if err = builder.EnterDirectory(entry.Path, meta); err == nil {
				open = append(open, entry.Path)
				expected[entry.Path] = entry.Fingerprint
			}
		case data.FileTypeRegularFile:
			meta := &data.FileMetadata{Size: entry.Size, Mode: entry.Mode, ModifyTime: entry.ModifyTime, Access: entry.Access}
			err = builder.VisitFile(entry.Path, meta, entry.Fingerprint)
		case data.FileTypeMissing:
			err = builder.VisitMissing(entry.Path)
		case data.FileTypeUnavailable:
			err = builder.VisitUnavailable(entry.Path, entry.Reason)
		default:
			err = fmt.Errorf("%w: unknown type %d for '%s'", data.ErrInvalid, entry.Type, entry.Path)
		}
		if err != nil {
			return nil, err
		}
	}

	for len(open) > 0 {
		if err := leave(); err != nil {
			return nil, err
		}
	}

	return builder.Result()
}
