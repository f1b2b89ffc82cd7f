package snapshot_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
)

func TestBuilder_BuildsTree(t *testing.T) {
	builder := snapshot.NewBuilder()
	now := time.Unix(1700000000, 0)

	steps := []error{
		builder.EnterDirectory("/root", data.NewDirectoryMetadata(0755, now)),
		builder.VisitFile("/root/z.txt", data.NewFileMetadata(1, 0644, now), data.HashBytes([]byte("z"))),
		builder.EnterDirectory("/root/sub", nil),
		builder.VisitMissing("/root/sub/gone"),
		builder.VisitUnavailable("/root/sub/locked", "permission denied"),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}

	if _, err := builder.LeaveDirectory(); err != nil {
		t.Fatalf("LeaveDirectory failed: %v", err)
	}
	if _, err := builder.Result(); err == nil {
		t.Errorf("Expected error for unfinished root")
	}
	if _, err := builder.LeaveDirectory(); err != nil {
		t.Fatalf("LeaveDirectory failed: %v", err)
	}

	root, err := builder.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}

	dir, ok := root.(*snapshot.DirectorySnapshot)
	if !ok {
		t.Fatalf("Expected directory root, got %T", root)
	}

	names := make([]string, 0)
	for _, child := range dir.Children() {
		names = append(names, child.Name())
	}
	if len(names) != 2 || names[0] != "sub" || names[1] != "z.txt" {
		t.Errorf("Expected children sorted [sub z.txt], got %v", names)
	}

	stats := snapshot.Count(root)
	if stats.Directories != 2 || stats.Files != 1 || stats.Missing != 1 || stats.Unavailable != 1 {
		t.Errorf("Unexpected stats: %v", stats)
	}
}

func TestBuilder_Rejects(t *testing.T) {
	t.Run("outside-directory", func(tst *testing.T) {
		builder := snapshot.NewBuilder()
		builder.EnterDirectory("/root", nil)

		if err := builder.VisitMissing("/other/file"); !errors.Is(err, snapshot.ErrInvalidTree) {
			tst.Errorf("Expected ErrInvalidTree, got %v", err)
		}
	})

	t.Run("leave-without-enter", func(tst *testing.T) {
		builder := snapshot.NewBuilder()

		if _, err := builder.LeaveDirectory(); !errors.Is(err, data.ErrInvalid) {
			tst.Errorf("Expected ErrInvalid, got %v", err)
		}
	})

	t.Run("second-root", func(tst *testing.T) {
		builder := snapshot.NewBuilder()
		if err := builder.VisitMissing("/a"); err != nil {
			tst.Fatalf("VisitMissing failed: %v", err)
		}

		if err := builder.VisitMissing("/b"); !errors.Is(err, data.ErrInvalid) {
			tst.Errorf("Expected ErrInvalid, got %v", err)
		}
	})

	t.Run("empty", func(tst *testing.T) {
		if _, err := snapshot.NewBuilder().Result(); !errors.Is(err, data.ErrInvalid) {
			tst.Errorf("Expected ErrInvalid, got %v", err)
		}
	})
}

func TestNewDirectory_Validation(t *testing.T) {
	if _, err := snapshot.NewDirectory("/root", nil, []snapshot.Node{
		snapshot.NewMissing("/root/a/b"),
	}); !errors.Is(err, snapshot.ErrInvalidTree) {
		t.Errorf("Expected ErrInvalidTree for grandchild, got %v", err)
	}

	if _, err := snapshot.NewDirectory("/root", nil, []snapshot.Node{
		snapshot.NewMissing("/root/a"),
		newFile("/root/a", "a"),
	}); !errors.Is(err, snapshot.ErrInvalidTree) {
		t.Errorf("Expected ErrInvalidTree for duplicate, got %v", err)
	}
}

func TestDirectory_Fingerprint(t *testing.T) {
	first := newDir(t, "/root", newFile("/root/a.txt", "a"), newFile("/root/b.txt", "b"))
	reordered := newDir(t, "/other", newFile("/other/b.txt", "b"), newFile("/other/a.txt", "a"))
	changed := newDir(t, "/root", newFile("/root/a.txt", "a"), newFile("/root/b.txt", "B"))

	if first.Fingerprint() != reordered.Fingerprint() {
		t.Errorf("Expected same fingerprint regardless of input order and location")
	}
	if first.Fingerprint() == changed.Fingerprint() {
		t.Errorf("Expected different fingerprint after content change")
	}
}
