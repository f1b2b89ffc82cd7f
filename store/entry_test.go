package store

import (
	"errors"
	"testing"
	"time"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
)

func buildTree(tst *testing.T) snapshot.Node {
	tst.Helper()

	now := time.Unix(1700000000, 0)
	builder := snapshot.NewBuilder()

	steps := []error{
		builder.EnterDirectory("/root", data.NewDirectoryMetadata(0755, now)),
		builder.VisitFile("/root/a.txt", data.NewFileMetadata(1, 0644, now), data.HashBytes([]byte("a"))),
		builder.EnterDirectory("/root/sub", data.NewDirectoryMetadata(0700, now)),
		builder.VisitFile("/root/sub/b.txt", data.NewFileMetadata(2, 0600, now), data.HashBytes([]byte("bb"))),
		builder.VisitMissing("/root/sub/gone"),
		builder.VisitUnavailable("/root/sub/locked", "permission denied"),
	}
	for i, err := range steps {
		if err != nil {
			tst.Fatalf("Step %d failed: %v", i, err)
		}
	}
	if _, err := builder.LeaveDirectory(); err != nil {
		tst.Fatalf("LeaveDirectory failed: %v", err)
	}
	if _, err := builder.LeaveDirectory(); err != nil {
		tst.Fatalf("LeaveDirectory failed: %v", err)
	}

	root, err := builder.Result()
	if err != nil {
		tst.Fatalf("Result failed: %v", err)
	}
	return root
}

func TestFlatten(t *testing.T) {
	entries := Flatten(buildTree(t))

	expected := []struct {
		path   string
		parent string
		root   bool
	}{
		{"/root", "", true},
		{"/root/a.txt", "/root", false},
		{"/root/sub", "/root", false},
		{"/root/sub/b.txt", "/root/sub", false},
		{"/root/sub/gone", "/root/sub", false},
		{"/root/sub/locked", "/root/sub", false},
	}

	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(entries))
	}
	for i, e := range expected {
		got := entries[i]
		if got.Path != e.path || got.Parent != e.parent || got.IsRoot != e.root || got.Position != i {
			t.Errorf("Entry %d: expected %s (parent %q, root %t), got %+v", i, e.path, e.parent, e.root, got)
		}
	}

	if entries[5].Reason != "permission denied" {
		t.Errorf("Expected reason to be kept, got %q", entries[5].Reason)
	}
}

func TestRebuild_RoundTrip(t *testing.T) {
	root := buildTree(t)

	rebuilt, err := Rebuild(Flatten(root))
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	if rebuilt.Fingerprint() != root.Fingerprint() {
		t.Errorf("Expected fingerprint %s, got %s", root.Fingerprint(), rebuilt.Fingerprint())
	}

	original := snapshot.Collect(root)
	restored := snapshot.Collect(rebuilt)
	if len(original) != len(restored) {
		t.Fatalf("Expected %d nodes, got %d", len(original), len(restored))
	}
	for i := range original {
		if original[i].Path() != restored[i].Path() || original[i].Type() != restored[i].Type() {
			t.Errorf("Node %d: expected %s, got %s", i, original[i].Path(), restored[i].Path())
		}
		if !original[i].Metadata().Equal(restored[i].Metadata()) {
			t.Errorf("Node %d: metadata differs for %s", i, original[i].Path())
		}
	}
}

func TestRebuild_SingleLeaf(t *testing.T) {
	leaf := snapshot.NewMissing("/gone")

	rebuilt, err := Rebuild(Flatten(leaf))
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if rebuilt.Type() != data.FileTypeMissing || rebuilt.Path() != "/gone" {
		t.Errorf("Unexpected node %s %s", rebuilt.Type(), rebuilt.Path())
	}
}

func TestRebuild_Invalid(t *testing.T) {
	entries := Flatten(buildTree(t))

	tests := map[string][]Entry{
		"empty":   nil,
		"no-root": entries[1:],
		"second-root": func() []Entry {
			broken := append([]Entry(nil), entries...)
			broken[2].IsRoot = true
			return broken
		}(),
		"fingerprint": func() []Entry {
			broken := append([]Entry(nil), entries...)
			broken[3].Fingerprint = data.HashBytes([]byte("tampered"))
			return broken
		}(),
		"orphan": func() []Entry {
			broken := append([]Entry(nil), entries...)
			broken[1].Parent = "/elsewhere"
			return broken
		}(),
	}

	for name, broken := range tests {
		t.Run(name, func(tst *testing.T) {
			if _, err := Rebuild(broken); !errors.Is(err, snapshot.ErrInvalidTree) {
				tst.Errorf("Expected ErrInvalidTree, got %v", err)
			}
		})
	}
}
