package snapshot_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
)

// recordingVisitor records every callback as "kind(path,isRoot)".
type recordingVisitor struct {
	calls   []string
	results map[string]snapshot.VisitResult
}

func (rv *recordingVisitor) EnterDirectory(directory *snapshot.DirectorySnapshot, isRoot bool) {
	rv.calls = append(rv.calls, fmt.Sprintf("enter(%s,%t)", directory.Path(), isRoot))
}

func (rv *recordingVisitor) VisitEntry(node snapshot.Node, isRoot bool) snapshot.VisitResult {
	rv.calls = append(rv.calls, fmt.Sprintf("visit(%s,%t)", node.Path(), isRoot))
	if result, ok := rv.results[node.Path()]; ok {
		return result
	}
	return snapshot.Continue
}

func (rv *recordingVisitor) LeaveDirectory(directory *snapshot.DirectorySnapshot, isRoot bool) {
	rv.calls = append(rv.calls, fmt.Sprintf("leave(%s,%t)", directory.Path(), isRoot))
}

func newFile(path string, content string) *snapshot.RegularFileSnapshot {
	meta := data.NewFileMetadata(int64(len(content)), 0644, time.Unix(1700000000, 0))
	return snapshot.NewRegularFile(path, meta, data.HashBytes([]byte(content)))
}

func newDir(tst *testing.T, path string, children ...snapshot.Node) *snapshot.DirectorySnapshot {
	tst.Helper()

	dir, err := snapshot.NewDirectory(path, data.NewDirectoryMetadata(0755, time.Unix(1700000000, 0)), children)
	if err != nil {
		tst.Fatalf("NewDirectory(%s) failed: %v", path, err)
	}
	return dir
}

// sampleTree builds /root {a.txt, sub {b.txt}}.
func sampleTree(tst *testing.T) *snapshot.DirectorySnapshot {
	return newDir(tst, "/root",
		newFile("/root/a.txt", "a"),
		newDir(tst, "/root/sub",
			newFile("/root/sub/b.txt", "b"),
		),
	)
}

func equalCalls(tst *testing.T, got, expected []string) {
	tst.Helper()

	if len(got) != len(expected) {
		tst.Fatalf("Expected %d calls, got %d:\n  expected: %v\n  got:      %v", len(expected), len(got), expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			tst.Errorf("Call %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

// expectPanic runs fn and returns the recovered value.
func expectPanic(tst *testing.T, fn func()) (recovered any) {
	tst.Helper()

	defer func() {
		recovered = recover()
		if recovered == nil {
			tst.Fatalf("Expected panic, got none")
		}
	}()

	fn()
	return nil
}
