package capture_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/capture"
	"github.com/mwantia/snapshot/data"
)

func writeTree(tst *testing.T, files map[string]string) string {
	tst.Helper()

	root := tst.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			tst.Fatalf("MkdirAll failed: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			tst.Fatalf("WriteFile failed: %v", err)
		}
	}
	return root
}

func relativePaths(root snapshot.Node) map[string]snapshot.Node {
	paths := make(map[string]snapshot.Node)
	snapshot.Walk(root, snapshot.AsRelativePathVisitor(snapshot.RelativePathVisitorFunc(func(node snapshot.Node, rel []string) snapshot.VisitResult {
		key := "."
		if len(rel) > 0 {
			key = filepath.ToSlash(filepath.Join(rel...))
		}
		paths[key] = node
		return snapshot.Continue
	})))
	return paths
}

func TestCapture_Directory(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
		"sub/c.txt": "",
	})

	capturer, err := capture.NewCapturer()
	if err != nil {
		t.Fatalf("NewCapturer failed: %v", err)
	}

	root, err := capturer.Capture(t.Context(), dir)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	if root.Type() != data.FileTypeDirectory {
		t.Fatalf("Expected directory root, got %s", root.Type())
	}

	paths := relativePaths(root)
	for _, expected := range []string{".", "a.txt", "sub", "sub/b.txt", "sub/c.txt"} {
		if _, ok := paths[expected]; !ok {
			t.Errorf("Expected entry %s, got %v", expected, paths)
		}
	}

	file := paths["a.txt"]
	if file.Fingerprint() != data.HashBytes([]byte("hello")) {
		t.Errorf("Unexpected fingerprint %s", file.Fingerprint())
	}
	if file.Metadata().Size != 5 {
		t.Errorf("Expected size 5, got %d", file.Metadata().Size)
	}

	stats := snapshot.Count(root)
	if stats.Directories != 2 || stats.Files != 3 || stats.Bytes != 10 {
		t.Errorf("Unexpected stats: %v", stats)
	}
}

func TestCapture_SameContentSameFingerprint(t *testing.T) {
	files := map[string]string{"x/y.txt": "same", "z.txt": "content"}

	capturer, _ := capture.NewCapturer()
	first, err := capturer.Capture(t.Context(), writeTree(t, files))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	second, err := capturer.Capture(t.Context(), writeTree(t, files))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	if first.Fingerprint() != second.Fingerprint() {
		t.Errorf("Expected equal fingerprints for equal trees")
	}
}

func TestCapture_SingleFileAndMissing(t *testing.T) {
	dir := writeTree(t, map[string]string{"only.txt": "x"})
	capturer, _ := capture.NewCapturer()

	file, err := capturer.Capture(t.Context(), filepath.Join(dir, "only.txt"))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if file.Type() != data.FileTypeRegularFile {
		t.Errorf("Expected regular file, got %s", file.Type())
	}

	missing, err := capturer.Capture(t.Context(), filepath.Join(dir, "nothing"))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if missing.Type() != data.FileTypeMissing {
		t.Errorf("Expected missing, got %s", missing.Type())
	}
}

func TestCapture_Ignore(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"keep.txt":        "k",
		"drop.log":        "d",
		".git/HEAD":       "ref",
		"nested/also.log": "d",
	})

	capturer, err := capture.NewCapturer(capture.WithIgnore("*.log", ".git"))
	if err != nil {
		t.Fatalf("NewCapturer failed: %v", err)
	}

	root, err := capturer.Capture(t.Context(), dir)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	paths := relativePaths(root)
	for _, unexpected := range []string{"drop.log", ".git", ".git/HEAD", "nested/also.log"} {
		if _, ok := paths[unexpected]; ok {
			t.Errorf("Expected %s to be ignored", unexpected)
		}
	}
	if _, ok := paths["keep.txt"]; !ok {
		t.Errorf("Expected keep.txt to be captured")
	}
}

func TestCapture_InvalidIgnorePattern(t *testing.T) {
	if _, err := capture.NewCapturer(capture.WithIgnore("[")); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestCapture_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	dir := writeTree(t, map[string]string{"target.txt": "t"})
	if err := os.Symlink(filepath.Join(dir, "target.txt"), filepath.Join(dir, "link")); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "nowhere"), filepath.Join(dir, "dangling")); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}
	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	t.Run("not-followed", func(tst *testing.T) {
		capturer, _ := capture.NewCapturer()
		root, err := capturer.Capture(tst.Context(), dir)
		if err != nil {
			tst.Fatalf("Capture failed: %v", err)
		}

		paths := relativePaths(root)
		if paths["link"].Type() != data.FileTypeUnavailable {
			tst.Errorf("Expected unavailable link, got %s", paths["link"].Type())
		}
	})

	t.Run("followed", func(tst *testing.T) {
		capturer, _ := capture.NewCapturer(capture.WithFollowSymlinks())
		root, err := capturer.Capture(tst.Context(), dir)
		if err != nil {
			tst.Fatalf("Capture failed: %v", err)
		}

		paths := relativePaths(root)
		if paths["link"].Type() != data.FileTypeRegularFile {
			tst.Errorf("Expected followed link to be a file, got %s", paths["link"].Type())
		}
		if paths["link"].Metadata().Access != data.AccessViaSymlink {
			tst.Errorf("Expected access via symlink")
		}
		if paths["dangling"].Type() != data.FileTypeMissing {
			tst.Errorf("Expected dangling link to be missing, got %s", paths["dangling"].Type())
		}
		if paths["loop"].Type() != data.FileTypeUnavailable {
			tst.Errorf("Expected link cycle to be unavailable, got %s", paths["loop"].Type())
		}
	})
}

func TestCapture_Cancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	capturer, _ := capture.NewCapturer()
	if _, err := capturer.Capture(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
