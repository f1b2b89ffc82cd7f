package capture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
	"github.com/mwantia/snapshot/log"
)

// Capturer reads a directory tree from the local disk into an immutable snapshot.
type Capturer struct {
	options *Options
	log     *log.Logger
}

func NewCapturer(opts ...Option) (*Capturer, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, fmt.Errorf("%w: %v", data.ErrInvalid, err)
		}
	}

	return &Capturer{
		options: options,
		log:     options.Logger.Named("capture"),
	}, nil
}

// Capture snapshots the entry at root. A root that does not exist yields a
// MissingSnapshot and an unreadable root an UnavailableSnapshot; only context
// cancellation and invalid arguments are returned as errors.
func (c *Capturer) Capture(ctx context.Context, root string) (snapshot.Node, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidPath, err)
	}

	builder := snapshot.NewBuilder()
	walk := &walk{
		capturer: c,
		builder:  builder,
		visited:  make(map[string]bool),
	}

	if err := walk.entry(ctx, abs, toSnapshotPath(abs)); err != nil {
		return nil, err
	}

	result, err := builder.Result()
	if err != nil {
		return nil, err
	}

	stats := snapshot.Count(result)
	c.log.Info("Captured '%s': %s", abs, stats)
	if walk.errs.Len() > 0 {
		c.log.Warn("Captured '%s' with %d unreadable entries", abs, walk.errs.Len())
		c.log.Debug("Unreadable entries: %v", walk.errs.Errors())
	}

	return result, nil
}

type walk struct {
	capturer *Capturer
	builder  *snapshot.Builder
	errs     data.Errors
	// resolved directories, used to break symlink cycles
	visited map[string]bool
}

func (w *walk) entry(ctx context.Context, diskPath, snapshotPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Lstat(diskPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return w.builder.VisitMissing(snapshotPath)
		}
		return w.unavailable(snapshotPath, err)
	}

	access := data.AccessDirect
	if info.Mode()&fs.ModeSymlink != 0 {
		if !w.capturer.options.FollowSymlinks {
			return w.unavailable(snapshotPath, fmt.Errorf("symbolic link"))
		}

		info, err = os.Stat(diskPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Dangling link
				return w.builder.VisitMissing(snapshotPath)
			}
			return w.unavailable(snapshotPath, err)
		}
		access = data.AccessViaSymlink
	}

	switch {
	case info.IsDir():
		return w.directory(ctx, diskPath, snapshotPath, info, access)
	case info.Mode().IsRegular():
		return w.file(diskPath, snapshotPath, info, access)
	default:
		return w.unavailable(snapshotPath, fmt.Errorf("unsupported file type %s", info.Mode().Type()))
	}
}

func (w *walk) directory(ctx context.Context, diskPath, snapshotPath string, info fs.FileInfo, access data.AccessType) error {
	resolved, err := filepath.EvalSymlinks(diskPath)
	if err != nil {
		return w.unavailable(snapshotPath, err)
	}
	if w.visited[resolved] {
		return w.unavailable(snapshotPath, fmt.Errorf("symbolic link cycle"))
	}

	entries, err := os.ReadDir(diskPath)
	if err != nil {
		return w.unavailable(snapshotPath, err)
	}

	meta := data.NewDirectoryMetadata(data.FileMode(info.Mode().Perm()), info.ModTime())
	meta.Access = access
	if err := w.builder.EnterDirectory(snapshotPath, meta); err != nil {
		return err
	}

	w.visited[resolved] = true
	defer delete(w.visited, resolved)

	for _, entry := range entries {
		if w.ignored(entry.Name()) {
			w.capturer.log.Debug("Ignoring '%s'", filepath.Join(diskPath, entry.Name()))
			continue
		}

		childDisk := filepath.Join(diskPath, entry.Name())
		if err := w.entry(ctx, childDisk, data.JoinPath(snapshotPath, entry.Name())); err != nil {
			return err
		}
	}

	_, err = w.builder.LeaveDirectory()
	return err
}

func (w *walk) file(diskPath, snapshotPath string, info fs.FileInfo, access data.AccessType) error {
	file, err := os.Open(diskPath)
	if err != nil {
		return w.unavailable(snapshotPath, err)
	}
	defer file.Close()

	fingerprint, size, err := data.HashReader(file, w.capturer.options.HashBufferSize)
	if err != nil {
		return w.unavailable(snapshotPath, err)
	}

	meta := data.NewFileMetadata(size, data.FileMode(info.Mode().Perm()), info.ModTime())
	meta.Access = access

	return w.builder.VisitFile(snapshotPath, meta, fingerprint)
}

func (w *walk) unavailable(snapshotPath string, cause error) error {
	w.errs.Add(fmt.Errorf("%s: %w", snapshotPath, cause))
	w.capturer.log.Debug("Unable to read '%s': %v", snapshotPath, cause)

	return w.builder.VisitUnavailable(snapshotPath, cause.Error())
}

func (w *walk) ignored(name string) bool {
	for _, pattern := range w.capturer.options.Ignore {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// toSnapshotPath converts an absolute disk path into the slash-separated form
// used by snapshots. Volume names are kept as the first segment.
func toSnapshotPath(abs string) string {
	p := filepath.ToSlash(abs)
	cleaned, err := data.CleanPath(p)
	if err != nil {
		return "/"
	}
	return cleaned
}
