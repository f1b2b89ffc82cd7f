package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/data"
	"github.com/mwantia/snapshot/store"
)

func (sb *SQLiteBackend) Put(ctx context.Context, root snapshot.Node) (*store.Record, error) {
	if root == nil {
		return nil, data.ErrInvalid
	}

	record := store.NewRecord(root)
	entries := store.Flatten(root)

	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.closed {
		return nil, data.ErrClosed
	}
	if _, exists := sb.ids.Get(record.ID); exists {
		return nil, data.ErrExist
	}

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_records (id, root_path, created_at, directories, files, missing, unavailable, bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.RootPath, record.CreatedAt.UnixNano(),
		record.Stats.Directories, record.Stats.Files, record.Stats.Missing, record.Stats.Unavailable, record.Stats.Bytes)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_entries (record_id, position, path, parent, type, size, mode, modify_time, access, fingerprint, reason, is_root)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, entry := range entries {
		var modifyTime int64
		if !entry.ModifyTime.IsZero() {
			modifyTime = entry.ModifyTime.UnixNano()
		}

		if _, err := stmt.ExecContext(ctx, record.ID, entry.Position, entry.Path, entry.Parent,
			int(entry.Type), entry.Size, int64(entry.Mode), modifyTime, int(entry.Access),
			entry.Fingerprint.String(), entry.Reason, entry.IsRoot); err != nil {
			return nil, fmt.Errorf("insert '%s': %w", entry.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	sb.ids.Set(record.ID, record.RootPath)
	sb.log.Debug("Stored record '%s' with %d entries", record.ID, len(entries))

	return record, nil
}

func (sb *SQLiteBackend) Get(ctx context.Context, id string) (*store.Record, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	record, err := sb.readRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := sb.readEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	root, err := store.Rebuild(entries)
	if err != nil {
		return nil, fmt.Errorf("record '%s': %w", id, err)
	}

	record.Root = root
	return record, nil
}

func (sb *SQLiteBackend) Delete(ctx context.Context, id string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.closed {
		return data.ErrClosed
	}
	if _, exists := sb.ids.Get(id); !exists {
		return data.NotExist(id)
	}

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot_entries WHERE record_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot_records WHERE id = ?", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	sb.ids.Delete(id)
	return nil
}

func (sb *SQLiteBackend) List(ctx context.Context) ([]*store.Record, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	if sb.closed {
		return nil, data.ErrClosed
	}

	rows, err := sb.db.QueryContext(ctx, `
		SELECT id, root_path, created_at, directories, files, missing, unavailable, bytes
		FROM snapshot_records ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*store.Record, 0, sb.ids.Len())
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (sb *SQLiteBackend) Lookup(ctx context.Context, id string, path string) (snapshot.Node, error) {
	cleaned, err := data.CleanPath(path)
	if err != nil {
		return nil, err
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	if _, err := sb.readRecord(ctx, id); err != nil {
		return nil, err
	}

	row := sb.db.QueryRowContext(ctx, `
		SELECT position, path, parent, type, size, mode, modify_time, access, fingerprint, reason, is_root
		FROM snapshot_entries WHERE record_id = ? AND path = ?
	`, id, cleaned)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, data.NotExist(cleaned)
	}
	if err != nil {
		return nil, err
	}

	// Leaves are complete on their own, directories need their subtree.
	if entry.Type != data.FileTypeDirectory {
		entry.IsRoot = true
		entry.Parent = ""
		return store.Rebuild([]store.Entry{entry})
	}

	entries, err := sb.readEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	root, err := store.Rebuild(entries)
	if err != nil {
		return nil, err
	}

	node, found := snapshot.Find(root, cleaned)
	if !found {
		return nil, data.NotExist(cleaned)
	}
	return node, nil
}

// readRecord must be called with at least the read lock held.
func (sb *SQLiteBackend) readRecord(ctx context.Context, id string) (*store.Record, error) {
	if sb.closed {
		return nil, data.ErrClosed
	}
	if _, exists := sb.ids.Get(id); !exists {
		return nil, data.NotExist(id)
	}

	row := sb.db.QueryRowContext(ctx, `
		SELECT id, root_path, created_at, directories, files, missing, unavailable, bytes
		FROM snapshot_records WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, data.NotExist(id)
	}
	return record, err
}

func (sb *SQLiteBackend) readEntries(ctx context.Context, id string) ([]store.Entry, error) {
	rows, err := sb.db.QueryContext(ctx, `
		SELECT position, path, parent, type, size, mode, modify_time, access, fingerprint, reason, is_root
		FROM snapshot_entries WHERE record_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []store.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*store.Record, error) {
	var record store.Record
	var createdAt int64

	err := row.Scan(&record.ID, &record.RootPath, &createdAt,
		&record.Stats.Directories, &record.Stats.Files, &record.Stats.Missing,
		&record.Stats.Unavailable, &record.Stats.Bytes)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = time.Unix(0, createdAt)
	return &record, nil
}

func scanEntry(row scanner) (store.Entry, error) {
	var entry store.Entry
	var fileType, access int
	var mode, modifyTime int64
	var fingerprint string

	err := row.Scan(&entry.Position, &entry.Path, &entry.Parent, &fileType,
		&entry.Size, &mode, &modifyTime, &access, &fingerprint, &entry.Reason, &entry.IsRoot)
	if err != nil {
		return entry, err
	}

	entry.Type = data.FileType(fileType)
	entry.Mode = data.FileMode(mode)
	entry.Access = data.AccessType(access)
	entry.Fingerprint = data.Fingerprint(fingerprint)
	if modifyTime != 0 {
		entry.ModifyTime = time.Unix(0, modifyTime)
	}

	return entry, nil
}
