package data

import (
	"encoding/json"
	"time"
)

// AccessType describes how a captured path was reached.
type AccessType int

const (
	AccessDirect     AccessType = iota // Path was read directly
	AccessViaSymlink                   // Path was resolved through a symbolic link
)

// FileMetadata holds the captured attributes of an existing entry.
// It is never modified after the snapshot owning it has been built.
type FileMetadata struct {
	// Size in bytes (0 for directories)
	Size int64 `json:"size"`

	// Unix-style mode and permissions
	Mode FileMode `json:"mode"`

	// Last modification time as reported at capture
	ModifyTime time.Time `json:"modify_time"`

	Access AccessType `json:"access"`
}

// NewFileMetadata creates metadata for a regular file.
func NewFileMetadata(size int64, mode FileMode, modifyTime time.Time) *FileMetadata {
	return &FileMetadata{
		Size:       size,
		Mode:       mode &^ ModeDir,
		ModifyTime: modifyTime,
	}
}

// NewDirectoryMetadata creates metadata for a directory.
func NewDirectoryMetadata(mode FileMode, modifyTime time.Time) *FileMetadata {
	return &FileMetadata{
		Mode:       mode | ModeDir,
		ModifyTime: modifyTime,
	}
}

// Marshal provides JSON serialization for FileMetadata.
func (fm *FileMetadata) Marshal() ([]byte, error) {
	return json.Marshal(fm)
}

// Unmarshal provides JSON deserialization for FileMetadata.
func (fm *FileMetadata) Unmarshal(data []byte) error {
	return json.Unmarshal(data, fm)
}

// Equal reports whether both metadata describe the same captured state.
func (fm *FileMetadata) Equal(other *FileMetadata) bool {
	if fm == nil || other == nil {
		return fm == other
	}

	return fm.Size == other.Size &&
		fm.Mode == other.Mode &&
		fm.ModifyTime.Equal(other.ModifyTime) &&
		fm.Access == other.Access
}
