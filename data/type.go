package data

import (
	"fmt"
	"strings"
)

// FileType identifies the kind of entry a snapshot was captured for.
type FileType int

// File type constants for every snapshot variant.
const (
	FileTypeRegularFile FileType = iota // Regular file with content
	FileTypeDirectory                   // Directory with ordered children
	FileTypeMissing                     // Path did not exist at capture time
	FileTypeUnavailable                 // Path existed but could not be read
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeRegularFile:
		return "file"
	case FileTypeDirectory:
		return "directory"
	case FileTypeMissing:
		return "missing"
	case FileTypeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// IsDir returns true if this type describes a directory.
func (ft FileType) IsDir() bool {
	return ft == FileTypeDirectory
}

// Exists returns true if the entry was present on disk when captured.
func (ft FileType) Exists() bool {
	return ft == FileTypeRegularFile || ft == FileTypeDirectory
}

// ParseFileType converts the textual form produced by String back into a FileType.
func ParseFileType(value string) (FileType, error) {
	switch strings.ToLower(value) {
	case "file":
		return FileTypeRegularFile, nil
	case "directory":
		return FileTypeDirectory, nil
	case "missing":
		return FileTypeMissing, nil
	case "unavailable":
		return FileTypeUnavailable, nil
	default:
		return 0, fmt.Errorf("%w: unknown file type '%s'", ErrInvalid, value)
	}
}
