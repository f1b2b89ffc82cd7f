package data

import "fmt"

// Stats summarizes the entries contained in a snapshot tree.
type Stats struct {
	Directories int   `json:"directories"`
	Files       int   `json:"files"`
	Missing     int   `json:"missing"`
	Unavailable int   `json:"unavailable"`
	Bytes       int64 `json:"bytes"`
}

// Add counts one entry of the given type and size.
func (s *Stats) Add(fileType FileType, size int64) {
	switch fileType {
	case FileTypeDirectory:
		s.Directories++
	case FileTypeRegularFile:
		s.Files++
		s.Bytes += size
	case FileTypeMissing:
		s.Missing++
	case FileTypeUnavailable:
		s.Unavailable++
	}
}

// Total returns the number of counted entries.
func (s Stats) Total() int {
	return s.Directories + s.Files + s.Missing + s.Unavailable
}

func (s Stats) String() string {
	return fmt.Sprintf("%d directories, %d files (%d bytes), %d missing, %d unavailable",
		s.Directories, s.Files, s.Bytes, s.Missing, s.Unavailable)
}
