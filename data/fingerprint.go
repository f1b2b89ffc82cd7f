package data

import (
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// Fingerprint identifies snapshot content as a hex-encoded xxh3-128 digest.
// Missing and unavailable entries carry the zero value.
type Fingerprint string

// IsZero reports whether the fingerprint is unset.
func (f Fingerprint) IsZero() bool {
	return f == ""
}

func (f Fingerprint) String() string {
	return string(f)
}

// Short returns the first 12 characters, which is enough for display purposes.
func (f Fingerprint) Short() string {
	if len(f) <= 12 {
		return string(f)
	}
	return string(f[:12])
}

// HashBytes fingerprints an in-memory buffer.
func HashBytes(buf []byte) Fingerprint {
	return Fingerprint(fmt.Sprintf("%x", xxh3.Hash128(buf).Bytes()))
}

// HashReader streams r through an xxh3-128 hasher.
// The buffer size bounds how much is read per call, 0 uses the default.
func HashReader(r io.Reader, bufferSize int) (Fingerprint, int64, error) {
	if bufferSize <= 0 {
		bufferSize = 32 * 1024
	}

	h := xxh3.New()
	n, err := io.CopyBuffer(h, r, make([]byte, bufferSize))
	if err != nil {
		return "", n, err
	}

	return Fingerprint(fmt.Sprintf("%x", h.Sum128().Bytes())), n, nil
}

// HashStrings combines the given parts into one fingerprint.
// Parts are length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func HashStrings(parts ...string) Fingerprint {
	h := xxh3.New()
	for _, part := range parts {
		fmt.Fprintf(h, "%d:%s\n", len(part), part)
	}

	return Fingerprint(fmt.Sprintf("%x", h.Sum128().Bytes()))
}
