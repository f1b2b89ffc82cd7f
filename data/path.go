package data

import (
	"fmt"
	"path"
	"strings"
)

// CleanPath normalizes p into an absolute, slash-separated path without a trailing slash.
func CleanPath(p string) (string, error) {
	if len(p) == 0 {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	p = strings.ReplaceAll(p, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p), nil
}

// JoinPath appends name to the directory path parent.
func JoinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// BaseName returns the last element of p, "/" for the root.
func BaseName(p string) string {
	return path.Base(p)
}

// HasPathPrefix checks if p equals prefix or lies beneath it.
// Both paths should be cleaned before calling.
func HasPathPrefix(p, prefix string) bool {
	if prefix == "/" || p == prefix {
		return true
	}

	return strings.HasPrefix(p, prefix+"/")
}

// SplitPath returns the segments of p relative to base.
// It returns nil if p is base itself and false if p is not beneath base.
func SplitPath(p, base string) ([]string, bool) {
	if !HasPathPrefix(p, base) {
		return nil, false
	}

	if p == base {
		return nil, true
	}

	rel := strings.TrimPrefix(p, base)
	rel = strings.TrimPrefix(rel, "/")

	return strings.Split(rel, "/"), true
}
