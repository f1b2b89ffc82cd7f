package data

import (
	"errors"
	"fmt"
	"sync"
)

// Standard errors shared by capture and storage implementations.
var (
	// Path errors
	ErrInvalidPath  = errors.New("snapshot: invalid path detected")
	ErrNotExist     = errors.New("snapshot: entry does not exist")
	ErrExist        = errors.New("snapshot: entry already exists")
	ErrNotDirectory = errors.New("snapshot: not a directory")
	ErrPermission   = errors.New("snapshot: permission denied")

	// Lifecycle errors
	ErrClosed  = errors.New("snapshot: store already closed")
	ErrInvalid = errors.New("snapshot: invalid argument")
)

// NotExist wraps ErrNotExist with the name of what could not be found.
func NotExist(what string) error {
	return fmt.Errorf("%w: %s", ErrNotExist, what)
}

// NotDirectory wraps ErrNotDirectory with the offending path.
func NotDirectory(path string) error {
	return fmt.Errorf("%w: %s", ErrNotDirectory, path)
}

// Errors collects non-fatal errors from concurrent or repeated operations.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

func (e *Errors) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = nil
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
