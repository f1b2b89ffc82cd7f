package cmd

import (
	"context"
	"io"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/store"
)

// API is the subset of snapshot operations available to commands.
type API interface {
	// Capture snapshots the path on disk and stores the result.
	Capture(ctx context.Context, path string) (*store.Record, error)

	// Get returns a stored record including its tree.
	Get(ctx context.Context, id string) (*store.Record, error)

	// List returns all stored records without their trees.
	List(ctx context.Context) ([]*store.Record, error)

	// Delete removes a stored record.
	Delete(ctx context.Context, id string) error

	// Lookup returns a single node from a stored record.
	Lookup(ctx context.Context, id string, path string) (snapshot.Node, error)
}

// Command represents an executable command.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "tree -d 2 <id>")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
