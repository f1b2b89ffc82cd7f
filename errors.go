package snapshot

import "errors"

// Contract violations. These are raised through panic since they indicate
// a broken driver rather than a runtime condition.
var (
	ErrUnbalancedTraversal = errors.New("snapshot: leave directory without matching enter")
	ErrTraversalTerminated = errors.New("snapshot: callback after traversal terminated")
)

// ErrInvalidTree is returned when a directory is built from children that do not belong to it.
var ErrInvalidTree = errors.New("snapshot: invalid snapshot tree")
