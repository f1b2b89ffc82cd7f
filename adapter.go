package snapshot

import "fmt"

// RootTrackingAdapter implements HierarchyVisitor by forwarding every call to
// a RootTrackingVisitor. Root status is derived from the nesting depth, so it
// holds no matter which node the walk was started on.
//
// An adapter belongs to exactly one traversal and must not be shared between
// concurrent or interleaved walks.
type RootTrackingAdapter struct {
	delegate   RootTrackingVisitor
	depth      int
	terminated bool
}

// AsHierarchyVisitor wraps delegate for a single traversal.
func AsHierarchyVisitor(delegate RootTrackingVisitor) *RootTrackingAdapter {
	return &RootTrackingAdapter{
		delegate: delegate,
	}
}

func (rta *RootTrackingAdapter) EnterDirectory(directory *DirectorySnapshot) {
	rta.checkActive()

	rta.delegate.EnterDirectory(directory, rta.isRoot())
	rta.depth++
}

func (rta *RootTrackingAdapter) VisitEntry(node Node) VisitResult {
	rta.checkActive()

	result := rta.delegate.VisitEntry(node, rta.isRoot())
	if result == Terminate {
		rta.terminated = true
	}

	return result
}

func (rta *RootTrackingAdapter) LeaveDirectory(directory *DirectorySnapshot) {
	rta.checkActive()
	if rta.depth == 0 {
		panic(fmt.Errorf("%w: '%s'", ErrUnbalancedTraversal, directory.Path()))
	}

	// Decrement first so enter and leave of the same directory agree on isRoot.
	rta.depth--
	rta.delegate.LeaveDirectory(directory, rta.isRoot())
}

// Depth returns the number of directories entered but not yet left.
func (rta *RootTrackingAdapter) Depth() int {
	return rta.depth
}

// Terminated reports whether the wrapped visitor has stopped the walk.
func (rta *RootTrackingAdapter) Terminated() bool {
	return rta.terminated
}

func (rta *RootTrackingAdapter) isRoot() bool {
	return rta.depth == 0
}

func (rta *RootTrackingAdapter) checkActive() {
	if rta.terminated {
		panic(ErrTraversalTerminated)
	}
}

// Walk drives a root-tracking visitor over root with a fresh adapter.
func Walk(root Node, visitor RootTrackingVisitor) VisitResult {
	return root.Accept(AsHierarchyVisitor(visitor))
}
