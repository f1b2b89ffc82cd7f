package snapshot

import (
	"slices"
	"strings"
)

// RelativePathTracker keeps the path segments from the traversal root to the
// current entry. The root itself contributes no segment.
type RelativePathTracker struct {
	segments []string
}

// Enter pushes name as the innermost segment.
func (rpt *RelativePathTracker) Enter(name string) {
	rpt.segments = append(rpt.segments, name)
}

// Leave pops the innermost segment.
func (rpt *RelativePathTracker) Leave() {
	if len(rpt.segments) == 0 {
		panic(ErrUnbalancedTraversal)
	}
	rpt.segments = rpt.segments[:len(rpt.segments)-1]
}

// IsRoot reports whether no segment has been pushed.
func (rpt *RelativePathTracker) IsRoot() bool {
	return len(rpt.segments) == 0
}

// Segments returns a copy of the current segments.
func (rpt *RelativePathTracker) Segments() []string {
	return slices.Clone(rpt.segments)
}

// RelativePath joins the current segments with a forward slash.
func (rpt *RelativePathTracker) RelativePath() string {
	return strings.Join(rpt.segments, "/")
}

// RelativePathVisitor receives every entry together with its path relative
// to the traversal root. The root is reported with an empty path.
type RelativePathVisitor interface {
	VisitEntry(node Node, relativePath []string) VisitResult
}

// RelativePathVisitorFunc turns a function into a RelativePathVisitor.
type RelativePathVisitorFunc func(node Node, relativePath []string) VisitResult

func (f RelativePathVisitorFunc) VisitEntry(node Node, relativePath []string) VisitResult {
	return f(node, relativePath)
}

// AsRelativePathVisitor adapts visitor to the root-tracking contract.
// Wrap the result with AsHierarchyVisitor, or pass it to Walk.
func AsRelativePathVisitor(visitor RelativePathVisitor) RootTrackingVisitor {
	return &relativePathTrackingVisitor{
		delegate: visitor,
	}
}

type relativePathTrackingVisitor struct {
	delegate RelativePathVisitor
	tracker  RelativePathTracker
}

func (v *relativePathTrackingVisitor) EnterDirectory(directory *DirectorySnapshot, isRoot bool) {
	if !isRoot {
		v.tracker.Enter(directory.Name())
	}
}

func (v *relativePathTrackingVisitor) VisitEntry(node Node, isRoot bool) VisitResult {
	if isRoot {
		return v.delegate.VisitEntry(node, nil)
	}

	v.tracker.Enter(node.Name())
	result := v.delegate.VisitEntry(node, v.tracker.Segments())
	v.tracker.Leave()

	return result
}

func (v *relativePathTrackingVisitor) LeaveDirectory(directory *DirectorySnapshot, isRoot bool) {
	if !isRoot {
		v.tracker.Leave()
	}
}
