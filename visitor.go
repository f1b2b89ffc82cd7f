package snapshot

// HierarchyVisitor observes a depth-first walk over a snapshot tree.
// For a directory the driver calls VisitEntry first, then EnterDirectory,
// the children and LeaveDirectory. It has no notion of where the walk started; use RootTrackingVisitor
// together with AsHierarchyVisitor when that is needed.
type HierarchyVisitor interface {
	// EnterDirectory is called before visiting the contents of a directory.
	EnterDirectory(directory *DirectorySnapshot)

	// VisitEntry is called once for each regular file, directory, missing
	// and unavailable entry. The result controls how the walk continues.
	VisitEntry(node Node) VisitResult

	// LeaveDirectory is called after all entries in the directory have been
	// visited, or after they were skipped through SkipSubtree.
	LeaveDirectory(directory *DirectorySnapshot)
}

// RootTrackingVisitor is a HierarchyVisitor that is additionally told whether
// the current node is the entry the traversal was started on.
type RootTrackingVisitor interface {
	// EnterDirectory is called before visiting the contents of a directory.
	EnterDirectory(directory *DirectorySnapshot, isRoot bool)

	// VisitEntry is called once for each regular file, directory, missing
	// and unavailable entry. The result controls how the walk continues.
	VisitEntry(node Node, isRoot bool) VisitResult

	// LeaveDirectory is called after all entries in the directory have been visited.
	LeaveDirectory(directory *DirectorySnapshot, isRoot bool)
}

// NoopDirectoryVisitor provides empty EnterDirectory and LeaveDirectory
// callbacks. Embed it in visitors that only care about VisitEntry.
type NoopDirectoryVisitor struct{}

func (NoopDirectoryVisitor) EnterDirectory(*DirectorySnapshot, bool) {}

func (NoopDirectoryVisitor) LeaveDirectory(*DirectorySnapshot, bool) {}

// NoopHierarchyDirectoryVisitor is the HierarchyVisitor counterpart of NoopDirectoryVisitor.
type NoopHierarchyDirectoryVisitor struct{}

func (NoopHierarchyDirectoryVisitor) EnterDirectory(*DirectorySnapshot) {}

func (NoopHierarchyDirectoryVisitor) LeaveDirectory(*DirectorySnapshot) {}

// RootTrackingVisitorFunc turns a function into a RootTrackingVisitor.
type RootTrackingVisitorFunc func(node Node, isRoot bool) VisitResult

func (f RootTrackingVisitorFunc) EnterDirectory(*DirectorySnapshot, bool) {}

func (f RootTrackingVisitorFunc) VisitEntry(node Node, isRoot bool) VisitResult {
	return f(node, isRoot)
}

func (f RootTrackingVisitorFunc) LeaveDirectory(*DirectorySnapshot, bool) {}

// HierarchyVisitorFunc turns a function into a HierarchyVisitor.
type HierarchyVisitorFunc func(node Node) VisitResult

func (f HierarchyVisitorFunc) EnterDirectory(*DirectorySnapshot) {}

func (f HierarchyVisitorFunc) VisitEntry(node Node) VisitResult {
	return f(node)
}

func (f HierarchyVisitorFunc) LeaveDirectory(*DirectorySnapshot) {}
