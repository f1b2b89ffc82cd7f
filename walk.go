package snapshot

import (
	"github.com/mwantia/snapshot/data"
)

// Collect returns every node beneath and including root in visit order.
func Collect(root Node) []Node {
	var nodes []Node
	root.Accept(HierarchyVisitorFunc(func(node Node) VisitResult {
		nodes = append(nodes, node)
		return Continue
	}))

	return nodes
}

// Count summarizes the entries beneath and including root.
func Count(root Node) data.Stats {
	var stats data.Stats
	root.Accept(HierarchyVisitorFunc(func(node Node) VisitResult {
		var size int64
		if meta := node.Metadata(); meta != nil {
			size = meta.Size
		}
		stats.Add(node.Type(), size)

		return Continue
	}))

	return stats
}

// Find looks up the node at path within root. Directories that cannot
// contain path are skipped and the walk stops at the first match.
func Find(root Node, path string) (Node, bool) {
	path, err := data.CleanPath(path)
	if err != nil {
		return nil, false
	}

	var found Node
	root.Accept(HierarchyVisitorFunc(func(node Node) VisitResult {
		if node.Path() == path {
			found = node
			return Terminate
		}
		if node.Type().IsDir() && !data.HasPathPrefix(path, node.Path()) {
			return SkipSubtree
		}
		return Continue
	}))

	return found, found != nil
}
