package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/cmd"
)

type TreeCommand struct {
}

func (*TreeCommand) Name() string {
	return "tree"
}

func (*TreeCommand) Description() string {
	return "Print a stored snapshot as an indented tree"
}

func (*TreeCommand) Usage() string {
	return "tree [-d depth] [-H] <id> [path]"
}

func (t *TreeCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, t.Usage()); err != nil {
		return 2, err
	}

	var root snapshot.Node
	if len(args.Args) > 1 {
		node, err := api.Lookup(ctx, args.Args[0], args.Args[1])
		if err != nil {
			return 1, err
		}
		root = node
	} else {
		record, err := api.Get(ctx, args.Args[0])
		if err != nil {
			return 1, err
		}
		root = record.Root
	}

	snapshot.Walk(root, &treePrinter{
		writer:   writer,
		maxDepth: int(args.Int("depth")),
		hashes:   args.Bool("hash"),
	})

	return 0, nil
}

func (*TreeCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"depth": {
				Name:        "depth",
				Short:       "d",
				Type:        "int",
				Default:     int64(0),
				Description: "Maximum directory depth to descend, 0 for unlimited",
			},
			"hash": {
				Name:        "hash",
				Short:       "H",
				Type:        "bool",
				Description: "Print shortened fingerprints",
			},
		},
	}
}

// treePrinter renders the root with its full path and descendants by name.
type treePrinter struct {
	writer   io.Writer
	maxDepth int
	hashes   bool
	level    int
}

func (tp *treePrinter) EnterDirectory(directory *snapshot.DirectorySnapshot, isRoot bool) {
	tp.level++
}

func (tp *treePrinter) VisitEntry(node snapshot.Node, isRoot bool) snapshot.VisitResult {
	name := node.Name()
	if isRoot {
		name = node.Path()
	}

	var suffix string
	switch n := node.(type) {
	case *snapshot.DirectorySnapshot:
		if !isRoot {
			name += "/"
		}
	case *snapshot.MissingSnapshot:
		suffix = " [missing]"
	case *snapshot.UnavailableSnapshot:
		suffix = fmt.Sprintf(" [unavailable: %s]", n.Reason())
	}

	if tp.hashes && !node.Fingerprint().IsZero() {
		suffix += " " + node.Fingerprint().Short()
	}

	fmt.Fprintf(tp.writer, "%s%s%s\n", strings.Repeat("  ", tp.level), name, suffix)

	if node.Type().IsDir() && tp.maxDepth > 0 && tp.level >= tp.maxDepth {
		return snapshot.SkipSubtree
	}
	return snapshot.Continue
}

func (tp *treePrinter) LeaveDirectory(directory *snapshot.DirectorySnapshot, isRoot bool) {
	tp.level--
}
