package builtin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/cmd"
)

type StatCommand struct {
}

func (*StatCommand) Name() string {
	return "stat"
}

func (*StatCommand) Description() string {
	return "Show the captured state of a single path"
}

func (*StatCommand) Usage() string {
	return "stat <id> <path>"
}

func (s *StatCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 2, s.Usage()); err != nil {
		return 2, err
	}

	node, err := api.Lookup(ctx, args.Args[0], args.Args[1])
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "  Path: %s\n", node.Path())
	fmt.Fprintf(writer, "  Type: %s\n", node.Type())

	if meta := node.Metadata(); meta != nil {
		fmt.Fprintf(writer, "  Size: %d\n", meta.Size)
		fmt.Fprintf(writer, "  Mode: %s\n", meta.Mode)
		fmt.Fprintf(writer, "Modify: %s\n", meta.ModifyTime.Format(time.RFC3339))
	}
	if !node.Fingerprint().IsZero() {
		fmt.Fprintf(writer, "  Hash: %s\n", node.Fingerprint())
	}

	switch n := node.(type) {
	case *snapshot.DirectorySnapshot:
		fmt.Fprintf(writer, " Total: %s\n", snapshot.Count(n))
	case *snapshot.UnavailableSnapshot:
		fmt.Fprintf(writer, "Reason: %s\n", n.Reason())
	}

	return 0, nil
}

func (*StatCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
