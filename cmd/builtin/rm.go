package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/snapshot/cmd"
)

type RmCommand struct {
}

func (*RmCommand) Name() string {
	return "rm"
}

func (*RmCommand) Description() string {
	return "Delete stored snapshots"
}

func (*RmCommand) Usage() string {
	return "rm <id>..."
}

func (r *RmCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, r.Usage()); err != nil {
		return 2, err
	}

	for _, id := range args.Args {
		if err := api.Delete(ctx, id); err != nil {
			return 1, err
		}
		fmt.Fprintf(writer, "deleted %s\n", id)
	}

	return 0, nil
}

func (*RmCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
