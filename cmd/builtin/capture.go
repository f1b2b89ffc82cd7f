package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/snapshot/cmd"
)

type CaptureCommand struct {
}

func (*CaptureCommand) Name() string {
	return "capture"
}

func (*CaptureCommand) Description() string {
	return "Capture a path from disk and store the snapshot"
}

func (*CaptureCommand) Usage() string {
	return "capture <path>..."
}

func (c *CaptureCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 1, c.Usage()); err != nil {
		return 2, err
	}

	for _, path := range args.Args {
		record, err := api.Capture(ctx, path)
		if err != nil {
			return 1, err
		}

		fmt.Fprintf(writer, "%s %s (%s)\n", record.ID, record.RootPath, record.Stats)
	}

	return 0, nil
}

func (*CaptureCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}
