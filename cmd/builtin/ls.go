package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mwantia/snapshot/cmd"
)

type LsCommand struct {
}

func (*LsCommand) Name() string {
	return "ls"
}

func (*LsCommand) Description() string {
	return "List stored snapshots"
}

func (*LsCommand) Usage() string {
	return "ls [--json]"
}

func (*LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	records, err := api.List(ctx)
	if err != nil {
		return 1, err
	}

	if args.Bool("json") {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(records); err != nil {
			return 1, err
		}
		return 0, nil
	}

	for _, record := range records {
		fmt.Fprintf(writer, "%s  %s  %-30s %d entries\n",
			record.ID, record.CreatedAt.Format(time.DateTime), record.RootPath, record.Stats.Total())
	}

	return 0, nil
}

func (*LsCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"json": {
				Name:        "json",
				Short:       "j",
				Type:        "bool",
				Description: "Print records as JSON",
			},
		},
	}
}
