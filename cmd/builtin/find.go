package builtin

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/mwantia/snapshot"
	"github.com/mwantia/snapshot/cmd"
)

type FindCommand struct {
}

func (*FindCommand) Name() string {
	return "find"
}

func (*FindCommand) Description() string {
	return "Find entries whose name matches a pattern"
}

func (*FindCommand) Usage() string {
	return "find [-a] [-t type] <id> <pattern>"
}

func (f *FindCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := requireArgs(args, 2, f.Usage()); err != nil {
		return 2, err
	}

	pattern := args.Args[1]
	if _, err := path.Match(pattern, ""); err != nil {
		return 2, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	record, err := api.Get(ctx, args.Args[0])
	if err != nil {
		return 1, err
	}

	all := args.Bool("all")
	fileType := args.String("type")

	matches := 0
	record.Root.Accept(snapshot.HierarchyVisitorFunc(func(node snapshot.Node) snapshot.VisitResult {
		if fileType != "" && node.Type().String() != fileType {
			return snapshot.Continue
		}
		if ok, _ := path.Match(pattern, node.Name()); !ok {
			return snapshot.Continue
		}

		matches++
		fmt.Fprintln(writer, node.Path())

		if !all {
			return snapshot.Terminate
		}
		return snapshot.Continue
	}))

	if matches == 0 {
		return 1, nil
	}
	return 0, nil
}

func (*FindCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"all": {
				Name:        "all",
				Short:       "a",
				Type:        "bool",
				Description: "Print every match instead of stopping at the first",
			},
			"type": {
				Name:        "type",
				Short:       "t",
				Type:        "string",
				Description: "Only match entries of this type (file, directory, missing, unavailable)",
			},
		},
	}
}
