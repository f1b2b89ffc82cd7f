package builtin

import (
	"fmt"

	"github.com/mwantia/snapshot/cmd"
)

// All returns every builtin command.
func All() []cmd.Command {
	return []cmd.Command{
		&CaptureCommand{},
		&FindCommand{},
		&LsCommand{},
		&RmCommand{},
		&StatCommand{},
		&TreeCommand{},
	}
}

// RegisterAll adds every builtin command to the manager.
func RegisterAll(manager *cmd.Manager) error {
	for _, command := range All() {
		if err := manager.Register(command); err != nil {
			return err
		}
	}
	return nil
}

func requireArgs(args *cmd.CommandArgs, count int, usage string) error {
	if len(args.Args) < count {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}
