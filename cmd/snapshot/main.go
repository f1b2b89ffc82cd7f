package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mwantia/snapshot/capture"
	"github.com/mwantia/snapshot/cmd"
	"github.com/mwantia/snapshot/cmd/builtin"
	"github.com/mwantia/snapshot/log"
	"github.com/mwantia/snapshot/store"
	"github.com/mwantia/snapshot/store/memory"
	"github.com/mwantia/snapshot/store/sqlite"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var (
		dbPath         string
		logLevel       string
		logFile        string
		jsonLog        bool
		followSymlinks bool
		ignore         []string
	)

	flags := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	flags.StringVar(&dbPath, "db", "", "SQLite database path (in-memory store when empty)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error, fatal)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to a rotated file")
	flags.BoolVar(&jsonLog, "json-log", false, "Write logs as JSON lines")
	flags.BoolVar(&followSymlinks, "follow-symlinks", false, "Follow symbolic links during capture")
	flags.Func("ignore", "Base name pattern to skip during capture (repeatable)", func(s string) error {
		ignore = append(ignore, s)
		return nil
	})

	if err := flags.Parse(argv); err != nil {
		return 2
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := log.New(log.Options{
		Name:       "snapshot",
		Level:      level,
		File:       logFile,
		Rotation:   log.DefaultRotation(),
		NoTerminal: logFile != "",
		JSON:       jsonLog,
		Writer:     os.Stderr,
	})
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []capture.Option{
		capture.WithLogger(logger),
		capture.WithIgnore(ignore...),
	}
	if followSymlinks {
		opts = append(opts, capture.WithFollowSymlinks())
	}

	capturer, err := capture.NewCapturer(opts...)
	if err != nil {
		logger.Error("Failed to create capturer: %v", err)
		return 2
	}

	backend, err := newBackend(dbPath, logger)
	if err != nil {
		logger.Error("Failed to create backend: %v", err)
		return 1
	}

	if err := backend.Open(ctx); err != nil {
		logger.Error("Failed to open %s backend: %v", backend.Name(), err)
		return 1
	}
	defer backend.Close(context.Background())

	manager := cmd.NewManager(cmd.NewService(capturer, backend, logger))
	if err := builtin.RegisterAll(manager); err != nil {
		logger.Error("Failed to register commands: %v", err)
		return 1
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: snapshot [flags] <command> [args]")
		flags.PrintDefaults()
		manager.Usage(os.Stderr)
		return 2
	}

	// Without a database every invocation starts empty, so several commands
	// may be chained in one call by separating them with ";".
	for _, command := range splitCommands(flags.Args()) {
		code, err := manager.Execute(ctx, os.Stdout, command...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", command[0], err)
		}
		if code != 0 {
			return code
		}
	}

	return 0
}

func newBackend(dbPath string, logger *log.Logger) (store.Backend, error) {
	if dbPath == "" {
		return memory.NewMemoryBackend(), nil
	}

	return sqlite.NewSQLiteBackend(dbPath, sqlite.WithLogger(logger))
}

func splitCommands(args []string) [][]string {
	var commands [][]string
	var current []string

	for _, arg := range args {
		if arg == ";" {
			if len(current) > 0 {
				commands = append(commands, current)
			}
			current = nil
			continue
		}
		current = append(current, strings.TrimSpace(arg))
	}

	if len(current) > 0 {
		commands = append(commands, current)
	}
	return commands
}
