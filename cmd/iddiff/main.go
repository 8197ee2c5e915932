package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nicolagi/iddiff/internal/config"
	"github.com/nicolagi/iddiff/internal/iddiff"
	"github.com/nicolagi/iddiff/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// To set this at build time, use go build -ldflags '-X main.version=something'.
var version = "unknown"

// Flags selecting a mode other than side by side.
var modeFlags = map[string]iddiff.Mode{
	"wdiff":   iddiff.WDiff,
	"hwdiff":  iddiff.HWDiff,
	"chbars":  iddiff.ChangeBars,
	"abdiff":  iddiff.ABDiff,
	"unified": iddiff.Unified,
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	var levels []string
	for _, l := range log.AllLevels {
		levels = append(levels, l.String())
	}
	return &cli.Command{
		Name:                   "iddiff",
		Usage:                  "compare two revisions of an Internet-Draft",
		ArgsUsage:              "FILE1 FILE2",
		Version:                version,
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "side-by-side", Usage: "side by side HTML diff (default)"},
			&cli.BoolFlag{Name: "wdiff", Aliases: []string{"w"}, Usage: "plain text word diff"},
			&cli.BoolFlag{Name: "hwdiff", Usage: "HTML word diff"},
			&cli.BoolFlag{Name: "chbars", Usage: "new text with change bars"},
			&cli.BoolFlag{Name: "abdiff", Usage: "changed lines as OLD and NEW blocks"},
			&cli.BoolFlag{Name: "unified", Aliases: []string{"u"}, Usage: "unified diff"},
			&cli.BoolFlag{Name: "table-only", Aliases: []string{"t"}, Usage: "write only the HTML table"},
			&cli.IntFlag{Name: "context-lines", Aliases: []string{"c"}, Value: config.DefaultContextLines, Usage: "number of context `lines`, 0 for all"},
			&cli.BoolFlag{Name: "skip-whitespace", Aliases: []string{"s"}, Usage: "collapse runs of blank lines"},
			&cli.StringFlag{Name: "base", Value: config.DefaultBaseDirectoryPath, Usage: "`directory` holding the configuration file"},
			&cli.StringFlag{Name: "verbosity", Value: "warning", Usage: "sets the log `level`, among " + strings.Join(levels, ", ")},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return fmt.Errorf("%v: %w", err, iddiff.ErrUsage)
		},
		// Exit codes are decided by run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return diff(ctx, cmd, stdout, stderr)
		},
	}
}

func diff(ctx context.Context, cmd *cli.Command, stdout, stderr io.Writer) error {
	level, err := log.ParseLevel(cmd.String("verbosity"))
	if err != nil {
		return fmt.Errorf("%v: %w", err, iddiff.ErrUsage)
	}
	log.SetOutput(stderr)
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(level)

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("want 2 files, got %d: %w", cmd.Args().Len(), iddiff.ErrUsage)
	}

	c, err := config.Load(cmd.String("base"))
	if err != nil {
		return err
	}
	opts, err := options(cmd, c)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"base":    c.Base(),
		"mode":    opts.Mode,
		"context": opts.Context,
	}).Debug("Starting")
	return iddiff.Diff(ctx, stdout, storage.NewStore(c), cmd.Args().Get(0), cmd.Args().Get(1), opts)
}

// options merges the configuration with the flags given explicitly.
func options(cmd *cli.Command, c *config.C) (iddiff.Options, error) {
	mode, err := iddiff.ParseMode(c.Mode)
	if err != nil {
		return iddiff.Options{}, fmt.Errorf("config: %w", err)
	}
	var set []string
	if cmd.Bool("side-by-side") {
		mode = iddiff.SideBySide
		set = append(set, "side-by-side")
	}
	for name, m := range modeFlags {
		if cmd.Bool(name) {
			mode = m
			set = append(set, name)
		}
	}
	if len(set) > 1 {
		return iddiff.Options{}, fmt.Errorf("more than one mode given: %w", iddiff.ErrUsage)
	}
	opts := iddiff.Options{
		Mode:           mode,
		Context:        c.ContextLines,
		TableOnly:      cmd.Bool("table-only"),
		SkipWhitespace: c.SkipWhitespace,
	}
	if cmd.IsSet("context-lines") {
		opts.Context = cmd.Int("context-lines")
	}
	if cmd.IsSet("skip-whitespace") {
		opts.SkipWhitespace = cmd.Bool("skip-whitespace")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli.VersionPrinter = func(cmd *cli.Command) {
		_, _ = fmt.Fprintf(cmd.Root().Writer, "%s %s\n", cmd.Root().Name, cmd.Root().Version)
	}
	err := newCommand(stdout, stderr).Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, storage.ErrNotFound):
		_, _ = fmt.Fprintf(stderr, "iddiff: %v.\n", err)
		return 2
	case errors.Is(err, iddiff.ErrUsage):
		_, _ = fmt.Fprintf(stderr, "iddiff: %v\n", err)
		return 2
	default:
		_, _ = fmt.Fprintf(stderr, "iddiff: %v\n", err)
		return 1
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
