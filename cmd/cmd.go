// Package cmd ...
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Dyastin-0/monorle/core"
	"github.com/Dyastin-0/monorle/logger"
	"github.com/Dyastin-0/monorle/progress"
	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

type app struct {
	log   logger.Logger
	quiet bool
}

func New() *cli.Command {
	a := &app{log: logger.New()}

	return &cli.Command{
		Name:    "monorle",
		Usage:   "frame-local run-length codec for monochrome bitmap streams",
		Version: core.VERSION,
		Flags:   rootFlags(),
		Before:  a.before,
		Action:  monorleAction,
		Commands: []*cli.Command{
			a.encodeCommand(),
			a.decodeCommand(),
			a.inspectCommand(),
			a.verifyCommand(),
		},
	}
}

func monorleAction(ctx context.Context, cmd *cli.Command) error {
	figure := figure.NewFigure("monorle", "", true)
	figure.Print()

	fmt.Println()

	return cli.ShowAppHelp(cmd)
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log",
			Usage:   "log file path (default ~/.monorle/logs/monorle.log)",
			Sources: cli.EnvVars("MONORLE_LOG"),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log debug messages to stderr",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "no progress bars or prompts",
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	a.quiet = cmd.Bool("quiet")

	path := cmd.String("log")
	if path == "" {
		p, err := logger.LogPath("logs")
		if err != nil {
			return ctx, err
		}
		path = p
	}

	if cmd.Bool("verbose") {
		a.log.InitMultiWriter(path)
	} else {
		a.log.Init(path)
	}
	a.log.SetVerbose(cmd.Bool("verbose"))

	a.log = a.log.WithStr("run", uuid.NewString())

	return ctx, nil
}

func (a *app) progress() *progress.Progress {
	if a.quiet {
		return nil
	}
	return progress.New()
}

// track returns a frame tracker, or nil when bars are disabled.
func (a *app) track(frames int, text string) *progress.Tracker {
	p := a.progress()
	if p == nil {
		return nil
	}
	return p.Track(int64(frames), text)
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
