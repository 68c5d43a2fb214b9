package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Dyastin-0/monorle/core"
	"github.com/Dyastin-0/monorle/styles"
	"github.com/urfave/cli/v3"
)

func (a *app) encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "encode raw 1-byte-per-pixel frames",
		ArgsUsage: "<in.raw> [out.rle]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "write the bare token stream without a header",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "frames encoded concurrently (0: one per CPU)",
			},
			forceFlag(),
		},
		Action: a.encodeAction,
	}
}

func (a *app) encodeAction(ctx context.Context, cmd *cli.Command) error {
	in, out, err := paths(cmd, ".rle")
	if err != nil {
		return err
	}

	log := a.log.WithStr("cmd", "encode").WithStr("in", in).WithStr("out", out)

	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	enc := core.NewEncoder()
	if w := cmd.Int("workers"); w > 0 {
		enc.Workers = w
	}

	tracker := a.track(core.FrameCount(len(src)), "encoding")
	enc.OnFrame = func(index, raw, encoded int) {
		tracker.Frame()
	}

	var data []byte
	if cmd.Bool("raw") {
		data, err = enc.EncodeContext(ctx, src)
	} else {
		data, err = enc.PackContext(ctx, src)
	}
	tracker.Done(err)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	if err := a.writeOutput(out, data, cmd.Bool("force")); err != nil {
		log.Error(err.Error())
		return err
	}

	log.WithInt("frames", core.FrameCount(len(src))).
		WithInt("raw_bytes", len(src)).
		WithInt("encoded_bytes", len(data)).
		WithBool("container", !cmd.Bool("raw")).
		Info("encoded")

	fmt.Fprintln(output(cmd), styles.SUCCESS.Render(fmt.Sprintf("Wrote %d bytes to %s", len(data), out)))

	return nil
}

func forceFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "overwrite the output without asking",
	}
}
