package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Dyastin-0/monorle/core"
	"github.com/Dyastin-0/monorle/styles"
	"github.com/urfave/cli/v3"
)

func (a *app) decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a stream back to raw frames",
		ArgsUsage: "<in.rle> [out.raw]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "input is a bare token stream without a header",
			},
			&cli.Int64Flag{
				Name:    "length",
				Aliases: []string{"n"},
				Value:   -1,
				Usage:   "original byte count of a bare stream (-1: until end of stream)",
			},
			forceFlag(),
		},
		Action: a.decodeAction,
	}
}

// openStream returns the bare token stream of data and its original length,
// or -1 when a bare stream has no length.
func openStream(cmd *cli.Command, data []byte) ([]byte, int64, error) {
	if cmd.Bool("raw") {
		return data, cmd.Int64("length"), nil
	}

	hd, body, err := core.SplitContainer(data)
	if err != nil {
		return nil, 0, fmt.Errorf("not a container (use --raw for bare streams): %w", err)
	}

	return body, int64(hd.Length), nil
}

func (a *app) decodeAction(ctx context.Context, cmd *cli.Command) error {
	in, out, err := paths(cmd, ".raw")
	if err != nil {
		return err
	}

	log := a.log.WithStr("cmd", "decode").WithStr("in", in).WithStr("out", out)

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	stream, length, err := openStream(cmd, data)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	frames := 0
	if length >= 0 {
		frames = core.FrameCount(int(length))
	}

	tracker := a.track(frames, "decoding")

	dec := core.NewDecoder(bytes.NewReader(stream), length)
	dec.OnFrame = func(index, n int) {
		tracker.Frame()
		log.WithInt("frame", index).WithInt("bytes", n).Debug("frame decoded")
	}

	decoded, err := dec.DecodeAll()
	tracker.Done(err)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	if err := a.writeOutput(out, decoded, cmd.Bool("force")); err != nil {
		log.Error(err.Error())
		return err
	}

	log.WithInt("frames", dec.Frame()).
		WithInt("decoded_bytes", len(decoded)).
		Info("decoded")

	fmt.Fprintln(output(cmd), styles.SUCCESS.Render(fmt.Sprintf("Wrote %d bytes to %s", len(decoded), out)))

	return nil
}
