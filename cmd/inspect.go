package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Dyastin-0/monorle/core"
	"github.com/Dyastin-0/monorle/styles"
	"github.com/urfave/cli/v3"
)

func (a *app) inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print token statistics of a stream",
		ArgsUsage: "<in.rle>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "input is a bare token stream without a header",
			},
		},
		Action: a.inspectAction,
	}
}

func (a *app) inspectAction(ctx context.Context, cmd *cli.Command) error {
	in := cmd.Args().Get(0)
	if in == "" {
		return ErrMissingInput
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	stream, length, err := openStream(cmd, data)
	if err != nil {
		return err
	}

	stats, err := core.Inspect(stream)
	if err != nil {
		a.log.WithStr("cmd", "inspect").WithStr("in", in).Error(err.Error())
		return err
	}

	w := output(cmd)
	fmt.Fprintln(w, styles.TITLE.Render(in))
	if length >= 0 {
		fmt.Fprintln(w, styles.Row("length", length))
	}
	fmt.Fprintln(w, styles.Row("frames", stats.Frames))
	fmt.Fprintln(w, styles.Row("runs", stats.Runs))
	fmt.Fprintln(w, styles.Row("run pixels", stats.RunPixels))
	fmt.Fprintln(w, styles.Row("longest run", stats.LongestRun))
	fmt.Fprintln(w, styles.Row("literals", stats.Literals))
	fmt.Fprintln(w, styles.Row("escaped", stats.Escaped))
	fmt.Fprintln(w, styles.Row("decoded", stats.Decoded))
	fmt.Fprintln(w, styles.Row("encoded", stats.Encoded))
	fmt.Fprintln(w, styles.Row("ratio", fmt.Sprintf("%.3f", stats.Ratio())))

	if length >= 0 && int64(stats.Decoded) != length {
		fmt.Fprintln(w, styles.ERROR.Render(fmt.Sprintf("stream decodes to %d bytes, header says %d", stats.Decoded, length)))
	}

	return nil
}
