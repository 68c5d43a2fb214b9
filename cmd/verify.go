package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Dyastin-0/monorle/core"
	"github.com/Dyastin-0/monorle/styles"
	"github.com/charmbracelet/huh/spinner"
	"github.com/urfave/cli/v3"
)

var ErrRoundTrip = errors.New("round trip mismatch")

func (a *app) verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "encode and decode a raw file in memory and compare",
		ArgsUsage: "<in.raw>",
		Action:    a.verifyAction,
	}
}

func (a *app) verifyAction(ctx context.Context, cmd *cli.Command) error {
	in := cmd.Args().Get(0)
	if in == "" {
		return ErrMissingInput
	}

	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	var packed []byte
	check := func(ctx context.Context) error {
		p, err := verify(ctx, src)
		packed = p
		return err
	}

	if a.quiet {
		err = check(ctx)
	} else {
		err = spinner.New().
			Title(styles.INFO.Render(fmt.Sprintf("verifying %s (%d bytes)...", in, len(src)))).
			ActionWithErr(check).
			Run()
	}

	log := a.log.WithStr("cmd", "verify").WithStr("in", in)
	if err != nil {
		log.Error(err.Error())
		fmt.Fprintln(output(cmd), styles.ERROR.Render(fmt.Sprintf("%s: %v", in, err)))
		return err
	}

	log.WithInt("raw_bytes", len(src)).WithInt("packed_bytes", len(packed)).Info("verified")
	fmt.Fprintln(output(cmd), styles.SUCCESS.Render(fmt.Sprintf("%s round-trips: %d -> %d bytes", in, len(src), len(packed))))

	return nil
}

// verify packs src, unpacks it and checks both the bytes and that the
// decoded bytes re-encode to the same stream.
func verify(ctx context.Context, src []byte) ([]byte, error) {
	packed, err := core.NewEncoder().PackContext(ctx, src)
	if err != nil {
		return nil, err
	}

	decoded, err := core.Unpack(packed)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(src, decoded) {
		return nil, ErrRoundTrip
	}

	repacked, err := core.Pack(decoded)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(packed, repacked) {
		return nil, fmt.Errorf("%w: re-encoded stream differs", ErrRoundTrip)
	}

	return packed, nil
}
