package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dyastin-0/monorle/progress"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
)

var (
	ErrMissingInput = errors.New("missing input file")
	ErrNotOverwrite = errors.New("output exists, not overwriting")
)

// paths resolves the input and output arguments. The output defaults to the
// input with its extension replaced by ext.
func paths(cmd *cli.Command, ext string) (string, string, error) {
	in := cmd.Args().Get(0)
	if in == "" {
		return "", "", ErrMissingInput
	}

	out := cmd.Args().Get(1)
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ext
		if out == in {
			out = in + ext
		}
	}

	return in, out, nil
}

// writeOutput writes data to path, asking before replacing a file unless
// force is set.
func (a *app) writeOutput(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		if a.quiet || !Continue(fmt.Sprintf("%s exists, overwrite?", path)) {
			return fmt.Errorf("%w: %s", ErrNotOverwrite, path)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var bar io.Writer = io.Discard
	if !a.quiet {
		bar = progress.DefaultBar(int64(len(data)), fmt.Sprintf("Writing %s", filepath.Base(path)))
	}

	written, err := progress.Execute(file, bytes.NewReader(data), int64(len(data)), bar)
	if err != nil {
		return err
	}

	if written != int64(len(data)) {
		return fmt.Errorf("corrupted: %s expected %d bytes, wrote %d", path, len(data), written)
	}

	return file.Close()
}

func Continue(txt string) bool {
	var confirm bool

	err := huh.NewConfirm().
		Title(txt).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	if err != nil {
		return false
	}

	return confirm
}
