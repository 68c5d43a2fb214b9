package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dyastin-0/monorle/cmd"
	"github.com/Dyastin-0/monorle/styles"
)

func main() {
	c := cmd.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	if err := c.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR.Render(err.Error()))
		os.Exit(1)
	}
}
