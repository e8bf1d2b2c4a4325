package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// Set via -ldflags at release time.
var version = "dev"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
