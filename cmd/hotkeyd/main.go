package main

import (
	"context"
	"fmt"
	"os"

	"github.com/TanaroSch/hotkey-listener/internal/cli"
)

const version = "v0.3.0"

func main() {
	if err := cli.NewRootCommand(version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
