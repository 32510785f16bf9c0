package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mhofwell/agent-augments/internal/cli"
	"github.com/mhofwell/agent-augments/internal/config"
	"github.com/mhofwell/agent-augments/internal/log"
)

func main() {
	if cfg, err := config.Load(); err == nil {
		paths := config.GetPaths(cfg)
		if err := log.Init(paths.Logs); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		}
	}
	defer func() { _ = log.Close() }()

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
