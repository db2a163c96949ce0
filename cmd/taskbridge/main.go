// Package main is the entry point for the taskbridge CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/taskbridge/taskbridge/internal/app"
	"github.com/taskbridge/taskbridge/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Outside a git repository the container still comes up; only the
	// integrate command requires one.
	container, err := app.New(context.Background(), cwd)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
