package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	logger := NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "passgen",
		Usage:    "Generate random passwords, passphrases and PINs and score their strength",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("passgen: %v", err)
	}
}
