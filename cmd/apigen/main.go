// Package main is the entry point for the apigen code-generation tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amer8/apigen/internal/cli"
	"github.com/amer8/apigen/pkg/converter"
	"github.com/amer8/apigen/pkg/errors"
	"github.com/amer8/apigen/pkg/format/openapi"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		exitCode := 1
		if errors.Is(err, errors.ErrValidationFailed) {
			exitCode = 2
		} else if errors.Is(err, errors.ErrGenerationFailed) {
			exitCode = 3
		} else if _, ok := err.(*errors.CodegenError); ok {
			exitCode = 3
		}

		os.Exit(exitCode)
	}
}

// run parses flags the same way apibconv does, but defaults to generate mode
// rather than convert mode: apigen has no conversion use for --to/--from, so
// unless the caller explicitly asked for --validate, --version, or --help,
// an apigen invocation generates.
func run(args []string) error {
	flags, posArgs, err := cli.ParseFlags(args)
	if err != nil {
		return err
	}
	if !flags.Validate && !flags.Version && !flags.Help {
		flags.Generate = true
	}

	cfg, err := cli.ConfigFromFlags(flags, posArgs)
	if err != nil {
		return err
	}

	conv, err := setupConverter()
	if err != nil {
		return err
	}

	app := cli.NewApp(conv)
	return app.RunWithConfig(context.Background(), cfg)
}

func setupConverter() (*converter.Converter, error) {
	conv, err := converter.New()
	if err != nil {
		return nil, err
	}
	conv.RegisterParser(openapi.NewParser())
	conv.RegisterWriter(openapi.NewWriter())
	return conv, nil
}
