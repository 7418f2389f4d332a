// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/svxlab/cli/internal/config"
	"github.com/svxlab/cli/internal/prompts"
	"github.com/svxlab/cli/internal/session"
	"github.com/svxlab/cli/internal/translate"
)

type initOptions struct {
	input          string
	output         string
	format         string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new svx project",
		Long:  `Initialize a new svx project with an svx.yaml configuration file.`,
		Example: `  # Interactive mode
  svx init

  # Non-interactive
  svx init --input rtl --output models --non-interactive`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "rtl", "Directory with SystemVerilog sources")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "models", "Directory for translated models")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pyvsc", "Default translation format")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("svx.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.input, &opts.output, &opts.format, translate.Available()); err != nil {
			return err
		}
	}

	if _, err := translate.Get(opts.format); err != nil {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg := config.Config{
		Version: config.CurrentConfigVersion,
		Input:   opts.input,
		Output:  opts.output,
		Format:  opts.format,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: session.ConfigFileName},
		{Label: "Input", Value: opts.input},
		{Label: "Output", Value: opts.output},
		{Label: "Format", Value: opts.format},
	}, "Initialization completed")

	return nil
}
