// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/svxlab/cli/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if getenv("SVX_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := commands.NewRootCmd()
	return rootCmd.ExecuteContext(ctx)
}
