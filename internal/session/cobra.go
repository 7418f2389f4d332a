// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package session

import "github.com/spf13/cobra"

// FromCommand extracts the svx Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// PreRunLoadOptional loads the project context into the command's context
// when an svx.yaml is present, and is a no-op otherwise. Commands that work
// outside a project use it to pick up config defaults when available.
func PreRunLoadOptional(cmd *cobra.Command, _ []string) error {
	ctx, err := Load(cmd.Context())
	if err != nil {
		return nil
	}
	cmd.SetContext(ctx)
	return nil
}
