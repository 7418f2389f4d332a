// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svxlab/cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.Info())
		},
	}
}
