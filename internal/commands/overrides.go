// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svxlab/cli/internal/override"
	"github.com/svxlab/cli/internal/prompts"
)

func registerOverridesCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage parameter range override tables",
	}

	cmd.AddCommand(newOverridesSummaryCmd())
	cmd.AddCommand(newOverridesEditCmd())
	cmd.AddCommand(newOverridesClampCmd())
	cmd.AddCommand(newOverridesGenerateCmd())
	cmd.AddCommand(newOverridesApplyCmd())

	parent.AddCommand(cmd)
}

func newOverridesSummaryCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "summary <file.csv>",
		Short: "Print the override table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := override.Load(args[0])
			if err != nil {
				return err
			}
			override.Summary(os.Stdout, set, showAll)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all parameters, not just overridden ones")

	return cmd
}

func newOverridesEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file.csv>",
		Short: "Interactively edit override ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := override.Load(args[0])
			if err != nil {
				return err
			}

			changed, err := prompts.RunOverrideEditForm(set)
			if err != nil {
				return err
			}

			if changed == 0 {
				fmt.Println("No changes")
				return nil
			}

			if err := override.Save(args[0], set); err != nil {
				return err
			}
			override.Summary(os.Stdout, set, true)

			prompts.PrintResult([]prompts.ResultField{
				{Label: "File", Value: args[0]},
				{Label: "Changed", Value: strconv.Itoa(changed)},
			}, "Overrides saved")
			return nil
		},
	}
}

func newOverridesClampCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clamp <file.csv> <vector.txt>",
		Short: "Clamp an observed value vector into override ranges",
		Long: `Clamp an observed value vector into override ranges.

The vector file holds one "name=value" (or "name value") pair per line.
Only overridden parameters are clamped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOverridesClamp(args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the patched vector to a file (default: stdout)")

	return cmd
}

func runOverridesClamp(csvPath, vectorPath, output string) error {
	set, err := override.Load(csvPath)
	if err != nil {
		return err
	}

	vector, err := loadVector(vectorPath)
	if err != nil {
		return err
	}

	patched, notes := override.PatchVector(vector, set)

	for _, note := range notes {
		fmt.Println("  " + note)
	}
	if len(notes) == 0 {
		fmt.Println("No values needed clamping")
	}

	names := make([]string, 0, len(patched))
	for name := range patched {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%d\n", name, patched[name])
	}

	if output == "" {
		fmt.Print(b.String())
		return nil
	}
	if err := os.WriteFile(output, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write vector: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Output", Value: output},
		{Label: "Clamped", Value: strconv.Itoa(len(notes))},
	}, "Vector patched")
	return nil
}

// loadVector parses "name=value" or "name value" lines; blank lines and
// #-comments are skipped.
func loadVector(path string) (map[string]int64, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("vector file not found: %w", err)
	}
	defer f.Close() //nolint:errcheck

	vector := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var name, value string
		if eq := strings.IndexByte(line, '='); eq >= 0 {
			name, value = line[:eq], line[eq+1:]
		} else {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				continue
			}
			name, value = fields[0], fields[1]
		}

		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}
		vector[strings.TrimSpace(name)] = v
	}

	return vector, scanner.Err()
}

func newOverridesGenerateCmd() *cobra.Command {
	var output, merge string

	cmd := &cobra.Command{
		Use:   "generate <model.py>",
		Short: "Generate an override CSV from a translated constraint model",
		Long: `Generate an override CSV with every rand field of a translated model
pre-populated from its range constraints. With --merge, user-edited
bounds from an existing CSV are preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOverridesGenerate(args[0], output, merge)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV path (default: <model>_overrides.csv)")
	cmd.Flags().StringVar(&merge, "merge", "", "Existing CSV to merge user edits from")

	return cmd
}

func runOverridesGenerate(modelPath, output, merge string) error {
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
		output = base + "_overrides.csv"
	}

	var existing *override.Set
	if merge != "" {
		var err error
		existing, err = override.Load(merge)
		if err != nil {
			return err
		}
		fmt.Printf("Merging with %d existing overrides from %s\n", existing.Len(), merge)
	}

	set, err := override.GenerateFromModel(modelPath, existing)
	if err != nil {
		return err
	}
	if err := override.Save(output, set); err != nil {
		return err
	}

	override.Summary(os.Stdout, set, true)

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Model", Value: modelPath},
		{Label: "Output", Value: output},
		{Label: "Fields", Value: strconv.Itoa(set.Len())},
	}, "Override CSV generated")
	return nil
}

func newOverridesApplyCmd() *cobra.Command {
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "apply <file.csv> <file.sv>",
		Short: "Rewrite SystemVerilog range constraints with override bounds",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := override.Load(args[0])
			if err != nil {
				return err
			}

			matched, updated, err := override.ApplyToSVFile(args[1], set, !noBackup)
			if err != nil {
				return err
			}

			prompts.PrintResult([]prompts.ResultField{
				{Label: "File", Value: args[1]},
				{Label: "Matched", Value: strconv.Itoa(matched)},
				{Label: "Updated", Value: strconv.Itoa(updated)},
			}, "Overrides applied")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not write a .bak file before rewriting")

	return cmd
}
