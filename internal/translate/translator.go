// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package translate defines the target-dialect translator registry and the
// structured translation result consumed by the CLI and downstream tools.
package translate

import (
	"fmt"
	"sort"

	"github.com/svxlab/cli/internal/sv"
)

// Translator defines the interface all dialect translators must implement.
type Translator interface {
	// Name returns the translator's identifier (e.g., "pyvsc")
	Name() string

	// Translate converts parsed SystemVerilog classes to the target dialect.
	Translate(classes []*sv.Class, opts Options) (*Result, error)

	// FileExtension returns the appropriate file extension (e.g., ".py")
	FileExtension() string
}

var translators = make(map[string]Translator)

// Register adds a translator to the registry.
func Register(t Translator) {
	translators[t.Name()] = t
}

// Get retrieves a translator by name.
func Get(name string) (Translator, error) {
	t, ok := translators[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func Available() []string {
	names := make([]string, 0, len(translators))
	for name := range translators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
