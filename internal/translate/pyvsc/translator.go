// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package pyvsc translates parsed SystemVerilog constraint classes into
// PyVSC random-object definitions.
package pyvsc

import (
	"github.com/svxlab/cli/internal/sv"
	"github.com/svxlab/cli/internal/translate"
)

func init() {
	// Auto-register on import
	translate.Register(New())
}

// Translator renders SystemVerilog classes as PyVSC code. It holds no
// state: every Translate call builds a fresh generator, so the translator
// is safe to share across goroutines and repeated invocations.
type Translator struct{}

// New creates a new PyVSC translator.
func New() *Translator {
	return &Translator{}
}

// Name returns the translator's identifier.
func (t *Translator) Name() string {
	return "pyvsc"
}

// FileExtension returns the file extension for PyVSC files.
func (t *Translator) FileExtension() string {
	return ".py"
}

// Translate converts the classes to PyVSC Python code.
func (t *Translator) Translate(classes []*sv.Class, opts translate.Options) (*translate.Result, error) {
	g := newGenerator(opts)
	return g.generate(classes), nil
}
