// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/svxlab/cli/internal/config"
)

var (
	// ErrNotInitialized indicates no svx.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in an svx project (svx.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigFileName is the name of the svx configuration file.
const ConfigFileName = "svx.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration.
type Context struct {
	Config *config.Config
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the svx Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	return context.WithValue(ctx, contextKey{}, &Context{Config: cfg}), nil
}

// From extracts the svx Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if svxCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return svxCtx
	}
	return nil
}
