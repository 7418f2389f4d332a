// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test, like
// t.Chdir in Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_NotInitialized(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\n"), 0o600))
	chdir(t, dir)

	_, err := Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_StoresContext(t *testing.T) {
	dir := t.TempDir()
	yaml := "version: 1\ninput: rtl\noutput: models\nformat: pyvsc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0o600))
	chdir(t, dir)

	ctx, err := Load(context.Background())
	require.NoError(t, err)

	svxCtx := From(ctx)
	require.NotNil(t, svxCtx)
	assert.Equal(t, "pyvsc", svxCtx.Config.Format)
	assert.Equal(t, "rtl", svxCtx.Config.Input)
}

func TestFrom_EmptyContext(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}
