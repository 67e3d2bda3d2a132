// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/ncblakely/GiantsEdit-sub002/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoConfigUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	ctx, err := session.Load(context.Background())
	require.NoError(t, err)

	seCtx := session.From(ctx)
	require.NotNil(t, seCtx)
	assert.NotNil(t, seCtx.Rules.Lookup(format.RootWorld), "defaults use the built-in catalog")
	assert.Empty(t, seCtx.Config.Catalog)
}

func TestLoad_CustomCatalog(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	catalog := `
types:
  Custom:
    leaves:
      - {name: Value, type: int32, occurs: once}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.yaml"), []byte(catalog), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, session.ConfigFileName), []byte("version: 1\ncatalog: rules.yaml\n"), 0o600))

	ctx, err := session.Load(context.Background())
	require.NoError(t, err)

	seCtx := session.From(ctx)
	require.NotNil(t, seCtx)
	assert.NotNil(t, seCtx.Rules.Lookup("Custom"))
	assert.Nil(t, seCtx.Rules.Lookup(format.RootWorld), "custom catalog replaces the built-in one")
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, session.ConfigFileName), []byte("version: 99\n"), 0o600))

	_, err := session.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrInvalidConfig)
}

func TestLoad_MissingCatalogFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, session.ConfigFileName), []byte("version: 1\ncatalog: gone.yaml\n"), 0o600))

	_, err := session.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrInvalidCatalog)
}

func TestFrom_Empty(t *testing.T) {
	assert.Nil(t, session.From(context.Background()))
}
