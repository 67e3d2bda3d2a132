// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package session provides workspace context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncblakely/GiantsEdit-sub002/internal/codec"
	"github.com/ncblakely/GiantsEdit-sub002/internal/config"
	"github.com/ncblakely/GiantsEdit-sub002/internal/format"
	"github.com/ncblakely/GiantsEdit-sub002/internal/schema"
	"github.com/spf13/cobra"
)

var (
	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidCatalog indicates the rule catalog couldn't be loaded.
	ErrInvalidCatalog = errors.New("invalid rule catalog")
)

// ConfigFileName is the name of the giantsedit configuration file.
const ConfigFileName = "giantsedit.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved workspace configuration and the rule catalog
// the codecs bind trees to.
type Context struct {
	// Config is the workspace configuration; defaults apply when no
	// giantsedit.yaml exists in the working directory.
	Config *config.Config

	// Rules is the rule catalog, either the built-in one or the custom
	// catalog the config points at.
	Rules *schema.Catalog

	// Codecs are the file format codecs, bound to Rules.
	Codecs codec.Register
}

// Load loads the workspace context from the current working directory and
// returns a new context.Context with it stored. A missing config file is
// not an error; the built-in defaults apply.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg := &config.Config{Version: config.CurrentConfigVersion}
	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if validateErr := cfg.Validate(); validateErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
		}
	}

	rules, err := loadRules(cwd, cfg)
	if err != nil {
		return nil, err
	}

	world := codec.NewWorld(rules)
	mission := codec.NewMission(rules)
	seCtx := &Context{
		Config: cfg,
		Rules:  rules,
		Codecs: codec.Register{
			world.Name():   world,
			mission.Name(): mission,
		},
	}

	return context.WithValue(ctx, contextKey{}, seCtx), nil
}

// loadRules returns the built-in catalog, or the custom one the config
// names.
func loadRules(cwd string, cfg *config.Config) (*schema.Catalog, error) {
	if cfg.Catalog == "" {
		rules, err := format.Rules()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		return rules, nil
	}

	path := cfg.Catalog
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from config
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	rules, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, cfg.Catalog, err)
	}
	return rules, nil
}

// From extracts the workspace Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if seCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return seCtx
	}
	return nil
}

// FromCommand extracts the workspace Context from a cobra.Command's
// context. Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the workspace Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("workspace context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PersistentPreRunE function that loads the workspace
// context and stores it in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	ctx, err := Load(cmd.Context())
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
