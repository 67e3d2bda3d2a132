// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

package doctree

import "errors"

var (
	// ErrSchemaViolation indicates a mutation the bound rule does not
	// permit: an undeclared name, or a second instance in a single slot.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrNotFound indicates a get-style lookup for a name with no instance.
	ErrNotFound = errors.New("not found")

	// ErrNoRule indicates a by-name count query on a node with no bound rule.
	ErrNoRule = errors.New("node has no bound rule")
)
