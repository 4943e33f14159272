// SPDX-License-Identifier: MPL-2.0

package registry

import (
	_ "embed"
	"fmt"
)

//go:embed default_table.toml
var defaultTable []byte

// DefaultTable returns the decoded contents of the embedded stock alias
// table. Callers that layer their own tables on top start from these slices
// and pass the merge to NewInMemory.
func DefaultTable() ([]Command, []Parameter, error) {
	commands, common, err := ParseTOML(defaultTable, "embedded default table")
	if err != nil {
		return nil, nil, fmt.Errorf("decode embedded table: %w", err)
	}
	return commands, common, nil
}

// Default returns a registry built from the embedded stock alias table.
// The table mirrors the aliases PowerShell ships with, so the engine is
// useful without any configuration.
func Default() (*InMemory, error) {
	commands, common, err := DefaultTable()
	if err != nil {
		return nil, err
	}
	return NewInMemory(commands, common)
}
