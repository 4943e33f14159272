// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidTable is the sentinel error wrapped by InvalidTableError.
var ErrInvalidTable = errors.New("invalid registry table")

type (
	// tableFile is the on-disk TOML shape of a registry table:
	//
	//	[[command]]
	//	name = "Get-ChildItem"
	//	aliases = ["gci", "dir", "ls"]
	//
	//	  [[command.parameter]]
	//	  name = "Recurse"
	//	  aliases = ["s"]
	//
	//	[[common_parameter]]
	//	name = "ErrorAction"
	//	aliases = ["ea"]
	tableFile struct {
		Commands []Command   `toml:"command"`
		Common   []Parameter `toml:"common_parameter"`
	}

	// InvalidTableError is returned when a registry table cannot be decoded
	// or declares a command without a canonical name. It wraps
	// ErrInvalidTable for errors.Is() compatibility.
	InvalidTableError struct {
		Source string
		Reason error
	}
)

// ParseTOML decodes a registry table from TOML data. source names the origin
// for error messages only.
func ParseTOML(data []byte, source string) ([]Command, []Parameter, error) {
	var file tableFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, nil, &InvalidTableError{Source: source, Reason: err}
	}
	for _, cmd := range file.Commands {
		if cmd.Name == "" {
			return nil, nil, &InvalidTableError{
				Source: source,
				Reason: errors.New("command entry is missing a name"),
			}
		}
	}
	return file.Commands, file.Common, nil
}

// LoadTOML reads and decodes a registry table file.
func LoadTOML(path string) ([]Command, []Parameter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read registry table: %w", err)
	}
	return ParseTOML(data, path)
}

// Error implements the error interface for InvalidTableError.
func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid registry table %q: %v", e.Source, e.Reason)
}

// Unwrap returns ErrInvalidTable for errors.Is() compatibility.
func (e *InvalidTableError) Unwrap() error { return ErrInvalidTable }
