// SPDX-License-Identifier: MPL-2.0

// Package registry defines the alias/command registry consumed by the
// shortening engine. A Registry answers "what do I know about this command
// name" for canonical names and aliases alike, and exposes the common
// parameter set shared by every command.
//
// The registry is read-only after construction; a single instance may be
// shared by any number of concurrent shortening passes.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	// ErrDuplicateCommand is the sentinel error wrapped by DuplicateCommandError.
	ErrDuplicateCommand = errors.New("duplicate command name")
)

type (
	// Parameter is one declared parameter of a command: a canonical name plus
	// zero or more registered aliases. Names are compared case-insensitively.
	Parameter struct {
		Name    string   `toml:"name"`
		Aliases []string `toml:"aliases,omitempty"`
	}

	// Command is the full registry metadata for one command: its canonical
	// name, its registered aliases, and its declared parameters.
	Command struct {
		Name       string      `toml:"name"`
		Aliases    []string    `toml:"aliases,omitempty"`
		Parameters []Parameter `toml:"parameter,omitempty"`
	}

	// Registry is the lookup contract the resolver depends on. Lookup must
	// treat "not found" (ok == false) and "found, no aliases" (ok == true,
	// empty alias set) as distinct outcomes.
	Registry interface {
		// Lookup resolves a canonical command name or command alias,
		// case-insensitively, to its command metadata.
		Lookup(name string) (*Command, bool)
		// CommonParameters returns parameter definitions that apply to every
		// command in addition to its own declared parameters.
		CommonParameters() []Parameter
	}

	// InMemory is the hash-indexed Registry implementation. Build one with
	// NewInMemory; the zero value is an empty registry.
	InMemory struct {
		commands []Command
		common   []Parameter
		byName   map[string]int
	}

	// DuplicateCommandError is returned by NewInMemory when two commands
	// claim the same canonical name or alias. It wraps ErrDuplicateCommand
	// for errors.Is() compatibility.
	DuplicateCommandError struct {
		Name string
	}
)

// HasAliases reports whether the command declares at least one alias.
func (c *Command) HasAliases() bool { return len(c.Aliases) > 0 }

// IsAlias reports whether queried names the command by one of its aliases
// rather than by its canonical name.
func (c *Command) IsAlias(queried string) bool {
	for _, a := range c.Aliases {
		if strings.EqualFold(a, queried) {
			return true
		}
	}
	return false
}

// Parameter finds the declared parameter whose canonical name or alias set
// matches token, case-insensitively. Common parameters are not consulted
// here; callers fall back to Registry.CommonParameters.
func (c *Command) Parameter(token string) (*Parameter, bool) {
	return FindParameter(c.Parameters, token)
}

// FindParameter finds the parameter in defs whose canonical name or alias
// set matches token, case-insensitively. Resolvers use it to consult the
// common parameter set after a command's own parameters.
func FindParameter(defs []Parameter, token string) (*Parameter, bool) {
	for i := range defs {
		p := &defs[i]
		if strings.EqualFold(p.Name, token) {
			return p, true
		}
		for _, a := range p.Aliases {
			if strings.EqualFold(a, token) {
				return p, true
			}
		}
	}
	return nil, false
}

// NewInMemory builds a registry from command metadata and the shared common
// parameter set. Both canonical names and aliases are indexed; a name claimed
// twice yields a DuplicateCommandError.
func NewInMemory(commands []Command, common []Parameter) (*InMemory, error) {
	r := &InMemory{
		commands: slices.Clone(commands),
		common:   slices.Clone(common),
		byName:   make(map[string]int, len(commands)*2),
	}
	for i, cmd := range r.commands {
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			key := strings.ToLower(name)
			if _, taken := r.byName[key]; taken {
				return nil, &DuplicateCommandError{Name: name}
			}
			r.byName[key] = i
		}
	}
	return r, nil
}

// Lookup implements Registry.
func (r *InMemory) Lookup(name string) (*Command, bool) {
	if r.byName == nil {
		return nil, false
	}
	i, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &r.commands[i], true
}

// CommonParameters implements Registry.
func (r *InMemory) CommonParameters() []Parameter { return r.common }

// Len returns the number of registered commands.
func (r *InMemory) Len() int { return len(r.commands) }

// Override merges overrides into base by canonical command name: a command in
// overrides replaces the base command of the same name, and new commands are
// appended in their declared order. Neither input slice is modified.
func Override(base, overrides []Command) []Command {
	merged := slices.Clone(base)
	index := make(map[string]int, len(merged))
	for i, cmd := range merged {
		index[strings.ToLower(cmd.Name)] = i
	}
	for _, cmd := range overrides {
		if i, ok := index[strings.ToLower(cmd.Name)]; ok {
			merged[i] = cmd
			continue
		}
		index[strings.ToLower(cmd.Name)] = len(merged)
		merged = append(merged, cmd)
	}
	return merged
}

// OverrideParameters merges parameter overrides into base by canonical name,
// with the same replace-or-append semantics as Override.
func OverrideParameters(base, overrides []Parameter) []Parameter {
	merged := slices.Clone(base)
	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[strings.ToLower(p.Name)] = i
	}
	for _, p := range overrides {
		if i, ok := index[strings.ToLower(p.Name)]; ok {
			merged[i] = p
			continue
		}
		index[strings.ToLower(p.Name)] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

// Error implements the error interface for DuplicateCommandError.
func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("duplicate command name: %q is registered more than once", e.Name)
}

// Unwrap returns ErrDuplicateCommand for errors.Is() compatibility.
func (e *DuplicateCommandError) Unwrap() error { return ErrDuplicateCommand }
