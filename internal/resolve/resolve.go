// SPDX-License-Identifier: MPL-2.0

// Package resolve chooses the shortest known spelling for command and
// parameter tokens. All selection is deterministic: the shortest alias wins,
// and equal-length candidates fall back to declaration order in the registry,
// so repeated runs over the same registry always pick the same alias.
package resolve

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/HCRitter/PSCommandShortener/pkg/registry"
)

// DefaultImpliedPrefixes are the verb prefixes that may be dropped from a
// command name when the registry declares no alias for it. PowerShell treats
// the retrieval verb as implied: `Date` runs `Get-Date`.
var DefaultImpliedPrefixes = []string{"Get-"}

type (
	// ResolvedCommand pairs a canonical command name with its chosen short
	// form. An empty Short means the original spelling is already the best
	// known one.
	ResolvedCommand struct {
		Canonical string
		Short     string
	}

	// ParameterRewrite is one parameter substitution to apply to a fragment:
	// the token exactly as typed and its dash-prefixed replacement.
	ParameterRewrite struct {
		Canonical   string
		Token       string
		Replacement string
	}

	// Resolver answers shortening questions against a read-only registry.
	Resolver struct {
		reg      registry.Registry
		prefixes []string
		logger   *log.Logger
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithImpliedPrefixes overrides the implied verb prefixes.
func WithImpliedPrefixes(prefixes []string) Option {
	return func(r *Resolver) { r.prefixes = prefixes }
}

// WithLogger routes resolution debug logging to logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a resolver over reg.
func NewResolver(reg registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		reg:      reg,
		prefixes: DefaultImpliedPrefixes,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Command resolves the short form for a command name. The second return is
// false when the registry does not know the name at all; the caller then
// leaves the whole invocation untouched. A known command with no alias gets
// its implied verb prefix stripped when one applies, otherwise Short stays
// empty and the original spelling is kept.
func (r *Resolver) Command(name string) (ResolvedCommand, bool) {
	cmd, found := r.reg.Lookup(name)
	if !found {
		r.logger.Debug("unknown command, leaving as written", "command", name)
		return ResolvedCommand{}, false
	}
	return r.resolveCommand(name, cmd), true
}

// Invocation resolves one invocation in a single registry lookup: the
// command's short form plus the substitution list for its parameter tokens.
// ok is false for commands the registry does not know; the invocation is
// then passed through verbatim.
func (r *Resolver) Invocation(command string, parameters []string) (ResolvedCommand, []ParameterRewrite, bool) {
	cmd, found := r.reg.Lookup(command)
	if !found {
		r.logger.Debug("unknown command, leaving as written", "command", command)
		return ResolvedCommand{}, nil, false
	}
	return r.resolveCommand(command, cmd), r.ParameterMap(cmd, parameters), true
}

func (r *Resolver) resolveCommand(name string, cmd *registry.Command) ResolvedCommand {
	resolved := ResolvedCommand{Canonical: cmd.Name}
	if short := shortest(cmd.Aliases); short != "" {
		resolved.Short = short
	} else if stripped, ok := r.stripImpliedPrefix(cmd.Name); ok {
		resolved.Short = stripped
	}

	// A short form longer than what was typed is no shortening at all (the
	// source may already spell the command by an alias).
	if len(resolved.Short) > len(name) {
		resolved.Short = ""
	}

	r.logger.Debug("resolved command", "command", name, "canonical", resolved.Canonical, "short", resolved.Short)
	return resolved
}

// ParameterMap builds the ordered substitution list for one invocation's
// parameter tokens. Tokens that match no declared parameter or whose best
// alias would not shorten them are skipped; duplicate mentions of the same
// canonical parameter keep only the first.
func (r *Resolver) ParameterMap(cmd *registry.Command, tokens []string) []ParameterRewrite {
	var rewrites []ParameterRewrite
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		stripped := strings.TrimLeft(token, "-")
		def, ok := cmd.Parameter(stripped)
		if !ok {
			def, ok = registry.FindParameter(r.reg.CommonParameters(), stripped)
		}
		if !ok {
			r.logger.Debug("unknown parameter, leaving as written", "command", cmd.Name, "token", token)
			continue
		}
		if seen[def.Name] {
			continue
		}
		seen[def.Name] = true

		short := shortest(def.Aliases)
		if short == "" || len(short) >= len(stripped) {
			continue
		}
		rewrites = append(rewrites, ParameterRewrite{
			Canonical:   def.Name,
			Token:       token,
			Replacement: "-" + short,
		})
	}
	return rewrites
}

func (r *Resolver) stripImpliedPrefix(name string) (string, bool) {
	for _, prefix := range r.prefixes {
		if len(name) > len(prefix) && strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			return name[len(prefix):], true
		}
	}
	return "", false
}

// shortest picks the alias with the fewest characters; equal lengths keep
// the earlier declaration.
func shortest(aliases []string) string {
	best := ""
	for _, a := range aliases {
		if a == "" {
			continue
		}
		if best == "" || len(a) < len(best) {
			best = a
		}
	}
	return best
}
