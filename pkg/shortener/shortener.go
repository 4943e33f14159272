// SPDX-License-Identifier: MPL-2.0

// Package shortener is the alias-shortening engine: it rewrites each command
// invocation in a block of source text to the shortest equivalent spelling
// the registry knows, while keeping the pipes, semicolons, and newlines that
// held the original statements together.
//
// One call is one complete pass (split, resolve, rewrite, reassemble) over
// the input; no state survives between calls, so a single Shortener may be
// used concurrently as long as its registry stays read-only.
package shortener

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/HCRitter/PSCommandShortener/internal/reassemble"
	"github.com/HCRitter/PSCommandShortener/internal/resolve"
	"github.com/HCRitter/PSCommandShortener/internal/rewrite"
	"github.com/HCRitter/PSCommandShortener/internal/splitter"
	"github.com/HCRitter/PSCommandShortener/pkg/parser"
	"github.com/HCRitter/PSCommandShortener/pkg/registry"
)

type (
	// Shortener runs shortening passes. Build one with New; the zero value
	// is not usable.
	Shortener struct {
		parser   parser.Parser
		registry registry.Registry
		resolver *resolve.Resolver
		ending   reassemble.LineEnding
		logger   *log.Logger
	}

	// Option configures a Shortener.
	Option func(*config)

	config struct {
		parser   parser.Parser
		registry registry.Registry
		prefixes []string
		ending   reassemble.LineEnding
		logger   *log.Logger
	}

	// Result is the outcome of one shortening pass.
	Result struct {
		// Source is the input exactly as given.
		Source string
		// Shortened is the rewritten, normalized output.
		Shortened string
		// Saved is the number of characters removed over the whole pass.
		// Whitespace normalization counts too, so Saved can be positive
		// even when no invocation changed.
		Saved int
		// Changes lists the invocations that were actually rewritten, in
		// source order.
		Changes []Change
	}

	// Change records the rewrite of a single invocation.
	Change struct {
		// Canonical is the registry's canonical name for the command.
		Canonical string
		// Before and After are the trimmed fragment texts around the rewrite.
		Before string
		After  string
		// Saved is the number of characters this rewrite removed.
		Saved int
	}
)

// WithParser substitutes the structural parser. Useful for tests and for
// callers that already hold a parsed representation.
func WithParser(p parser.Parser) Option {
	return func(c *config) { c.parser = p }
}

// WithRegistry substitutes the alias registry. The registry must not be
// mutated while the Shortener is in use.
func WithRegistry(reg registry.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithImpliedPrefixes overrides the verb prefixes stripped from alias-less
// command names.
func WithImpliedPrefixes(prefixes []string) Option {
	return func(c *config) { c.prefixes = prefixes }
}

// WithLineEnding sets the canonical line ending of the output.
func WithLineEnding(ending reassemble.LineEnding) Option {
	return func(c *config) { c.ending = ending }
}

// WithLogger routes engine debug logging to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New builds a Shortener. Without options it parses with the mvdan.cc/sh
// backed parser, resolves against the embedded default alias table, and
// emits CRLF line endings.
func New(opts ...Option) (*Shortener, error) {
	cfg := config{
		parser:   parser.NewShellParser(),
		prefixes: resolve.DefaultImpliedPrefixes,
		ending:   reassemble.CRLF,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.registry == nil {
		reg, err := registry.Default()
		if err != nil {
			return nil, err
		}
		cfg.registry = reg
	}

	return &Shortener{
		parser:   cfg.parser,
		registry: cfg.registry,
		resolver: resolve.NewResolver(cfg.registry,
			resolve.WithImpliedPrefixes(cfg.prefixes),
			resolve.WithLogger(cfg.logger)),
		ending: cfg.ending,
		logger: cfg.logger,
	}, nil
}

// Shorten rewrites source and returns the shortened text. Only a structural
// parse failure is an error; every resolution miss degrades to "leave as
// written".
func (s *Shortener) Shorten(source string) (string, error) {
	result, err := s.Report(source)
	if err != nil {
		return "", err
	}
	return result.Shortened, nil
}

// Report rewrites source like Shorten and additionally returns what changed
// and how many characters each rewrite saved.
func (s *Shortener) Report(source string) (Result, error) {
	fragments, delimiters := splitter.Split(source)

	invocations, err := s.parser.Parse(source)
	if err != nil {
		return Result{}, err
	}

	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}

	// Code fragments and invocations correspond by position; comment-only
	// fragments carry no invocation, so they are skipped when pairing and
	// pass through untouched. On skew, the zipped prefix is still processed
	// and everything past it passes through unmodified; user text is never
	// dropped.
	active := 0
	for _, f := range fragments {
		if !f.CommentOnly {
			active++
		}
	}
	if active != len(invocations) {
		s.logger.Warn("fragment/invocation count mismatch, trailing text passes through",
			"fragments", active, "invocations", len(invocations))
	}

	var changes []Change
	next := 0
	for i := range fragments {
		if fragments[i].CommentOnly {
			continue
		}
		if next >= len(invocations) {
			break
		}
		inv := invocations[next]
		next++
		resolved, params, known := s.resolver.Invocation(inv.Command, inv.Parameters)
		if !known {
			continue
		}

		subs := make([]rewrite.Substitution, 0, len(params)+1)
		if resolved.Short != "" {
			subs = append(subs, rewrite.Substitution{Find: inv.Command, Replace: resolved.Short})
		}
		for _, p := range params {
			subs = append(subs, rewrite.Substitution{Find: p.Token, Replace: p.Replacement})
		}

		after := rewrite.Apply(texts[i], subs)
		if after != texts[i] {
			changes = append(changes, Change{
				Canonical: resolved.Canonical,
				Before:    strings.TrimSpace(texts[i]),
				After:     strings.TrimSpace(after),
				Saved:     len(texts[i]) - len(after),
			})
			texts[i] = after
		}
	}

	shortened := reassemble.Join(texts, delimiters, s.ending)
	return Result{
		Source:    source,
		Shortened: shortened,
		Saved:     len(source) - len(shortened),
		Changes:   changes,
	}, nil
}
