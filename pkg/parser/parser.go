// SPDX-License-Identifier: MPL-2.0

// Package parser extracts invocation metadata from raw source text using the
// mvdan.cc/sh syntax tree. It is the structural collaborator of the
// shortening engine: it reports what commands appear and which parameter
// tokens they carry, in source order, and signals a structured failure when
// the source does not parse.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrParse is the sentinel error wrapped by ParseError.
var ErrParse = errors.New("source parse failure")

type (
	// Invocation is the metadata of one command call: the command name as
	// written and its dash-prefixed parameter tokens, in source order.
	Invocation struct {
		Command    string
		Parameters []string
	}

	// Parser is the structural-parse contract the engine depends on. Parse
	// returns invocations in source-traversal order, or a ParseError; it
	// never returns a silent empty result for syntactically invalid input.
	Parser interface {
		Parse(source string) ([]Invocation, error)
	}

	// ShellParser is the Parser implementation backed by mvdan.cc/sh. The
	// zero value is ready to use and safe for concurrent calls.
	ShellParser struct{}

	// ParseError is returned when the source cannot be parsed into a syntax
	// tree. It wraps ErrParse for errors.Is() compatibility; the underlying
	// syntax error is available through Unwrap chains via Reason.
	ParseError struct {
		Reason error
	}
)

// NewShellParser creates a parser for command pipelines.
func NewShellParser() *ShellParser { return &ShellParser{} }

// Parse implements Parser. Statements joined by pipes, semicolons, or
// newlines each yield one invocation; nested calls inside substitutions are
// ignored so the result pairs positionally with the delimiter splitter's
// code fragments.
func (p *ShellParser) Parse(source string) ([]Invocation, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(source), "source")
	if err != nil {
		return nil, &ParseError{Reason: err}
	}

	var invocations []Invocation
	for _, stmt := range prog.Stmts {
		collect(stmt.Cmd, &invocations)
	}
	return invocations, nil
}

// collect walks the pipeline/list structure of one statement. Only the
// top-level call chain is visited; command substitutions and other nested
// constructs stay untouched inside their parent's fragment.
func collect(cmd syntax.Command, invocations *[]Invocation) {
	switch node := cmd.(type) {
	case *syntax.CallExpr:
		if inv, ok := invocationFromCall(node); ok {
			*invocations = append(*invocations, inv)
		}
	case *syntax.BinaryCmd:
		collect(node.X.Cmd, invocations)
		collect(node.Y.Cmd, invocations)
	}
}

// IsInvocationNode reports whether a syntax node is a command invocation.
// This is the typed predicate counterpart to Parse for callers that walk the
// tree themselves.
func IsInvocationNode(node syntax.Node) bool {
	call, ok := node.(*syntax.CallExpr)
	return ok && len(call.Args) > 0
}

func invocationFromCall(call *syntax.CallExpr) (Invocation, bool) {
	if len(call.Args) == 0 {
		// Bare assignment, no command word.
		return Invocation{}, false
	}

	name := call.Args[0].Lit()
	if name == "" {
		// Command word is not a plain literal (expansion, quoted, ...);
		// nothing the registry could resolve.
		return Invocation{}, false
	}

	inv := Invocation{Command: name}
	for _, arg := range call.Args[1:] {
		lit := arg.Lit()
		if len(lit) > 1 && strings.HasPrefix(lit, "-") {
			inv.Parameters = append(inv.Parameters, lit)
		}
	}
	return inv, true
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("source parse failure: %v", e.Reason)
}

// Unwrap exposes both ErrParse and the underlying syntax error, so callers
// can match the sentinel with errors.Is and still reach the cause.
func (e *ParseError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Reason}
}
