// SPDX-License-Identifier: MPL-2.0

// Package rewrite performs the in-place textual substitution step of the
// shortening pass. Substitutions are scoped to token boundaries and skip
// quoted spans, so a command name that also appears inside a string literal
// in the same fragment is left alone.
package rewrite

import "strings"

// Substitution is one ordered find/replace pair. Find is matched
// case-insensitively against whole tokens only; the first match outside
// quoted spans is replaced.
type Substitution struct {
	Find    string
	Replace string
}

// Apply runs the substitutions against one fragment, in order. Callers put
// the command substitution first so parameter replacements can never clobber
// the command token. A substitution whose token does not occur in the
// fragment is a no-op.
func Apply(fragment string, subs []Substitution) string {
	for _, sub := range subs {
		if sub.Find == "" || sub.Find == sub.Replace {
			continue
		}
		fragment = replaceFirstToken(fragment, sub.Find, sub.Replace)
	}
	return fragment
}

// replaceFirstToken replaces the first whole-token, unquoted occurrence of
// find in s. Quote spans are recomputed per call because earlier
// substitutions shift offsets.
func replaceFirstToken(s, find, replace string) string {
	spans := quotedSpans(s)
	n := len(find)
	for i := 0; i+n <= len(s); i++ {
		if !strings.EqualFold(s[i:i+n], find) {
			continue
		}
		if i > 0 && isTokenChar(s[i-1]) {
			continue
		}
		if i+n < len(s) && isTokenChar(s[i+n]) {
			continue
		}
		if overlapsSpan(spans, i, i+n) {
			continue
		}
		return s[:i] + replace + s[i+n:]
	}
	return s
}

type span struct{ start, end int }

// quotedSpans returns the half-open byte ranges covered by single- or
// double-quoted string literals, quotes included. An unterminated quote
// extends to the end of the fragment.
func quotedSpans(s string) []span {
	var (
		spans   []span
		start   = -1
		single  bool
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}
		c := s[i]
		switch {
		case start >= 0 && single:
			if c == '\'' {
				spans = append(spans, span{start, i + 1})
				start = -1
			}
		case start >= 0:
			switch c {
			case '`':
				escaped = true
			case '"':
				spans = append(spans, span{start, i + 1})
				start = -1
			}
		case c == '\'':
			start, single = i, true
		case c == '"':
			start, single = i, false
		case c == '`':
			escaped = true
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(s)})
	}
	return spans
}

func overlapsSpan(spans []span, start, end int) bool {
	for _, sp := range spans {
		if start < sp.end && end > sp.start {
			return true
		}
	}
	return false
}

// isTokenChar reports whether c can be part of a command or parameter token.
// The hyphen is included so a match never lands inside a hyphenated name.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-':
		return true
	}
	return false
}
