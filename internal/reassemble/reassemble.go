// SPDX-License-Identifier: MPL-2.0

// Package reassemble stitches rewritten fragments back together with their
// original delimiters and applies cosmetic normalization: one canonical
// line-ending sequence and single spaces where runs of plain spaces appeared.
// Normalization never reaches inside quoted string literals.
package reassemble

import (
	"strings"

	"github.com/HCRitter/PSCommandShortener/internal/splitter"
)

// LineEnding is the canonical line-ending sequence for the output.
type LineEnding string

const (
	// CRLF is the two-character Windows sequence, the default for
	// PowerShell-heritage sources.
	CRLF LineEnding = "\r\n"
	// LF is the Unix line ending.
	LF LineEnding = "\n"
)

// Join interleaves fragment[i] with delimiter[i] and normalizes the result.
// A short delimiter list is fine (the last fragment simply has no trailing
// delimiter); surplus trailing delimiters are appended so trailing
// separators in the source survive.
func Join(fragments []string, delimiters []splitter.Delimiter, ending LineEnding) string {
	if ending == "" {
		ending = CRLF
	}

	var b strings.Builder
	for i, frag := range fragments {
		b.WriteString(frag)
		if i < len(delimiters) {
			b.WriteString(string(delimiters[i]))
		}
	}
	for i := len(fragments); i < len(delimiters); i++ {
		b.WriteString(string(delimiters[i]))
	}

	return normalize(b.String(), ending)
}

// normalize rewrites line endings to the canonical sequence and collapses
// runs of two or more plain spaces into one, skipping quoted spans so string
// literals keep their exact contents.
func normalize(s string, ending LineEnding) string {
	var (
		b        strings.Builder
		inSingle bool
		inDouble bool
		escaped  bool
		wasSpace bool
	)
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			b.WriteByte(c)
			continue
		}

		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
			b.WriteByte(c)
			continue
		case inDouble:
			switch c {
			case '`':
				escaped = true
			case '"':
				inDouble = false
			}
			b.WriteByte(c)
			continue
		}

		switch c {
		case '\'':
			inSingle = true
		case '"':
			inDouble = true
		case '`':
			escaped = true
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			b.WriteString(string(ending))
			wasSpace = false
			continue
		case '\n':
			b.WriteString(string(ending))
			wasSpace = false
			continue
		case ' ':
			if wasSpace {
				continue
			}
			wasSpace = true
			b.WriteByte(c)
			continue
		}

		wasSpace = false
		b.WriteByte(c)
	}

	return b.String()
}
