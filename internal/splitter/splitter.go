// SPDX-License-Identifier: MPL-2.0

// Package splitter breaks raw source text into statement fragments and the
// literal delimiter tokens between them. Splitting happens only at the top
// syntactic level: a pipe inside a quoted string, a semicolon inside a
// script block, or a separator inside a line comment is part of its
// fragment, not a delimiter.
package splitter

import "strings"

type (
	// Fragment is one delimiter-bounded segment of source text. Index is the
	// position among retained fragments. CommentOnly marks fragments whose
	// only content is a line comment; such fragments carry no invocation and
	// must be passed through untouched when pairing fragments with parsed
	// invocations.
	Fragment struct {
		Index       int
		Text        string
		CommentOnly bool
	}

	// Delimiter is the literal separator token as it appeared in the source:
	// ";", "|", "\n", or "\r\n".
	Delimiter string

	// scanner tracks the quote, comment, and nesting state needed to decide
	// whether a separator character is a top-level delimiter.
	scanner struct {
		inSingle  bool
		inDouble  bool
		inComment bool
		escaped   bool
		depth     int
	}
)

// Split partitions source into fragments and the delimiters that separated
// them. Whitespace-only fragments are discarded; their surrounding delimiters
// are kept so the original structure survives reassembly. A "#" at the start
// of a word opens a comment that shields the rest of the line, though the
// terminating newline still counts as a delimiter. Split never fails:
// unbalanced quotes or blocks simply stop further splitting, leaving the
// remainder as one fragment.
func Split(source string) ([]Fragment, []Delimiter) {
	var (
		fragments  []Fragment
		delimiters []Delimiter
		start      int
		prev       byte
		st         scanner
	)

	// commentAt is the index of the first top-level comment marker in the
	// current fragment, or -1 when the fragment has none.
	commentAt := -1

	emit := func(end int) {
		text := source[start:end]
		if strings.TrimSpace(text) == "" {
			commentAt = -1
			return
		}
		code := text
		if commentAt >= start {
			code = source[start:commentAt]
		}
		fragments = append(fragments, Fragment{
			Index:       len(fragments),
			Text:        text,
			CommentOnly: strings.TrimSpace(code) == "",
		})
		commentAt = -1
	}

	for i := 0; i < len(source); i++ {
		c := source[i]

		wasComment := st.inComment
		shielded := st.consume(c, prev)
		prev = c
		if st.inComment && !wasComment && commentAt < start {
			commentAt = i
		}
		if shielded {
			continue
		}

		switch c {
		case ';', '|':
			emit(i)
			delimiters = append(delimiters, Delimiter(source[i:i+1]))
			start = i + 1
		case '\n':
			emit(i)
			delimiters = append(delimiters, Delimiter("\n"))
			start = i + 1
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				emit(i)
				delimiters = append(delimiters, Delimiter("\r\n"))
				i++
				prev = '\n'
				start = i + 1
			}
		}
	}
	emit(len(source))

	return fragments, delimiters
}

// consume advances the scanner state for one byte and reports whether the
// byte is shielded from delimiter handling (inside quotes, inside a comment,
// inside a nested block, or escaped). prev is the preceding source byte, or
// zero at the start of input; it decides whether "#" opens a comment or is
// part of a word.
func (st *scanner) consume(c, prev byte) bool {
	if st.escaped {
		st.escaped = false
		return true
	}

	switch {
	case st.inSingle:
		if c == '\'' {
			st.inSingle = false
		}
		return true
	case st.inDouble:
		switch c {
		case '`':
			// Backtick escapes the next character inside double quotes.
			st.escaped = true
		case '"':
			st.inDouble = false
		}
		return true
	case st.inComment:
		if c == '\n' || c == '\r' {
			st.inComment = false
			return false
		}
		return true
	}

	switch c {
	case '\'':
		st.inSingle = true
		return true
	case '"':
		st.inDouble = true
		return true
	case '`':
		st.escaped = true
		return true
	case '#':
		if st.depth == 0 && startsWord(prev) {
			st.inComment = true
			return true
		}
	case '{', '(', '[':
		st.depth++
		return true
	case '}', ')', ']':
		if st.depth > 0 {
			st.depth--
		}
		return true
	}

	return st.depth > 0
}

// startsWord reports whether a byte in position prev leaves the next byte at
// the start of a word. "#" only opens a comment in word-start position;
// embedded in a word it is an ordinary character.
func startsWord(prev byte) bool {
	switch prev {
	case 0, ' ', '\t', '\n', '\r', ';', '|', '(', '{':
		return true
	}
	return false
}
