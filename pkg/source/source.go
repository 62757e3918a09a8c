// Package source wraps the text being parsed together with an optional
// name and a column-metrics policy, and implements the byte-run-to-Position
// mapping the lexer cursor relies on for every token it emits.
//
// The column-counting logic here generalizes the teacher's
// (internal/lexer.Lexer).readChar/peekChar rune-at-a-time UTF-8 handling —
// which hard-codes one LF-only, rune-counted policy for DWScript source —
// into four pluggable variants a caller selects per source.
package source

import (
	"unicode/utf8"

	"github.com/cwbudde/pcomb/pkg/span"
)

// ColumnMetrics selects how raw bytes are mapped to (line, column) pairs.
type ColumnMetrics int

const (
	// ASCII advances column by one per byte and treats "\n" as the only
	// line terminator. Cheapest option; undefined results on non-ASCII
	// input (bytes still advance correctly, columns will not match visual
	// width for multi-byte runes).
	ASCII ColumnMetrics = iota
	// UTF8LF advances column by one per Unicode code point (not byte, not
	// display width) and treats "\n" as the only line terminator. This is
	// the policy the teacher's lexer implements.
	UTF8LF
	// UTF8CRLF is like UTF8LF but only "\r\n" ends a line; a lone "\r" or
	// "\n" does not advance the line counter.
	UTF8CRLF
	// UTF8LFOrCRLF is like UTF8LF but treats any of "\n", "\r\n" as a line
	// terminator (a lone "\r" not followed by "\n" also ends the line).
	UTF8LFOrCRLF
)

// Source is an immutable (text, name, metrics) triple. It is cheap to copy
// (a string header, a string header, and an int) and is shared by every
// Cursor cloned from it.
type Source struct {
	Text    string
	Name    string
	Metrics ColumnMetrics
}

// New constructs a Source. name may be empty for anonymous/inline input.
func New(text, name string, metrics ColumnMetrics) Source {
	return Source{Text: text, Name: name, Metrics: metrics}
}

// Len returns the byte length of the source text.
func (s Source) Len() int {
	return len(s.Text)
}

// Slice returns the raw substring covered by sp. Panics if sp is out of
// bounds for s — callers (the lexer cursor) are expected to only ever
// construct spans within [0, s.Len()].
func (s Source) Slice(sp span.Span) string {
	return s.Text[sp.Start.Byte:sp.End.Byte]
}

// StartPosition returns the position at the beginning of the source
// (byte 0, line 1, column 1).
func (s Source) StartPosition() span.Position {
	return span.Position{Byte: 0, Line: 1, Column: 1}
}

// Advance computes the position reached after consuming n bytes of text
// starting at "from", using s.Metrics to drive line/column bookkeeping.
// It is the single place column-counting policy is implemented; the lexer
// cursor calls this once per token/filtered-run and never re-derives
// positions any other way.
func (s Source) Advance(from span.Position, n int) span.Position {
	if n <= 0 {
		return from
	}
	end := from.Byte + n
	if end > len(s.Text) {
		end = len(s.Text)
	}
	chunk := s.Text[from.Byte:end]

	switch s.Metrics {
	case ASCII:
		return s.advanceASCII(from, chunk)
	default:
		return s.advanceUTF8(from, chunk)
	}
}

func (s Source) advanceASCII(from span.Position, chunk string) span.Position {
	pos := from
	for i := 0; i < len(chunk); i++ {
		if chunk[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
		pos.Byte++
	}
	return pos
}

func (s Source) advanceUTF8(from span.Position, chunk string) span.Position {
	pos := from
	i := 0
	for i < len(chunk) {
		b := chunk[i]

		if b == '\n' {
			if s.Metrics == UTF8CRLF {
				// A lone '\n' does not end a line under strict CRLF.
				pos.Column++
			} else {
				pos.Line++
				pos.Column = 1
			}
			pos.Byte++
			i++
			continue
		}

		if b == '\r' {
			if i+1 < len(chunk) && chunk[i+1] == '\n' {
				// "\r\n" pair: under either CRLF variant it ends exactly
				// one line; under UTF8LF it is two ordinary characters
				// (the following '\n' ends the line on its own).
				if s.Metrics == UTF8CRLF || s.Metrics == UTF8LFOrCRLF {
					pos.Line++
					pos.Column = 1
					pos.Byte += 2
					i += 2
					continue
				}
				pos.Column++
				pos.Byte++
				i++
				continue
			}
			// Lone '\r'.
			if s.Metrics == UTF8LFOrCRLF {
				pos.Line++
				pos.Column = 1
			} else {
				pos.Column++
			}
			pos.Byte++
			i++
			continue
		}

		_, size := utf8.DecodeRuneInString(chunk[i:])
		if size == 0 {
			size = 1
		}
		pos.Column++
		pos.Byte += size
		i += size
	}
	return pos
}
