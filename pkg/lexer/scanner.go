// Package lexer implements a stateful text cursor: peek/next with
// implicit span joining, cheap snapshotting for backtracking, token
// filtering, and delimiter-driven recovery scans. It is driven by a
// consumer-supplied Scanner over a shared source.Source.
//
// This generalizes the teacher's internal/parser.TokenCursor — "All
// operations return new cursor instances... Zero manual nextToken()
// calls in parsing code" — from a buffer over one fixed DWScript token
// type into Cursor[T Token], immutable over any consumer-chosen alphabet.
package lexer

import (
	"unicode/utf8"

	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/span"
)

// Token is the constraint a consumer's token-tag type must satisfy:
// comparable (so combinators can test token identity) and a Stringer (so
// diagnostics can render it).
type Token interface {
	comparable
	String() string
}

// Lexeme is the scanner's raw output: a token tag plus how many bytes of
// the supplied suffix it consumed.
type Lexeme[T Token] struct {
	Token  T
	Length int
}

// Scanner is the consumer-provided token recognizer. Given a text suffix
// and the position it starts at, Scan returns the next lexeme and true,
// or the zero Lexeme and false if nothing matches at that position (the
// cursor treats that as UnrecognizedToken, unless the suffix is empty,
// which means end of text).
//
// A scanner may carry internal mode across calls (nested-comment depth,
// string-interpolation state), so it must be clonable. The cursor always
// calls Scan on a just-cloned Scanner so an unsuccessful Peek never leaks
// state back into the committed cursor.
type Scanner[T Token] interface {
	Scan(suffix string, pos span.Position) (Lexeme[T], bool)
	Clone() Scanner[T]
}

// FilterSet names the tokens invisible to Peek/Next — typically
// whitespace and comments — while still advancing cursor position.
type FilterSet[T Token] map[T]struct{}

// NewFilterSet builds a FilterSet from the given tokens.
func NewFilterSet[T Token](tokens ...T) FilterSet[T] {
	set := make(FilterSet[T], len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// NoFilter is the empty filter set: every token is visible.
func NoFilter[T Token]() FilterSet[T] {
	return FilterSet[T]{}
}

func runeLen(s string) int {
	if s == "" {
		return 1
	}
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 1
	}
	return size
}

// unrecognizedMessage renders the standard diagnostic for an
// UnrecognizedToken error; factored out since both Cursor.Next and
// recovery scans (AdvanceTo/AdvancePast encountering a bad run) need it.
func unrecognizedMessage(errSpan span.Span) *perr.ParseError {
	return perr.New(perr.UnrecognizedToken, errSpan, "unrecognized token")
}
