// Package combinator implements the parser-combinator algebra: a Result
// type carrying either a value and the cursor reached, or a failure; a
// Parser function type over that Result; and the primitive, join,
// repetition, alternative and transform combinators built from it.
//
// This generalizes the teacher's internal/parser/combinators.go — whose
// doc comment calls out the same goals ("Type-safe... Composable...
// Zero overhead") but builds them as *Parser methods closing over mutable
// lexer/cursor state and returning bool/AST-node pairs — into pure
// functions over an immutable lexer.Cursor[T], parametric in both the
// token alphabet T and the value V a parser produces.
package combinator

import (
	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
)

// Result is what running a Parser produces: on success, a value and the
// cursor reached after consuming it; on failure, the attempted cursor
// (purely informational — backtracking combinators restore from their
// own saved mark, never from a failed Result's cursor) and the error that
// explains why.
type Result[T lexer.Token, V any] struct {
	Ok     bool
	Value  V
	Cursor lexer.Cursor[T]
	Err    *perr.ParseError
}

// Success builds a successful Result.
func Success[T lexer.Token, V any](value V, cur lexer.Cursor[T]) Result[T, V] {
	return Result[T, V]{Ok: true, Value: value, Cursor: cur}
}

// Failure builds a failed Result. cur is the cursor reached by the
// attempt (for error spans and diagnostics), not necessarily the cursor
// a caller should resume from.
func Failure[T lexer.Token, V any](cur lexer.Cursor[T], err *perr.ParseError) Result[T, V] {
	return Result[T, V]{Ok: false, Cursor: cur, Err: err}
}

// Parser is a function from a cursor to a Result: the unit every
// combinator in this package consumes and produces. Parsers never mutate
// their input cursor (Cursor itself is an immutable value) — backtracking
// is just not adopting the returned cursor.
type Parser[T lexer.Token, V any] func(lexer.Cursor[T]) Result[T, V]

// Unit is the value type for parsers that succeed or fail without
// producing any data of interest (end_of_text, discard).
type Unit struct{}

// Pair holds the two values a Both combinator produces.
type Pair[A, B any] struct {
	First  A
	Second B
}
