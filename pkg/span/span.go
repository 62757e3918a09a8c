// Package span implements byte/line/column positions and half-open spans
// over a source text, plus the monoid-like join operation combinators use
// to grow spans implicitly as a parse advances.
package span

import "fmt"

// Position is a single point in a source: a byte offset plus the derived
// line and column at that offset. Positions are monotonically
// non-decreasing along a source and are derived solely from the source
// prefix and the column-metrics policy in force (see package source).
type Position struct {
	Byte   int
	Line   int
	Column int
}

// String renders a position as "line:column", matching the teacher's
// Position.String() convention.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p looks like a position that was ever set by a
// lexer (line/column start at 1).
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 1
}

// Span is a half-open byte range [Start, End) in one source. Two spans are
// only meaningfully joined when they come from the same source; nothing
// here checks that invariant since Position carries no source identity —
// callers are expected to keep spans from a single source.Source together
// (see source.Source.Slice, which is the only place spans are resolved to
// text).
type Span struct {
	Start Position
	End   Position
}

// Empty returns the zero-length span at p, i.e. [p, p).
func Empty(p Position) Span {
	return Span{Start: p, End: p}
}

// Len reports the byte length of the span.
func (s Span) Len() int {
	return s.End.Byte - s.Start.Byte
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start.Byte == s.End.Byte
}

// Join returns the smallest span covering both a and b:
//
//	Join(a, b) = [min(a.Start, b.Start), max(a.End, b.End))
//
// Join is associative and commutative over the Byte ordering, which is the
// only ordering combinators rely on.
func Join(a, b Span) Span {
	start := a.Start
	if b.Start.Byte < start.Byte {
		start = b.Start
	}
	end := a.End
	if b.End.Byte > end.Byte {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// String renders a span as "line:column-line:column".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
