package combinator

import (
	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/span"
)

// WithSpan pairs a value with the span of source it was parsed from.
type WithSpan[V any] struct {
	Value V
	Span  span.Span
}

// Spanned runs p and records the span it consumed alongside its value.
// The span is taken from the cursor position on entry to the cursor
// position on exit, independent of any cut_span anchor p's own internals
// may have reset — so Spanned composes safely around arbitrary child
// parsers.
func Spanned[T lexer.Token, V any](p Parser[T, V]) Parser[T, WithSpan[V]] {
	return func(c lexer.Cursor[T]) Result[T, WithSpan[V]] {
		start := c.Position()
		r := p(c)
		if !r.Ok {
			return Failure[T, WithSpan[V]](r.Cursor, r.Err)
		}
		sp := span.Span{Start: start, End: r.Cursor.Position()}
		return Success[T, WithSpan[V]](WithSpan[V]{Value: r.Value, Span: sp}, r.Cursor)
	}
}

// Map runs p and applies f to its value, changing the parser's result
// type without touching the cursor.
func Map[T lexer.Token, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(c lexer.Cursor[T]) Result[T, B] {
		r := p(c)
		if !r.Ok {
			return Failure[T, B](r.Cursor, r.Err)
		}
		return Success[T, B](f(r.Value), r.Cursor)
	}
}

// Text runs p and returns the raw source text it consumed, discarding
// p's own value.
func Text[T lexer.Token, V any](p Parser[T, V]) Parser[T, string] {
	return func(c lexer.Cursor[T]) Result[T, string] {
		start := c.Position()
		r := p(c)
		if !r.Ok {
			return Failure[T, string](r.Cursor, r.Err)
		}
		text := r.Cursor.SourceSlice(span.Span{Start: start, End: r.Cursor.Position()})
		return Success[T, string](text, r.Cursor)
	}
}

// Discard runs p and drops its value, keeping only whether it matched.
func Discard[T lexer.Token, V any](p Parser[T, V]) Parser[T, Unit] {
	return func(c lexer.Cursor[T]) Result[T, Unit] {
		r := p(c)
		if !r.Ok {
			return Failure[T, Unit](r.Cursor, r.Err)
		}
		return Success[T, Unit](Unit{}, r.Cursor)
	}
}

// FilterWith runs p with filter temporarily in force instead of the
// cursor's own filter set, restoring the original filter afterward
// regardless of outcome.
func FilterWith[T lexer.Token, V any](p Parser[T, V], filter lexer.FilterSet[T]) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		inner := c.PushFilter(filter)
		r := p(inner)
		if !r.Ok {
			return Failure[T, V](r.Cursor.PopFilter(), r.Err)
		}
		return Success[T, V](r.Value, r.Cursor.PopFilter())
	}
}

// Unfiltered runs p with every token visible, including ones the
// enclosing filter set would normally hide. Used by grammar rules that
// care about whitespace or comments the rest of the grammar ignores.
func Unfiltered[T lexer.Token, V any](p Parser[T, V]) Parser[T, V] {
	return FilterWith[T, V](p, lexer.NoFilter[T]())
}

// Section wraps p with a named context frame: on failure, the error is
// widened to span the whole section and gains a highlight naming it
// (perr.DecorateSection). Use this around a grammar rule whose name is
// more useful to a reader than whatever token deep inside it actually
// failed to match ("while parsing function declaration", say).
func Section[T lexer.Token, V any](description string, p Parser[T, V]) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		start := c.Position()
		r := p(c)
		if r.Ok {
			return r
		}
		anchor := span.Span{Start: start, End: r.Cursor.Position()}
		frame := perr.Frame{Kind: perr.Section, Description: description, Anchor: anchor}
		return Failure[T, V](r.Cursor, perr.DecorateSection(r.Err, frame))
	}
}

// Raw strips every context decoration a failure inside p accumulated,
// keeping only its kind, severity, primary label and cause (perr.StripRaw).
// Use around performance-sensitive leaf parses where only bare lexer
// errors are expected and the decoration machinery is pure overhead.
func Raw[T lexer.Token, V any](p Parser[T, V]) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		r := p(c)
		if r.Ok {
			return r
		}
		return Failure[T, V](r.Cursor, perr.StripRaw(r.Err))
	}
}
