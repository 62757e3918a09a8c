package combinator

import (
	"fmt"

	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/span"
)

// Empty always succeeds without consuming any input, yielding value. Like
// an empty Seq or a Maybe with no match, it leaves the cursor where it was.
func Empty[T lexer.Token, V any](value V) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		return Success[T, V](value, c)
	}
}

// Fail always fails at the current position with a ValidationFailure,
// regardless of input. Typical use: a grammar rule rejecting a value a
// later semantic check disallows.
func Fail[T lexer.Token, V any](message string) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		err := perr.New(perr.ValidationFailure, span.Empty(c.Position()), message)
		return Failure[T, V](c, err)
	}
}

// One matches exactly one token equal to expected and yields it. It peeks
// before consuming, so a mismatch leaves the cursor exactly where it
// found it — only a match (or running into end of text/an unrecognized
// run while looking) ever advances position.
func One[T lexer.Token](expected T) Parser[T, T] {
	return func(c lexer.Cursor[T]) Result[T, T] {
		tok, sp, ok := c.Peek()
		if !ok {
			_, _, next, err := c.Next()
			return Failure[T, T](next, err.(*perr.ParseError))
		}
		if tok != expected {
			e := perr.New(perr.UnexpectedToken, sp,
				fmt.Sprintf("expected %s, found %s", expected, tok))
			return Failure[T, T](c, e)
		}
		_, _, next, err := c.Next()
		if err != nil {
			return Failure[T, T](next, err.(*perr.ParseError))
		}
		return Success[T, T](tok, next)
	}
}

// Any matches exactly one token that equals any member of allowed and
// yields it, with the same peek-before-consume discipline as One.
func Any[T lexer.Token](allowed ...T) Parser[T, T] {
	set := make(map[T]struct{}, len(allowed))
	for _, t := range allowed {
		set[t] = struct{}{}
	}
	return func(c lexer.Cursor[T]) Result[T, T] {
		tok, sp, ok := c.Peek()
		if !ok {
			_, _, next, err := c.Next()
			return Failure[T, T](next, err.(*perr.ParseError))
		}
		if _, found := set[tok]; !found {
			e := perr.New(perr.UnexpectedToken, sp,
				fmt.Sprintf("unexpected token %s", tok))
			return Failure[T, T](c, e)
		}
		_, _, next, err := c.Next()
		if err != nil {
			return Failure[T, T](next, err.(*perr.ParseError))
		}
		return Success[T, T](tok, next)
	}
}

// Seq runs parsers in order over the same value type, collecting each
// result into a slice. Fails (and stops) at the first element that
// fails. An empty parsers list always succeeds with an empty slice — the
// open question of whether Seq should see tokens the active filter set
// hides is resolved the same way every other combinator here resolves it:
// Seq has no filtering opinion of its own and simply runs each child
// parser against whatever cursor it is handed (see SPEC_FULL.md).
func Seq[T lexer.Token, V any](parsers ...Parser[T, V]) Parser[T, []V] {
	return func(c lexer.Cursor[T]) Result[T, []V] {
		vals := make([]V, 0, len(parsers))
		cur := c
		for _, p := range parsers {
			r := p(cur)
			if !r.Ok {
				return Failure[T, []V](r.Cursor, r.Err)
			}
			vals = append(vals, r.Value)
			cur = r.Cursor
		}
		return Success[T, []V](vals, cur)
	}
}

// SeqTokens matches len(ts) consecutive tokens equal to ts, pointwise, in
// order — spec.md §4.4's literal `seq(ts)`, distinct from Seq's N-ary
// generalization over arbitrary Parser[T,V] values. A mismatch, or
// running out of input partway through, fails with a single span
// covering the whole attempted run (from where matching started to where
// it gave up), not just the offending token, per §4.4's "failure span is
// the whole attempted span".
func SeqTokens[T lexer.Token](ts ...T) Parser[T, []T] {
	return func(c lexer.Cursor[T]) Result[T, []T] {
		start := c.Position()
		vals := make([]T, 0, len(ts))
		cur := c
		for _, want := range ts {
			tok, sp, ok := cur.Peek()
			if !ok {
				_, _, next, nextErr := cur.Next()
				err := nextErr.(*perr.ParseError)
				err.Primary.Span = span.Join(span.Empty(start), err.Primary.Span)
				return Failure[T, []T](next, err)
			}
			if tok != want {
				e := perr.New(perr.UnexpectedToken, span.Join(span.Empty(start), sp),
					fmt.Sprintf("expected %s, found %s", want, tok))
				return Failure[T, []T](cur, e)
			}
			_, _, next, nextErr := cur.Next()
			if nextErr != nil {
				err := nextErr.(*perr.ParseError)
				err.Primary.Span = span.Join(span.Empty(start), err.Primary.Span)
				return Failure[T, []T](next, err)
			}
			vals = append(vals, tok)
			cur = next
		}
		return Success[T, []T](vals, cur)
	}
}

// EndOfText succeeds (with Unit) only if no visible token remains.
func EndOfText[T lexer.Token]() Parser[T, Unit] {
	return func(c lexer.Cursor[T]) Result[T, Unit] {
		tok, sp, ok := c.Peek()
		if !ok {
			return Success[T, Unit](Unit{}, c)
		}
		e := perr.New(perr.ExpectedEndOfText, sp,
			fmt.Sprintf("expected end of text, found %s", tok))
		return Failure[T, Unit](c, e)
	}
}
