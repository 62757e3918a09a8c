package combinator

import (
	"fmt"

	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/span"
)

// advanced reports whether cur has consumed at least one more visible
// token than before. Every repetition loop below checks this after a
// successful iteration and stops rather than looping again when it is
// false — otherwise an item parser that can legitimately match zero
// tokens (built from Empty, or a Maybe around something absent) would
// spin forever. This is the "stop on no advance" resolution recorded in
// SPEC_FULL.md for the otherwise-unspecified zero-width-item case.
func advanced[T lexer.Token](before int, cur lexer.Cursor[T]) bool {
	return cur.TokenCount() != before
}

// withinMax reports whether count is still allowed to grow: max == nil
// means unbounded (spec.md's max_opt == None).
func withinMax(count int, max *int) bool {
	return max == nil || count < *max
}

// minFailure builds the ValidationFailure a repetition/intersperse
// combinator raises when it stopped (no match, no advance, or max
// reached) having completed fewer than min iterations, per spec.md
// §4.7's "Fails if fewer than min succeeded, with failure span covering
// the partial run." ValidationFailure is always non-suppressible (see
// perr.ParseError.IsSuppressible), so an enclosing Maybe/Either cannot
// quietly treat an under-min repetition as "didn't match".
func minFailure[T lexer.Token](start span.Position, cur lexer.Cursor[T], min, got int) *perr.ParseError {
	whole := span.Span{Start: start, End: cur.Position()}
	return perr.New(perr.ValidationFailure, whole,
		fmt.Sprintf("expected at least %d, found %d", min, got))
}

// Repeat applies p between min and max times (max == nil for unbounded)
// and returns how many times it succeeded. Stops early on a p failure, a
// zero-width match, or reaching max; fails only if fewer than min
// iterations completed.
func Repeat[T lexer.Token, V any](min int, max *int, p Parser[T, V]) Parser[T, int] {
	return func(c lexer.Cursor[T]) Result[T, int] {
		start := c.Position()
		count := 0
		cur := c
		for withinMax(count, max) {
			before := cur.TokenCount()
			r := p(cur)
			if !r.Ok {
				break
			}
			count++
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if count < min {
			return Failure[T, int](cur, minFailure(start, cur, min, count))
		}
		return Success[T, int](count, cur)
	}
}

// RepeatCollect is Repeat, collecting every value into a slice (nil, not
// an error, when min is 0 and p never matches).
func RepeatCollect[T lexer.Token, V any](min int, max *int, p Parser[T, V]) Parser[T, []V] {
	return func(c lexer.Cursor[T]) Result[T, []V] {
		start := c.Position()
		var vals []V
		cur := c
		for withinMax(len(vals), max) {
			before := cur.TokenCount()
			r := p(cur)
			if !r.Ok {
				break
			}
			vals = append(vals, r.Value)
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if len(vals) < min {
			return Failure[T, []V](cur, minFailure(start, cur, min, len(vals)))
		}
		return Success[T, []V](vals, cur)
	}
}

// RepeatUntil applies p (between min and max times, max == nil for
// unbounded) until stop reports true for the current cursor, returning
// the number of successful applications. A p failure before stop matches
// is propagated as a real error — RepeatUntil expects every element up
// to the stop condition to parse. Fails with minFailure if stop (or max)
// is reached having completed fewer than min iterations.
func RepeatUntil[T lexer.Token, V any](min int, max *int, p Parser[T, V], stop func(lexer.Cursor[T]) bool) Parser[T, int] {
	return func(c lexer.Cursor[T]) Result[T, int] {
		start := c.Position()
		count := 0
		cur := c
		for !stop(cur) && withinMax(count, max) {
			before := cur.TokenCount()
			r := p(cur)
			if !r.Ok {
				return Failure[T, int](r.Cursor, r.Err)
			}
			count++
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if count < min {
			return Failure[T, int](cur, minFailure(start, cur, min, count))
		}
		return Success[T, int](count, cur)
	}
}

// RepeatCollectUntil is RepeatUntil, collecting every value.
func RepeatCollectUntil[T lexer.Token, V any](min int, max *int, p Parser[T, V], stop func(lexer.Cursor[T]) bool) Parser[T, []V] {
	return func(c lexer.Cursor[T]) Result[T, []V] {
		start := c.Position()
		var vals []V
		cur := c
		for !stop(cur) && withinMax(len(vals), max) {
			before := cur.TokenCount()
			r := p(cur)
			if !r.Ok {
				return Failure[T, []V](r.Cursor, r.Err)
			}
			vals = append(vals, r.Value)
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if len(vals) < min {
			return Failure[T, []V](cur, minFailure(start, cur, min, len(vals)))
		}
		return Success[T, []V](vals, cur)
	}
}

// Intersperse parses `item (sep item)*`, between min and max items
// (max == nil for unbounded), and returns how many items were found.
// Absent min, zero items (item fails on the very first attempt) is
// success, not failure — the list is simply empty; min > 0 turns that
// into a minFailure instead. Once the first item has matched, a sep that
// matches without a following item is always a real error — Intersperse
// never backtracks over a matched separator, regardless of min/max.
func Intersperse[T lexer.Token, V, S any](min int, max *int, item Parser[T, V], sep Parser[T, S]) Parser[T, int] {
	return func(c lexer.Cursor[T]) Result[T, int] {
		start := c.Position()
		count := 0
		cur := c
		for withinMax(count, max) {
			before := cur.TokenCount()
			var r Result[T, V]
			if count == 0 {
				r = item(cur)
			} else {
				rs := sep(cur)
				if !rs.Ok {
					break
				}
				r = item(rs.Cursor)
			}
			if !r.Ok {
				if count == 0 {
					break
				}
				return Failure[T, int](r.Cursor, r.Err)
			}
			count++
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if count < min {
			return Failure[T, int](cur, minFailure(start, cur, min, count))
		}
		return Success[T, int](count, cur)
	}
}

// IntersperseCollect is Intersperse, collecting every item's value.
func IntersperseCollect[T lexer.Token, V, S any](min int, max *int, item Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return func(c lexer.Cursor[T]) Result[T, []V] {
		start := c.Position()
		var vals []V
		cur := c
		for withinMax(len(vals), max) {
			before := cur.TokenCount()
			var r Result[T, V]
			if len(vals) == 0 {
				r = item(cur)
			} else {
				rs := sep(cur)
				if !rs.Ok {
					break
				}
				r = item(rs.Cursor)
			}
			if !r.Ok {
				if len(vals) == 0 {
					break
				}
				return Failure[T, []V](r.Cursor, r.Err)
			}
			vals = append(vals, r.Value)
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if len(vals) < min {
			return Failure[T, []V](cur, minFailure(start, cur, min, len(vals)))
		}
		return Success[T, []V](vals, cur)
	}
}

// IntersperseUntil is Intersperse, but first checks stop before
// attempting the very first item: an empty list recognized by stop is
// unambiguously empty, rather than inferred from item's failure (useful
// when item's own failure mode might otherwise be mistaken for "no
// items" in an ambiguous grammar). Once past that check, a missing item
// or separator-without-item is always a real error, for every element
// including the first — unlike Intersperse, IntersperseUntil never
// treats a first-item failure as "just empty". Fails with minFailure if
// stop (or max) is reached having completed fewer than min items.
func IntersperseUntil[T lexer.Token, V, S any](min int, max *int, item Parser[T, V], sep Parser[T, S], stop func(lexer.Cursor[T]) bool) Parser[T, int] {
	return func(c lexer.Cursor[T]) Result[T, int] {
		start := c.Position()
		count := 0
		cur := c
		for !stop(cur) && withinMax(count, max) {
			before := cur.TokenCount()
			var r Result[T, V]
			if count == 0 {
				r = item(cur)
			} else {
				rs := sep(cur)
				if !rs.Ok {
					break
				}
				r = item(rs.Cursor)
			}
			if !r.Ok {
				return Failure[T, int](r.Cursor, r.Err)
			}
			count++
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if count < min {
			return Failure[T, int](cur, minFailure(start, cur, min, count))
		}
		return Success[T, int](count, cur)
	}
}

// IntersperseCollectUntil is IntersperseUntil, collecting every item's
// value.
func IntersperseCollectUntil[T lexer.Token, V, S any](min int, max *int, item Parser[T, V], sep Parser[T, S], stop func(lexer.Cursor[T]) bool) Parser[T, []V] {
	return func(c lexer.Cursor[T]) Result[T, []V] {
		start := c.Position()
		var vals []V
		cur := c
		for !stop(cur) && withinMax(len(vals), max) {
			before := cur.TokenCount()
			var r Result[T, V]
			if len(vals) == 0 {
				r = item(cur)
			} else {
				rs := sep(cur)
				if !rs.Ok {
					break
				}
				r = item(rs.Cursor)
			}
			if !r.Ok {
				return Failure[T, []V](r.Cursor, r.Err)
			}
			vals = append(vals, r.Value)
			cur = r.Cursor
			if !advanced(before, cur) {
				break
			}
		}
		if len(vals) < min {
			return Failure[T, []V](cur, minFailure(start, cur, min, len(vals)))
		}
		return Success[T, []V](vals, cur)
	}
}
