package combinator

import (
	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/span"
)

// Maybe tries p; if it fails with a suppressible error (severity below
// Atomic, and not a ValidationFailure — see perr.ParseError.IsSuppressible),
// it backtracks to the cursor it was given and succeeds with fallback
// instead. A non-suppressible failure (p committed past an Atomic anchor,
// or raised a validation error) is propagated as-is: Maybe never hides a
// failure its child parser has marked as real.
func Maybe[T lexer.Token, V any](p Parser[T, V], fallback V) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		r := p(c)
		if r.Ok {
			return r
		}
		if r.Err != nil && !r.Err.IsSuppressible() {
			return Failure[T, V](r.Cursor, r.Err)
		}
		return Success[T, V](fallback, c)
	}
}

// Either tries each alternative in order and returns the first success.
// If every alternative fails suppressibly, the reported error is whichever
// had the higher severity (ties broken toward the first attempted, via
// perr.HigherSeverity) — the alternative that got furthest is usually the
// most informative one to report. A non-suppressible failure from any
// alternative stops the search immediately and is returned as-is.
func Either[T lexer.Token, V any](alternatives ...Parser[T, V]) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		var worst Result[T, V]
		haveWorst := false
		for _, alt := range alternatives {
			r := alt(c)
			if r.Ok {
				return r
			}
			if r.Err != nil && !r.Err.IsSuppressible() {
				return r
			}
			if !haveWorst {
				worst = r
				haveWorst = true
				continue
			}
			if perr.HigherSeverity(worst.Err, r.Err) == r.Err {
				worst = r
			}
		}
		if !haveWorst {
			err := perr.New(perr.UnexpectedToken, span.Empty(c.Position()), "no alternative matched")
			return Failure[T, V](c, err)
		}
		return worst
	}
}

// RequireIf runs p only when cond is true; otherwise it succeeds
// immediately with fallback, consuming nothing. Used to make a grammar
// rule's shape depend on parser-external state (a language version flag,
// a prior declaration) rather than on lookahead.
func RequireIf[T lexer.Token, V any](cond bool, p Parser[T, V], fallback V) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		if !cond {
			return Success[T, V](fallback, c)
		}
		return p(c)
	}
}

// Atomic marks p as committed once it has consumed at least one visible
// token: a failure after that point has its severity raised to Atomic
// (perr.DecorateAtomic), so no enclosing Maybe/Either can swallow it and
// silently try a different branch. A failure before any token was
// consumed is left exactly as produced, still suppressible.
func Atomic[T lexer.Token, V any](p Parser[T, V]) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		before := c.TokenCount()
		r := p(c)
		if r.Ok {
			return r
		}
		return Failure[T, V](r.Cursor, perr.DecorateAtomic(r.Err, advanced(before, r.Cursor)))
	}
}

// Cond runs p and then checks predicate against its value, failing with a
// non-suppressible ValidationFailure (message) if the predicate rejects
// it. Used for constraints a grammar alone cannot express — numeric
// ranges, reserved identifiers, arity checks.
func Cond[T lexer.Token, V any](p Parser[T, V], predicate func(V) bool, message string) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		r := p(c)
		if !r.Ok {
			return r
		}
		if !predicate(r.Value) {
			err := perr.New(perr.ValidationFailure, r.Cursor.TokenSpan(), message)
			return Failure[T, V](r.Cursor, err)
		}
		return r
	}
}

// Implies parses antecedent and, only if it matches, requires consequent
// to match too — a failure there is always treated as committed
// (Atomic), since having matched the antecedent there is no sensible
// fallback to try instead. Returns nil when antecedent itself did not
// match (a legitimately absent construct, not an error).
func Implies[T lexer.Token, A, B any](antecedent Parser[T, A], consequent Parser[T, B]) Parser[T, *Pair[A, B]] {
	return func(c lexer.Cursor[T]) Result[T, *Pair[A, B]] {
		ra := antecedent(c)
		if !ra.Ok {
			if ra.Err != nil && !ra.Err.IsSuppressible() {
				return Failure[T, *Pair[A, B]](ra.Cursor, ra.Err)
			}
			return Success[T, *Pair[A, B]](nil, c)
		}
		rb := consequent(ra.Cursor)
		if !rb.Ok {
			return Failure[T, *Pair[A, B]](rb.Cursor, perr.DecorateAtomic(rb.Err, true))
		}
		return Success[T, *Pair[A, B]](&Pair[A, B]{First: ra.Value, Second: rb.Value}, rb.Cursor)
	}
}
