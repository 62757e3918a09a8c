package combinator

import (
	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
)

// Left runs pa then pb in sequence and keeps pa's value, discarding pb's.
// Typical use: a trailing terminator (`expr <* semicolon`).
func Left[T lexer.Token, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, A] {
	return func(c lexer.Cursor[T]) Result[T, A] {
		ra := pa(c)
		if !ra.Ok {
			return ra
		}
		rb := pb(ra.Cursor)
		if !rb.Ok {
			return Failure[T, A](rb.Cursor, rb.Err)
		}
		return Success[T, A](ra.Value, rb.Cursor)
	}
}

// Right runs pa then pb in sequence and keeps pb's value, discarding pa's.
// Typical use: a leading keyword (`keyword *> expr`).
func Right[T lexer.Token, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, B] {
	return func(c lexer.Cursor[T]) Result[T, B] {
		ra := pa(c)
		if !ra.Ok {
			return Failure[T, B](ra.Cursor, ra.Err)
		}
		return pb(ra.Cursor)
	}
}

// Both runs pa then pb in sequence and keeps both values as a Pair.
func Both[T lexer.Token, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, Pair[A, B]] {
	return func(c lexer.Cursor[T]) Result[T, Pair[A, B]] {
		ra := pa(c)
		if !ra.Ok {
			return Failure[T, Pair[A, B]](ra.Cursor, ra.Err)
		}
		rb := pb(ra.Cursor)
		if !rb.Ok {
			return Failure[T, Pair[A, B]](rb.Cursor, rb.Err)
		}
		return Success[T, Pair[A, B]](Pair[A, B]{First: ra.Value, Second: rb.Value}, rb.Cursor)
	}
}

// Bracket parses open, then inner, then close, keeping inner's value. A
// failure after open is decorated by perr.DecorateDelimited: its span is
// widened to start at the opening delimiter, and running into end of text
// is reshaped into UnmatchedDelimiter anchored on the opening delimiter —
// closeDescription is what that reshaped message names as missing (e.g.
// "]", "end").
func Bracket[T lexer.Token, O, V, C any](open Parser[T, O], inner Parser[T, V], close Parser[T, C], closeDescription string) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		ro := open(c)
		if !ro.Ok {
			return Failure[T, V](ro.Cursor, ro.Err)
		}
		frame := perr.Frame{Kind: perr.Delimited, Description: closeDescription, Anchor: ro.Cursor.TokenSpan()}

		rv := inner(ro.Cursor)
		if !rv.Ok {
			return Failure[T, V](rv.Cursor, perr.DecorateDelimited(rv.Err, frame, closeDescription))
		}
		rc := close(rv.Cursor)
		if !rc.Ok {
			return Failure[T, V](rc.Cursor, perr.DecorateDelimited(rc.Err, frame, closeDescription))
		}
		return Success[T, V](rv.Value, rc.Cursor)
	}
}

// BracketDynamic is Bracket where the closing parser depends on what the
// opening parser actually matched — e.g. a heredoc whose terminator is
// the literal text that followed its opening marker.
func BracketDynamic[T lexer.Token, O, V, C any](open Parser[T, O], closeFor func(O) Parser[T, C], closeDescriptionFor func(O) string, inner Parser[T, V]) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		ro := open(c)
		if !ro.Ok {
			return Failure[T, V](ro.Cursor, ro.Err)
		}
		closeParser := closeFor(ro.Value)
		closeDescription := closeDescriptionFor(ro.Value)
		frame := perr.Frame{Kind: perr.Delimited, Description: closeDescription, Anchor: ro.Cursor.TokenSpan()}

		rv := inner(ro.Cursor)
		if !rv.Ok {
			return Failure[T, V](rv.Cursor, perr.DecorateDelimited(rv.Err, frame, closeDescription))
		}
		rc := closeParser(rv.Cursor)
		if !rc.Ok {
			return Failure[T, V](rc.Cursor, perr.DecorateDelimited(rc.Err, frame, closeDescription))
		}
		return Success[T, V](rv.Value, rc.Cursor)
	}
}

// recoverOrFail skips forward from cur to isClose (the recovery site's
// synchronization predicate) and, if found, emits decorated to sink and
// returns Success(fallback, ...) so the surrounding parse can keep going.
// If the source runs out first, there was nothing to synchronize on: the
// site is not recoverable, so instead of decorated it emits a freshly
// reshaped UnmatchedDelimiter (matching Bracket's own EOF reshaping) and
// returns Failure, letting the unmatched delimiter propagate to the
// outermost frame rather than being silently swallowed as if recovery had
// succeeded.
func recoverOrFail[T lexer.Token, V any](cur lexer.Cursor[T], decorated *perr.ParseError, frame perr.Frame, closeDescription string, isClose func(T) bool, fallback V, sink *perr.Sink) Result[T, V] {
	adv, after := cur.AdvancePast(isClose)
	if !adv.Found {
		unmatched := perr.New(perr.UnmatchedDelimiter, frame.Anchor, "unmatched delimiter: "+closeDescription)
		unmatched.WithHighlight(adv.Span, "reached end of text still looking for "+closeDescription)
		sink.Emit(unmatched)
		return Failure[T, V](after, unmatched)
	}
	sink.Emit(decorated)
	return Success[T, V](fallback, after)
}

// BracketRecovering is Bracket's recovery-site variant: on a missing
// close, instead of failing outright it emits the decorated error to
// sink (at most once, since this is the one place that knows a site's
// single emission already happened — see perr.Sink.Emit), skips forward
// to isClose, and returns fallback so the surrounding parse can keep
// going. If isClose is never found before end of text, there is no
// synchronization point to recover to, so the site reports a hard
// UnmatchedDelimiter Failure instead (see recoverOrFail). Grounded on the
// teacher's error_recovery.go SynchronizationSet/SynchronizeOn pattern,
// generalized from a fixed DWScript token set to any predicate over T.
func BracketRecovering[T lexer.Token, O, V, C any](open Parser[T, O], inner Parser[T, V], close Parser[T, C], isClose func(T) bool, closeDescription string, fallback V, sink *perr.Sink) Parser[T, V] {
	return func(c lexer.Cursor[T]) Result[T, V] {
		ro := open(c)
		if !ro.Ok {
			return Failure[T, V](ro.Cursor, ro.Err)
		}
		frame := perr.Frame{Kind: perr.Delimited, Description: closeDescription, Anchor: ro.Cursor.TokenSpan()}

		rv := inner(ro.Cursor)
		if !rv.Ok {
			decorated := perr.DecorateDelimited(rv.Err, frame, closeDescription)
			return recoverOrFail[T, V](ro.Cursor, decorated, frame, closeDescription, isClose, fallback, sink)
		}
		rc := close(rv.Cursor)
		if !rc.Ok {
			decorated := perr.DecorateDelimited(rc.Err, frame, closeDescription)
			return recoverOrFail[T, V](rv.Cursor, decorated, frame, closeDescription, isClose, fallback, sink)
		}
		return Success[T, V](rv.Value, rc.Cursor)
	}
}
