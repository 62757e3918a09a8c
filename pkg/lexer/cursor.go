package lexer

import (
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/source"
	"github.com/cwbudde/pcomb/pkg/span"
)

// Cursor is an immutable lexer position over a source.Source, generic
// over a consumer's token alphabet T. Every operation that advances the
// cursor returns a new Cursor value rather than mutating the receiver —
// the same contract the teacher's internal/parser.TokenCursor documents
// ("All operations return new cursor instances"), generalized here from
// one fixed DWScript token set to any Token.
//
// Because Cursor is an ordinary value, backtracking is just keeping the
// old value around:
//
//	mark := cur
//	tok, sp, next, err := cur.Next()
//	if err != nil {
//	    cur = mark // discard next, resume from mark
//	}
//
// Scanner is the one field that needs care: it is stored behind the
// Scanner[T] interface, which may be backed by a pointer to mutable mode.
// Cursor never calls a mutating method on its own scanner field in
// place — Peek always clones before scanning, and Next stores the
// already-mutated clone into the *new* Cursor it returns, leaving mark's
// scanner (and anyone else holding the old value) untouched.
type Cursor[T Token] struct {
	src        source.Source
	scanner    Scanner[T]
	parseBegin span.Position
	tokenBegin span.Position
	cursorPos  span.Position
	filterSet  FilterSet[T]
	filterStk  []FilterSet[T]
	tokenCount int
}

// NewCursor creates a cursor positioned at the start of src, using
// scanner to recognize tokens and filter to decide which tokens are
// invisible to Peek/Next.
func NewCursor[T Token](src source.Source, scanner Scanner[T], filter FilterSet[T]) Cursor[T] {
	start := src.StartPosition()
	return Cursor[T]{
		src:        src,
		scanner:    scanner,
		parseBegin: start,
		tokenBegin: start,
		cursorPos:  start,
		filterSet:  filter,
	}
}

// Source returns the underlying source.
func (c Cursor[T]) Source() source.Source { return c.src }

// Position returns the cursor's current byte/line/column position.
func (c Cursor[T]) Position() span.Position { return c.cursorPos }

// TokenCount returns the number of visible (non-filtered) tokens
// committed so far. Atomic uses the delta between two TokenCount
// readings to decide whether a sub-parse "advanced", since comparing
// byte positions alone cannot distinguish a filtered-only skip (e.g.
// trailing whitespace) from real progress.
func (c Cursor[T]) TokenCount() int { return c.tokenCount }

func (c Cursor[T]) isFiltered(t T) bool {
	_, ok := c.filterSet[t]
	return ok
}

type scanOutcome int

const (
	scanFound scanOutcome = iota
	scanEOF
	scanUnrecognized
)

// scanFrom runs scanner starting at from, skipping any filtered lexemes,
// and reports the first visible token, end of text, or an unrecognized
// suffix. scanner is mutated in place as filtered lexemes are consumed;
// callers that must not commit that mutation should pass a fresh clone.
func (c Cursor[T]) scanFrom(scanner Scanner[T], from span.Position) (tok T, tokSpan span.Span, next span.Position, outcome scanOutcome) {
	pos := from
	for {
		if pos.Byte >= len(c.src.Text) {
			return tok, span.Span{}, pos, scanEOF
		}
		lex, ok := scanner.Scan(c.src.Text[pos.Byte:], pos)
		if !ok {
			return tok, span.Span{}, pos, scanUnrecognized
		}
		end := c.src.Advance(pos, lex.Length)
		tokSpan = span.Span{Start: pos, End: end}
		if c.isFiltered(lex.Token) {
			pos = end
			continue
		}
		return lex.Token, tokSpan, end, scanFound
	}
}

// findRecognizable scans forward from an unrecognized position one rune
// at a time until scanner matches something or the source is exhausted,
// establishing the span of the unrecognized run for diagnostics.
func (c Cursor[T]) findRecognizable(scanner Scanner[T], from span.Position) span.Position {
	pos := from
	for pos.Byte < len(c.src.Text) {
		next := c.src.Advance(pos, runeLen(c.src.Text[pos.Byte:]))
		if next.Byte < len(c.src.Text) {
			if _, ok := scanner.Scan(c.src.Text[next.Byte:], next); ok {
				return next
			}
		}
		pos = next
	}
	return pos
}

// Peek reports the next visible token and its span without consuming it.
// Calling Peek any number of times without an intervening Next returns
// the same result (it never mutates the receiver): the cursor clones its
// scanner before scanning so a speculative look-ahead cannot leak mode
// changes back into the committed lexer state.
func (c Cursor[T]) Peek() (T, span.Span, bool) {
	clone := c.scanner.Clone()
	tok, sp, _, outcome := c.scanFrom(clone, c.cursorPos)
	return tok, sp, outcome == scanFound
}

// Next consumes and returns the next visible token, advancing
// token_begin_pos to the consumed token's start and cursor_pos past its
// end. On failure it still commits any filtered run skipped along the
// way (trailing whitespace before EOF, say), since that skip is harmless
// and re-scanning it on every retry would be wasted work.
func (c Cursor[T]) Next() (T, span.Span, Cursor[T], error) {
	clone := c.scanner.Clone()
	tok, sp, next, outcome := c.scanFrom(clone, c.cursorPos)
	switch outcome {
	case scanFound:
		newC := c
		newC.scanner = clone
		newC.tokenBegin = sp.Start
		newC.cursorPos = next
		newC.tokenCount = c.tokenCount + 1
		return tok, sp, newC, nil
	case scanEOF:
		newC := c
		newC.scanner = clone
		newC.cursorPos = next
		err := perr.New(perr.UnexpectedEndOfText, span.Empty(next), "unexpected end of text")
		return tok, span.Span{}, newC, err
	default:
		runEnd := c.findRecognizable(clone, next)
		newC := c
		newC.scanner = clone
		newC.cursorPos = runEnd
		errSpan := span.Span{Start: next, End: runEnd}
		return tok, span.Span{}, newC, unrecognizedMessage(errSpan)
	}
}

// CurrentSpan returns the span from the last cut_span anchor (or the
// parse's start, if cut_span was never called) to the current position.
func (c Cursor[T]) CurrentSpan() span.Span {
	return span.Span{Start: c.parseBegin, End: c.cursorPos}
}

// TokenSpan returns the span of the most recently consumed token.
func (c Cursor[T]) TokenSpan() span.Span {
	return span.Span{Start: c.tokenBegin, End: c.cursorPos}
}

// CutSpan returns CurrentSpan and a cursor with its anchor moved to the
// current position, so a subsequent CurrentSpan call starts fresh from
// here. Sublexer uses it to give a sub-parse a span that excludes
// whatever came before it.
func (c Cursor[T]) CutSpan() (span.Span, Cursor[T]) {
	prev := c.CurrentSpan()
	newC := c
	newC.parseBegin = c.cursorPos
	return prev, newC
}

// Sublexer returns an independent cursor anchored at the current
// position, sharing this cursor's scanner mode and filters but free to
// advance without affecting the parent. Used to hand a nested grammar
// (an embedded sub-language, a string-interpolation expression) its own
// span accounting while the outer cursor's anchor is untouched.
func (c Cursor[T]) Sublexer() Cursor[T] {
	_, newC := c.CutSpan()
	newC.scanner = c.scanner.Clone()
	return newC
}

// PushFilter replaces the active filter set, remembering the previous one
// so PopFilter can restore it. Used by with_no_filter-style combinators
// that need raw (unfiltered) token access for one sub-parse.
func (c Cursor[T]) PushFilter(set FilterSet[T]) Cursor[T] {
	newC := c
	newC.filterStk = append(append([]FilterSet[T]{}, c.filterStk...), c.filterSet)
	newC.filterSet = set
	return newC
}

// PopFilter restores the filter set active before the last PushFilter. A
// PopFilter with no matching PushFilter is a no-op.
func (c Cursor[T]) PopFilter() Cursor[T] {
	n := len(c.filterStk)
	if n == 0 {
		return c
	}
	newC := c
	newC.filterSet = c.filterStk[n-1]
	newC.filterStk = append([]FilterSet[T]{}, c.filterStk[:n-1]...)
	return newC
}

// WithNoFilter runs fn with every token visible (no filtering), restoring
// the prior filter set afterward regardless of how fn returns.
func WithNoFilter[T Token, V any](c Cursor[T], fn func(Cursor[T]) (V, Cursor[T], error)) (V, Cursor[T], error) {
	inner := c.PushFilter(NoFilter[T]())
	val, after, err := fn(inner)
	return val, after.PopFilter(), err
}

// AdvancedSpan reports the outcome of a recovery scan: the span swept
// over, and whether the target predicate was actually matched before the
// source ran out.
type AdvancedSpan struct {
	Span  span.Span
	Found bool
}

// AdvanceTo scans forward (respecting the current filter) until pred
// matches the next visible token, without consuming it. If the source is
// exhausted first, Found is false and the returned cursor sits at end of
// text.
func (c Cursor[T]) AdvanceTo(pred func(T) bool) (AdvancedSpan, Cursor[T]) {
	start := c.cursorPos
	cur := c
	for {
		tok, _, ok := cur.Peek()
		if !ok {
			return AdvancedSpan{Span: span.Span{Start: start, End: cur.cursorPos}, Found: false}, cur
		}
		if pred(tok) {
			return AdvancedSpan{Span: span.Span{Start: start, End: cur.cursorPos}, Found: true}, cur
		}
		_, _, next, err := cur.Next()
		if err != nil {
			return AdvancedSpan{Span: span.Span{Start: start, End: next.cursorPos}, Found: false}, next
		}
		cur = next
	}
}

// AdvancePast is AdvanceTo followed by consuming the matched token, so
// the returned cursor sits just after the synchronization token (a
// closing bracket, a statement terminator).
func (c Cursor[T]) AdvancePast(pred func(T) bool) (AdvancedSpan, Cursor[T]) {
	adv, cur := c.AdvanceTo(pred)
	if !adv.Found {
		return adv, cur
	}
	_, tokSpan, next, err := cur.Next()
	if err != nil {
		return AdvancedSpan{Span: adv.Span, Found: false}, next
	}
	adv.Span = span.Join(adv.Span, tokSpan)
	return adv, next
}

// SourceSlice returns the underlying source text covered by sp.
func (c Cursor[T]) SourceSlice(sp span.Span) string {
	return c.src.Slice(sp)
}
