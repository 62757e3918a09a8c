package lexer

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/pcomb/pkg/source"
	"github.com/cwbudde/pcomb/pkg/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTok int

const (
	tWord testTok = iota
	tNum
	tSpace
	tSym
)

func (t testTok) String() string {
	switch t {
	case tWord:
		return "word"
	case tNum:
		return "num"
	case tSpace:
		return "space"
	case tSym:
		return "sym"
	default:
		return "?"
	}
}

// testScanner recognizes runs of letters, digits or spaces, plus single
// ASCII symbol runes. It carries no mutable mode, so Clone is a plain
// value copy.
type testScanner struct{}

func (testScanner) Clone() Scanner[testTok] { return testScanner{} }

func (testScanner) Scan(suffix string, _ span.Position) (Lexeme[testTok], bool) {
	if suffix == "" {
		return Lexeme[testTok]{}, false
	}
	r, _ := utf8.DecodeRuneInString(suffix)
	switch {
	case unicode.IsSpace(r):
		return Lexeme[testTok]{Token: tSpace, Length: runLength(suffix, unicode.IsSpace)}, true
	case unicode.IsDigit(r):
		return Lexeme[testTok]{Token: tNum, Length: runLength(suffix, unicode.IsDigit)}, true
	case unicode.IsLetter(r):
		return Lexeme[testTok]{Token: tWord, Length: runLength(suffix, unicode.IsLetter)}, true
	case strings.ContainsRune("+-(),", r):
		return Lexeme[testTok]{Token: tSym, Length: utf8.RuneLen(r)}, true
	default:
		return Lexeme[testTok]{}, false
	}
}

func runLength(s string, class func(rune) bool) int {
	n := 0
	for _, r := range s {
		if !class(r) {
			break
		}
		n += utf8.RuneLen(r)
	}
	return n
}

func newTestCursor(text string) Cursor[testTok] {
	src := source.New(text, "test", source.UTF8LF)
	return NewCursor[testTok](src, testScanner{}, NewFilterSet(tSpace))
}

func TestPeekIsIdempotent(t *testing.T) {
	c := newTestCursor("foo 12")
	tok1, sp1, ok1 := c.Peek()
	tok2, sp2, ok2 := c.Peek()
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, sp1, sp2)
	assert.Equal(t, ok1, ok2)
	require.True(t, ok1)
	assert.Equal(t, tWord, tok1)
}

func TestNextSkipsFilteredWhitespace(t *testing.T) {
	c := newTestCursor("foo 12")
	tok, sp, next, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, tWord, tok)
	assert.Equal(t, 0, sp.Start.Byte)
	assert.Equal(t, 3, sp.End.Byte)

	tok, sp, _, err = next.Next()
	require.NoError(t, err)
	assert.Equal(t, tNum, tok)
	assert.Equal(t, 4, sp.Start.Byte, "the space run should have been skipped, not emitted")
	assert.Equal(t, 6, sp.End.Byte)
}

func TestNextAtEndOfTextFails(t *testing.T) {
	c := newTestCursor("")
	_, _, _, err := c.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected end of text")
}

func TestNextOnUnrecognizedRunFails(t *testing.T) {
	c := newTestCursor("#@ foo")
	_, _, next, err := c.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized token")
	// the unrecognized run ("#@") is skipped so parsing can resume
	tok, _, _, err2 := next.Next()
	require.NoError(t, err2)
	assert.Equal(t, tWord, tok)
}

func TestBacktrackingViaPlainAssignment(t *testing.T) {
	c := newTestCursor("foo bar")
	mark := c
	_, _, next, err := c.Next()
	require.NoError(t, err)
	assert.NotEqual(t, mark.Position(), next.Position())

	// restoring is just reassigning the saved value
	c = mark
	tok, _, _, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, tWord, tok, "mark must still see the original first token")
}

func TestCutSpanMovesAnchor(t *testing.T) {
	c := newTestCursor("foo bar")
	_, _, c1, err := c.Next()
	require.NoError(t, err)
	cut, c2 := c1.CutSpan()
	assert.Equal(t, 0, cut.Start.Byte)
	assert.Equal(t, 3, cut.End.Byte)
	assert.Equal(t, c2.Position().Byte, c2.CurrentSpan().Start.Byte, "cut_span resets the anchor to the current position")
}

func TestSublexerDoesNotMutateParentAnchor(t *testing.T) {
	c := newTestCursor("foo bar")
	_, _, c1, err := c.Next()
	require.NoError(t, err)
	sub := c1.Sublexer()
	_, _, sub2, err := sub.Next()
	require.NoError(t, err)

	assert.Equal(t, 0, c1.CurrentSpan().Start.Byte, "parent anchor is untouched by the sublexer")
	assert.NotEqual(t, sub2.CurrentSpan(), c1.CurrentSpan())
}

func TestPushPopFilterTogglesVisibility(t *testing.T) {
	c := newTestCursor(" foo")
	noFilter := c.PushFilter(NoFilter[testTok]())
	tok, _, ok := noFilter.Peek()
	require.True(t, ok)
	assert.Equal(t, tSpace, tok, "with no filter pushed, whitespace becomes visible")

	restored := noFilter.PopFilter()
	tok, _, ok = restored.Peek()
	require.True(t, ok)
	assert.Equal(t, tWord, tok, "popping the filter restores the original whitespace filter")
}

func TestWithNoFilterRestoresAfterward(t *testing.T) {
	c := newTestCursor(" foo")
	tok, after, err := WithNoFilter[testTok, testTok](c, func(inner Cursor[testTok]) (testTok, Cursor[testTok], error) {
		tok, _, next, err := inner.Next()
		return tok, next, err
	})
	require.NoError(t, err)
	assert.Equal(t, tSpace, tok)

	tok2, _, ok := after.Peek()
	require.True(t, ok)
	assert.Equal(t, tWord, tok2, "the filter set active before WithNoFilter is back in force")
}

func TestTokenCountDistinguishesFilteredSkipFromProgress(t *testing.T) {
	c := newTestCursor("   foo")
	before := c.TokenCount()
	_, _, after, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, before+1, after.TokenCount(), "only the visible word token increments the count")
}

func TestAdvanceToStopsBeforeMatchWithoutConsuming(t *testing.T) {
	c := newTestCursor("foo + bar")
	adv, after := c.AdvanceTo(func(tok testTok) bool { return tok == tSym })
	require.True(t, adv.Found)
	tok, _, ok := after.Peek()
	require.True(t, ok)
	assert.Equal(t, tSym, tok, "advance_to stops with the matching token still unread")
}

func TestAdvancePastConsumesTheMatch(t *testing.T) {
	c := newTestCursor("foo + bar")
	adv, after := c.AdvancePast(func(tok testTok) bool { return tok == tSym })
	require.True(t, adv.Found)
	tok, _, ok := after.Peek()
	require.True(t, ok)
	assert.Equal(t, tWord, tok, "advance_past consumes the delimiter itself")
}

func TestAdvanceToReachingEndOfTextReportsNotFound(t *testing.T) {
	c := newTestCursor("foo bar")
	adv, _ := c.AdvanceTo(func(tok testTok) bool { return tok == tSym })
	assert.False(t, adv.Found)
}

// modeScanner wraps testScanner but counts every filtered whitespace run
// it skips over, via a field Clone must copy rather than alias, so a test
// can tell whether a particular Cursor value holds the scanner that
// actually did the skipping or an earlier, stale one.
type modeScanner struct {
	skips *int
}

func newModeScanner() modeScanner { return modeScanner{skips: new(int)} }

func (m modeScanner) Clone() Scanner[testTok] {
	n := *m.skips
	return modeScanner{skips: &n}
}

func (m modeScanner) Scan(suffix string, pos span.Position) (Lexeme[testTok], bool) {
	lex, ok := (testScanner{}).Scan(suffix, pos)
	if ok && lex.Token == tSpace {
		*m.skips++
	}
	return lex, ok
}

func TestNextCommitsScannerMutationOnEndOfTextFailure(t *testing.T) {
	src := source.New("  ", "test", source.UTF8LF)
	c := NewCursor[testTok](src, newModeScanner(), NewFilterSet(tSpace))
	_, _, next, err := c.Next()
	require.Error(t, err)

	mutated, ok := next.scanner.(modeScanner)
	require.True(t, ok)
	assert.Equal(t, 1, *mutated.skips, "the whitespace run skipped on the way to end of text must be committed into the failure cursor's scanner")
}

func TestNextCommitsScannerMutationOnUnrecognizedFailure(t *testing.T) {
	src := source.New("  #", "test", source.UTF8LF)
	c := NewCursor[testTok](src, newModeScanner(), NewFilterSet(tSpace))
	_, _, next, err := c.Next()
	require.Error(t, err)

	mutated, ok := next.scanner.(modeScanner)
	require.True(t, ok)
	assert.Equal(t, 1, *mutated.skips, "the whitespace run skipped on the way to the unrecognized run must be committed into the failure cursor's scanner")
}
