package combinator

import (
	"testing"

	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestRepeatCountsMatches(t *testing.T) {
	c := cursorOf("+++")
	r := Repeat[tok, tok](0, nil, One[tok](tPlus))(c)
	require.True(t, r.Ok)
	assert.Equal(t, 3, r.Value)
}

func TestRepeatNeverFailsWhenMinIsZero(t *testing.T) {
	c := cursorOf("foo")
	r := Repeat[tok, tok](0, nil, One[tok](tPlus))(c)
	require.True(t, r.Ok)
	assert.Equal(t, 0, r.Value)
}

func TestRepeatFailsWhenFewerThanMinSucceed(t *testing.T) {
	c := cursorOf("+foo")
	r := Repeat[tok, tok](2, nil, One[tok](tPlus))(c)
	require.False(t, r.Ok)
	assert.Equal(t, perr.ValidationFailure, r.Err.Kind)
	assert.Equal(t, 0, r.Err.Primary.Span.Start.Byte, "failure span covers the whole partial run")
	assert.Equal(t, 1, r.Err.Primary.Span.End.Byte)
}

func TestRepeatStopsAtMaxEvenIfMoreWouldMatch(t *testing.T) {
	c := cursorOf("+++")
	r := Repeat[tok, tok](0, intPtr(2), One[tok](tPlus))(c)
	require.True(t, r.Ok)
	assert.Equal(t, 2, r.Value, "stops at max regardless of further matches available")
	tk, _, ok := r.Cursor.Peek()
	require.True(t, ok)
	assert.Equal(t, tPlus, tk, "the third '+' is left unconsumed once max is reached")
}

func TestRepeatCollectGathersValues(t *testing.T) {
	c := cursorOf("+++")
	r := RepeatCollect[tok, tok](0, nil, One[tok](tPlus))(c)
	require.True(t, r.Ok)
	assert.Equal(t, []tok{tPlus, tPlus, tPlus}, r.Value)
}

func TestRepeatDoesNotLoopOnZeroWidthMatch(t *testing.T) {
	c := cursorOf("foo")
	zeroWidth := Empty[tok, tok](tPlus)
	r := Repeat[tok, tok](0, nil, zeroWidth)(c)
	require.True(t, r.Ok)
	assert.Equal(t, 1, r.Value, "a zero-width item stops the loop after one iteration instead of spinning forever")
}

func TestRepeatUntilStopsBeforeTerminator(t *testing.T) {
	c := cursorOf("foo foo)")
	stop := func(cur lexer.Cursor[tok]) bool {
		tk, _, ok := cur.Peek()
		return !ok || tk == tRParen
	}
	r := RepeatCollectUntil[tok, tok](0, nil, One[tok](tIdent), stop)(c)
	require.True(t, r.Ok)
	assert.Equal(t, []tok{tIdent, tIdent}, r.Value)
	tk, _, ok := r.Cursor.Peek()
	require.True(t, ok)
	assert.Equal(t, tRParen, tk, "RepeatCollectUntil leaves the terminator unconsumed")
}

func TestRepeatUntilFailsWhenFewerThanMinBeforeStop(t *testing.T) {
	c := cursorOf("foo)")
	stop := func(cur lexer.Cursor[tok]) bool {
		tk, _, ok := cur.Peek()
		return !ok || tk == tRParen
	}
	r := RepeatCollectUntil[tok, tok](2, nil, One[tok](tIdent), stop)(c)
	require.False(t, r.Ok)
	assert.Equal(t, perr.ValidationFailure, r.Err.Kind)
}

func TestIntersperseCollectGathersItemsAndIgnoresTrailingGap(t *testing.T) {
	c := cursorOf("foo, 123, foo")
	r := IntersperseCollect[tok, tok, tok](0, nil, Any[tok](tIdent, tNum), One[tok](tComma))(c)
	require.True(t, r.Ok)
	assert.Equal(t, []tok{tIdent, tNum, tIdent}, r.Value)
}

func TestIntersperseEmptyListIsSuccessNotFailure(t *testing.T) {
	c := cursorOf(")")
	r := Intersperse[tok, tok, tok](0, nil, One[tok](tIdent), One[tok](tComma))(c)
	require.True(t, r.Ok)
	assert.Equal(t, 0, r.Value)
}

func TestIntersperseFailsHardOnTrailingSeparator(t *testing.T) {
	c := cursorOf("foo, )")
	r := IntersperseCollect[tok, tok, tok](0, nil, One[tok](tIdent), One[tok](tComma))(c)
	require.False(t, r.Ok, "a matched separator commits to requiring another item")
}

func TestIntersperseFailsWhenFewerThanMinItems(t *testing.T) {
	c := cursorOf(")")
	r := Intersperse[tok, tok, tok](1, nil, One[tok](tIdent), One[tok](tComma))(c)
	require.False(t, r.Ok, "an empty list no longer satisfies a min of 1")
	assert.Equal(t, perr.ValidationFailure, r.Err.Kind)
}

func TestIntersperseStopsAtMaxItems(t *testing.T) {
	c := cursorOf("foo, foo, foo")
	r := IntersperseCollect[tok, tok, tok](0, intPtr(2), One[tok](tIdent), One[tok](tComma))(c)
	require.True(t, r.Ok)
	assert.Equal(t, []tok{tIdent, tIdent}, r.Value, "stops after the second item even though a third is available")
}

func TestIntersperseUntilTreatsFirstItemFailureAsHardError(t *testing.T) {
	c := cursorOf("123")
	stop := func(cur lexer.Cursor[tok]) bool {
		_, _, ok := cur.Peek()
		return !ok
	}
	r := IntersperseCollectUntil[tok, tok, tok](0, nil, One[tok](tIdent), One[tok](tComma), stop)(c)
	require.False(t, r.Ok, "unlike Intersperse, a failing first item is a real error when stop hasn't matched")
}

func TestIntersperseUntilEmptyWhenStopMatchesImmediately(t *testing.T) {
	c := cursorOf("")
	stop := func(cur lexer.Cursor[tok]) bool {
		_, _, ok := cur.Peek()
		return !ok
	}
	r := IntersperseCollectUntil[tok, tok, tok](0, nil, One[tok](tIdent), One[tok](tComma), stop)(c)
	require.True(t, r.Ok)
	assert.Empty(t, r.Value)
}
