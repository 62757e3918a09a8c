package source

import (
	"testing"

	"github.com/cwbudde/pcomb/pkg/span"
)

func TestAdvanceASCII(t *testing.T) {
	src := New("ab\ncd", "", ASCII)
	start := src.StartPosition()
	got := src.Advance(start, 4) // "ab\nc"
	want := span.Position{Byte: 4, Line: 2, Column: 2}
	if got != want {
		t.Fatalf("Advance = %+v, want %+v", got, want)
	}
}

func TestAdvanceUTF8LFCountsRunesNotBytes(t *testing.T) {
	src := New("aΔb", "", UTF8LF) // Δ is 2 bytes, 1 rune
	start := src.StartPosition()
	got := src.Advance(start, len("aΔb"))
	if got.Column != 4 {
		t.Fatalf("Column = %d, want 4 (3 runes + start at 1)", got.Column)
	}
	if got.Byte != len("aΔb") {
		t.Fatalf("Byte = %d, want %d", got.Byte, len("aΔb"))
	}
}

func TestAdvanceUTF8CRLFRequiresPair(t *testing.T) {
	src := New("a\rb\r\nc", "", UTF8CRLF)
	start := src.StartPosition()
	got := src.Advance(start, len("a\rb\r\nc"))
	// Only the "\r\n" pair ends a line; the lone "\r" after 'a' does not.
	if got.Line != 2 {
		t.Fatalf("Line = %d, want 2", got.Line)
	}
}

func TestAdvanceUTF8LFOrCRLFEndsOnLoneCR(t *testing.T) {
	src := New("a\rb", "", UTF8LFOrCRLF)
	start := src.StartPosition()
	got := src.Advance(start, len("a\rb"))
	if got.Line != 2 {
		t.Fatalf("Line = %d, want 2 (lone CR ends a line under LFOrCRLF)", got.Line)
	}
}

func TestAdvanceCRLFPairCountsAsOneLineBreak(t *testing.T) {
	src := New("a\r\nb\r\nc", "", UTF8LFOrCRLF)
	start := src.StartPosition()
	got := src.Advance(start, len("a\r\nb\r\nc"))
	if got.Line != 3 {
		t.Fatalf("Line = %d, want 3", got.Line)
	}
}

func TestSlice(t *testing.T) {
	src := New("hello world", "", ASCII)
	sp := span.Span{Start: span.Position{Byte: 6}, End: span.Position{Byte: 11}}
	if got := src.Slice(sp); got != "world" {
		t.Fatalf("Slice = %q, want %q", got, "world")
	}
}
