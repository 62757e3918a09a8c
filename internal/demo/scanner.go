package demo

import (
	"unicode/utf8"

	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/span"
)

// Scanner recognizes the demo alphabet: identifiers, decimal numbers, the
// bracket/comma punctuation, the "let" keyword, and runs of whitespace.
// It carries no internal mode, so Clone is trivial — there is no nested
// comment or string-interpolation state to worry about, unlike the
// teacher's own lexer.
type Scanner struct{}

// NewScanner returns the demo grammar's token recognizer.
func NewScanner() Scanner { return Scanner{} }

// Clone satisfies lexer.Scanner[Token]; a stateless scanner can just
// return itself.
func (s Scanner) Clone() lexer.Scanner[Token] { return s }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Scan implements lexer.Scanner[Token]. suffix is always non-empty; the
// cursor treats an empty suffix as end of text before ever calling Scan.
func (s Scanner) Scan(suffix string, _ span.Position) (lexer.Lexeme[Token], bool) {
	first, _ := utf8.DecodeRuneInString(suffix)

	switch {
	case first == '[':
		return lexer.Lexeme[Token]{Token: LBracket, Length: 1}, true
	case first == ']':
		return lexer.Lexeme[Token]{Token: RBracket, Length: 1}, true
	case first == ',':
		return lexer.Lexeme[Token]{Token: Comma, Length: 1}, true
	case isSpace(first):
		n := 0
		for n < len(suffix) {
			r, size := utf8.DecodeRuneInString(suffix[n:])
			if !isSpace(r) {
				break
			}
			n += size
		}
		return lexer.Lexeme[Token]{Token: Ws, Length: n}, true
	case isDigit(first):
		n := 0
		for n < len(suffix) {
			r, size := utf8.DecodeRuneInString(suffix[n:])
			if !isDigit(r) {
				break
			}
			n += size
		}
		return lexer.Lexeme[Token]{Token: Number, Length: n}, true
	case isIdentStart(first):
		n := 0
		for n < len(suffix) {
			r, size := utf8.DecodeRuneInString(suffix[n:])
			if !isIdentCont(r) {
				break
			}
			n += size
		}
		if suffix[:n] == "let" {
			return lexer.Lexeme[Token]{Token: KwLet, Length: n}, true
		}
		return lexer.Lexeme[Token]{Token: Ident, Length: n}, true
	default:
		return lexer.Lexeme[Token]{}, false
	}
}

// Filter is the standard demo filter set: whitespace is invisible to
// every combinator except the ones built with combinator.Unfiltered.
func Filter() lexer.FilterSet[Token] {
	return lexer.NewFilterSet(Ws)
}
