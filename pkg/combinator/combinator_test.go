package combinator

import (
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/source"
	"github.com/cwbudde/pcomb/pkg/span"
)

// Small fixed token alphabet shared by every test file in this package: a
// bracketed, comma-separated list of identifiers and numbers, e.g.
// "(foo, 12, bar)".
type tok int

const (
	tIdent tok = iota
	tNum
	tComma
	tLParen
	tRParen
	tPlus
	tSpace
)

func (t tok) String() string {
	switch t {
	case tIdent:
		return "ident"
	case tNum:
		return "num"
	case tComma:
		return "comma"
	case tLParen:
		return "("
	case tRParen:
		return ")"
	case tPlus:
		return "+"
	case tSpace:
		return "space"
	default:
		return "?"
	}
}

type testScanner struct{}

func (testScanner) Clone() lexer.Scanner[tok] { return testScanner{} }

func (testScanner) Scan(suffix string, _ span.Position) (lexer.Lexeme[tok], bool) {
	if suffix == "" {
		return lexer.Lexeme[tok]{}, false
	}
	r, _ := utf8.DecodeRuneInString(suffix)
	switch {
	case unicode.IsSpace(r):
		return lexer.Lexeme[tok]{Token: tSpace, Length: runLength(suffix, unicode.IsSpace)}, true
	case unicode.IsDigit(r):
		return lexer.Lexeme[tok]{Token: tNum, Length: runLength(suffix, unicode.IsDigit)}, true
	case unicode.IsLetter(r):
		return lexer.Lexeme[tok]{Token: tIdent, Length: runLength(suffix, unicode.IsLetter)}, true
	case r == ',':
		return lexer.Lexeme[tok]{Token: tComma, Length: 1}, true
	case r == '(':
		return lexer.Lexeme[tok]{Token: tLParen, Length: 1}, true
	case r == ')':
		return lexer.Lexeme[tok]{Token: tRParen, Length: 1}, true
	case r == '+':
		return lexer.Lexeme[tok]{Token: tPlus, Length: 1}, true
	default:
		return lexer.Lexeme[tok]{}, false
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

func cursorOf(text string) lexer.Cursor[tok] {
	src := source.New(text, "test", source.UTF8LF)
	return lexer.NewCursor[tok](src, testScanner{}, lexer.NewFilterSet(tSpace))
}
