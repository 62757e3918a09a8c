package demo

import (
	"github.com/cwbudde/pcomb/pkg/combinator"
	"github.com/cwbudde/pcomb/pkg/lexer"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/cwbudde/pcomb/pkg/source"
)

// NewCursor builds a cursor over text using the demo scanner, filtering
// whitespace by default.
func NewCursor(text string) lexer.Cursor[Token] {
	src := source.New(text, "", source.UTF8LF)
	return lexer.NewCursor[Token](src, NewScanner(), Filter())
}

// ident matches one identifier and yields its source text.
func ident() combinator.Parser[Token, string] {
	one := combinator.One[Token](Ident)
	return func(c lexer.Cursor[Token]) combinator.Result[Token, string] {
		r := one(c)
		if !r.Ok {
			return combinator.Failure[Token, string](r.Cursor, r.Err)
		}
		return combinator.Success[Token, string](r.Cursor.SourceSlice(r.Cursor.TokenSpan()), r.Cursor)
	}
}

// IdentList parses "[ident, ident, ...]" with no tolerance for a
// trailing comma or malformed items — the grammar from the empty-list
// and unmatched-bracket scenarios.
func IdentList() combinator.Parser[Token, []string] {
	items := combinator.IntersperseCollect[Token, string, Token](0, nil, ident(), combinator.One[Token](Comma))
	return combinator.Bracket[Token, Token, []string, Token](
		combinator.One[Token](LBracket), items, combinator.One[Token](RBracket), "]")
}

// identListBody parses "ident (, ident)*" without committing to a
// trailing separator: IntersperseCollect (see repetition.go) treats a
// matched separator as requiring another item, which is the right
// default for a strict grammar but wrong here. Tolerating a trailing
// comma is a caller concern (per §4.7's "trailing separators handled
// explicitly by the caller"), so this loop snapshots the cursor before
// each separator attempt and, if the following item is absent, rewinds
// to that mark and stops successfully rather than failing — leaving the
// trailing separator for IdentListTrailingComma's own Maybe to consume.
func identListBody() combinator.Parser[Token, []string] {
	return func(c lexer.Cursor[Token]) combinator.Result[Token, []string] {
		first := ident()(c)
		if !first.Ok {
			return combinator.Success[Token, []string](nil, c)
		}
		vals := []string{first.Value}
		cur := first.Cursor
		for {
			mark := cur
			rs := combinator.One[Token](Comma)(cur)
			if !rs.Ok {
				break
			}
			ri := ident()(rs.Cursor)
			if !ri.Ok {
				cur = mark
				break
			}
			vals = append(vals, ri.Value)
			cur = ri.Cursor
		}
		return combinator.Success[Token, []string](vals, cur)
	}
}

// IdentListTrailingComma is IdentList but tolerates one optional trailing
// comma before the closing bracket.
func IdentListTrailingComma() combinator.Parser[Token, []string] {
	withTrailer := combinator.Left[Token, []string, Token](identListBody(), combinator.Maybe[Token, Token](combinator.One[Token](Comma), Comma))
	return combinator.Bracket[Token, Token, []string, Token](
		combinator.One[Token](LBracket), withTrailer, combinator.One[Token](RBracket), "]")
}

// recoveringIdent behaves like ident, except a token that is not an
// identifier is not treated as a hard failure: the mismatch is emitted to
// sink (exactly the error One would have produced) and a placeholder
// value is returned without moving the cursor. The comma that follows —
// already due to be consumed by the next separator attempt in
// IntersperseCollect — is what actually resynchronizes the list, so no
// explicit skip is needed here. This is the per-item recovery granularity
// decision recorded in DESIGN.md: §4.9's sink-based recovery is specified
// at bracket boundaries, and this grammar extends the same idea, one
// list element at a time, entirely from Cursor/Sink primitives rather
// than a new pkg/combinator recovery primitive.
func recoveringIdent(sink *perr.Sink) combinator.Parser[Token, string] {
	return func(c lexer.Cursor[Token]) combinator.Result[Token, string] {
		r := ident()(c)
		if r.Ok {
			return r
		}
		sink.Emit(r.Err)
		return combinator.Success[Token, string]("<recovered>", r.Cursor)
	}
}

// IdentListRecovering is IdentList, but a malformed item (anything other
// than an identifier, found where one was expected) is recorded on sink
// as a single UnexpectedToken and replaced by a placeholder instead of
// aborting the whole list.
func IdentListRecovering(sink *perr.Sink) combinator.Parser[Token, []string] {
	items := combinator.IntersperseCollect[Token, string, Token](0, nil, recoveringIdent(sink), combinator.One[Token](Comma))
	return combinator.Bracket[Token, Token, []string, Token](
		combinator.One[Token](LBracket), items, combinator.One[Token](RBracket), "]")
}

// Statement is either a let-binding ("let <name>") or a bare name
// expression — just enough shape to demonstrate Atomic/Either commit
// semantics without a real expression grammar.
type Statement struct {
	IsBinding bool
	Name      string
}

// StatementOrBinding parses `let <ident>`, committing atomically once
// "let" has matched (so a malformed binding is a real error, never
// silently retried as a bare expression), falling back to a bare
// identifier-or-number expression otherwise.
func StatementOrBinding() combinator.Parser[Token, Statement] {
	binding := combinator.Atomic[Token, combinator.Pair[Token, string]](
		combinator.Both[Token, Token, string](combinator.One[Token](KwLet), ident()))
	bindingStmt := combinator.Map[Token, combinator.Pair[Token, string], Statement](binding,
		func(p combinator.Pair[Token, string]) Statement {
			return Statement{IsBinding: true, Name: p.Second}
		})

	expr := combinator.Text[Token, Token](combinator.Any[Token](Ident, Number))
	exprStmt := combinator.Map[Token, string, Statement](expr,
		func(name string) Statement { return Statement{IsBinding: false, Name: name} })

	return combinator.Either[Token, Statement](bindingStmt, exprStmt)
}
