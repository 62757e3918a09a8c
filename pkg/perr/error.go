// Package perr implements a layered error model: error kinds, the
// severity ordering alternatives reconcile on, context frames
// (Section/Atomic/Delimited/Raw), a recovery sink, and a stable
// diagnostic-export record.
//
// This generalizes the teacher's internal/parser/error.go (ParserError),
// structured_error.go (ErrorKind, StructuredErrorBuilder) and
// error_recovery.go (ErrorRecovery, SynchronizationSet) from DWScript's
// concrete token/error-code set into a generic shape any token alphabet
// can reuse.
package perr

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pcomb/pkg/span"
)

// Kind tags the origin and shape of a ParseError.
type Kind int

const (
	// UnexpectedEndOfText is raised by the lexer cursor when a token was
	// required but the source was exhausted.
	UnexpectedEndOfText Kind = iota
	// UnexpectedToken is raised by a primitive combinator when the found
	// token does not match what was expected (and by Either when it is
	// given no alternatives).
	UnexpectedToken
	// ExpectedEndOfText is raised by the end_of_text primitive when a
	// token remains after the caller expected the source to be exhausted.
	ExpectedEndOfText
	// UnrecognizedToken is raised by the lexer cursor when the scanner
	// returns no match for the current suffix.
	UnrecognizedToken
	// UnmatchedDelimiter is raised by a bracket combinator whose closing
	// delimiter was never found.
	UnmatchedDelimiter
	// ValidationFailure is raised by user code via fail(msg), or wraps a
	// user-supplied source error.
	ValidationFailure
	// Aggregated wraps a non-empty list of ParseError collected by a
	// recovery sink plus (optionally) the error that caused the parse to
	// stop, in emission order.
	Aggregated
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEndOfText:
		return "unexpected end of text"
	case UnexpectedToken:
		return "unexpected token"
	case ExpectedEndOfText:
		return "expected end of text"
	case UnrecognizedToken:
		return "unrecognized token"
	case UnmatchedDelimiter:
		return "unmatched delimiter"
	case ValidationFailure:
		return "validation failure"
	case Aggregated:
		return "aggregated errors"
	default:
		return "parse error"
	}
}

// Severity orders errors for reconciliation inside alternative combinators:
// Atomic > Bounded > Delimited > Unbounded > Validation > Lexer. Higher
// values win when Either must pick between two failures, and only
// Severity >= Atomic defeats Maybe/Either suppression — with one explicit
// carve-out, see IsSuppressible.
type Severity int

const (
	SeverityLexer Severity = iota
	SeverityValidation
	SeverityUnbounded
	SeverityDelimited
	SeverityBounded
	SeverityAtomic
)

// Label pairs a span with a human-readable message: the shape used for
// both a ParseError's primary complaint and its secondary highlights.
type Label struct {
	Span    span.Span
	Message string
}

// ParseError is the single error type every layer of this engine produces.
// It always carries a primary label, and optionally further highlights,
// free-form notes, a help string, a wrapped cause, and (for Aggregated
// errors) a list of members.
type ParseError struct {
	Kind       Kind
	Severity   Severity
	Primary    Label
	Highlights []Label
	Notes      []string
	Help       string
	Cause      error
	Members    []*ParseError // only populated when Kind == Aggregated
}

// Error implements the error interface with a single-line rendering;
// callers that want the full structured shape should use MarshalRecord().
func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s at %s", e.Kind, e.Primary.Message, e.Primary.Span.Start)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %s", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause (if any) to errors.Is/errors.As, and — for
// Aggregated errors — every member, matching the multi-error-as-one-error
// contract popularized by hashicorp/go-multierror (see DESIGN.md).
func (e *ParseError) Unwrap() []error {
	if e.Kind == Aggregated {
		errs := make([]error, 0, len(e.Members)+1)
		for _, m := range e.Members {
			errs = append(errs, m)
		}
		if e.Cause != nil {
			errs = append(errs, e.Cause)
		}
		return errs
	}
	if e.Cause != nil {
		return []error{e.Cause}
	}
	return nil
}

// New constructs a bare ParseError of the given kind and default severity,
// with a primary label at sp.
func New(kind Kind, sp span.Span, message string) *ParseError {
	return &ParseError{
		Kind:     kind,
		Severity: defaultSeverity(kind),
		Primary:  Label{Span: sp, Message: message},
	}
}

func defaultSeverity(kind Kind) Severity {
	switch kind {
	case UnexpectedEndOfText, UnrecognizedToken:
		return SeverityLexer
	case ValidationFailure:
		return SeverityValidation
	case UnexpectedToken, ExpectedEndOfText:
		return SeverityBounded
	case UnmatchedDelimiter:
		return SeverityDelimited
	case Aggregated:
		return SeverityAtomic
	default:
		return SeverityUnbounded
	}
}

// WithHighlight appends a secondary label and returns e for chaining.
func (e *ParseError) WithHighlight(sp span.Span, message string) *ParseError {
	e.Highlights = append(e.Highlights, Label{Span: sp, Message: message})
	return e
}

// WithNote appends a free-form note and returns e for chaining.
func (e *ParseError) WithNote(note string) *ParseError {
	e.Notes = append(e.Notes, note)
	return e
}

// WithHelp sets the help string and returns e for chaining.
func (e *ParseError) WithHelp(help string) *ParseError {
	e.Help = help
	return e
}

// WithCause sets the wrapped source error and returns e for chaining.
func (e *ParseError) WithCause(cause error) *ParseError {
	e.Cause = cause
	return e
}

// RaiseSeverity bumps e's severity to at least floor, never lowering it.
// Every context frame that decorates an error uses this instead of direct
// assignment so nested frames can only make a failure harder to suppress,
// never easier.
func (e *ParseError) RaiseSeverity(floor Severity) *ParseError {
	if floor > e.Severity {
		e.Severity = floor
	}
	return e
}

// IsSuppressible reports whether a Maybe/Either may swallow e and
// backtrack. The general rule is severity < Atomic, but ValidationFailure
// is always non-suppressible regardless of its numeric severity — a
// user's explicit fail(msg) is always a deliberate, committed signal, not
// a speculative parse attempt that happened not to match (decision
// recorded in DESIGN.md).
func (e *ParseError) IsSuppressible() bool {
	if e.Kind == ValidationFailure {
		return false
	}
	return e.Severity < SeverityAtomic
}

// HigherSeverity returns whichever of a, b has the higher Severity,
// breaking ties toward a (the first attempted) — the rule an either
// combinator uses to reconcile two failed branches.
func HigherSeverity(a, b *ParseError) *ParseError {
	if b.Severity > a.Severity {
		return b
	}
	return a
}

// Record is the stable, renderer-agnostic shape a ParseError serializes to
// for downstream diagnostic tooling; pretty-printing itself is out of
// scope for this engine.
type Record struct {
	Kind       string         `json:"kind"`
	Primary    LabelRecord    `json:"primary"`
	Highlights []LabelRecord  `json:"highlights,omitempty"`
	Notes      []string       `json:"notes,omitempty"`
	Help       string         `json:"help,omitempty"`
	Source     *Record        `json:"source,omitempty"`
	Members    []Record       `json:"members,omitempty"`
}

// LabelRecord is a Label exported with span endpoints spelled out:
// source name (optional), byte start/end, and the start's line/column.
type LabelRecord struct {
	SourceName string `json:"source_name,omitempty"`
	ByteStart  int    `json:"byte_start"`
	ByteEnd    int    `json:"byte_end"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Message    string `json:"message"`
}

func labelRecord(sourceName string, l Label) LabelRecord {
	return LabelRecord{
		SourceName: sourceName,
		ByteStart:  l.Span.Start.Byte,
		ByteEnd:    l.Span.End.Byte,
		Line:       l.Span.Start.Line,
		Column:     l.Span.Start.Column,
		Message:    l.Message,
	}
}

// MarshalRecord renders e as the stable export shape, tagging every span
// with sourceName (pass "" for anonymous sources).
func (e *ParseError) MarshalRecord(sourceName string) Record {
	r := Record{
		Kind:    e.Kind.String(),
		Primary: labelRecord(sourceName, e.Primary),
		Notes:   e.Notes,
		Help:    e.Help,
	}
	for _, h := range e.Highlights {
		r.Highlights = append(r.Highlights, labelRecord(sourceName, h))
	}
	if e.Cause != nil {
		if pe, ok := e.Cause.(*ParseError); ok {
			rec := pe.MarshalRecord(sourceName)
			r.Source = &rec
		}
	}
	for _, m := range e.Members {
		r.Members = append(r.Members, m.MarshalRecord(sourceName))
	}
	return r
}
