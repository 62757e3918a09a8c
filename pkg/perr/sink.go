package perr

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Sink is the mutable collector recovery combinators populate as a side
// effect while a parse keeps going past a recoverable failure. A Sink is
// borrowed by one parse; it is not safe for concurrent use.
//
// SessionID tags the sink so a caller driving many recovered parses (a
// batch linter walking a tree of sources, for instance) can correlate a
// given Aggregated failure back to the source/run that produced it in
// structured logs — the same correlation role playbymail-ottomap's
// internal/parsers give a uuid.UUID per report-parsing run (see
// DESIGN.md).
type Sink struct {
	SessionID uuid.UUID
	errs      []*ParseError
}

// NewSink creates a fresh sink with a random session id.
func NewSink() *Sink {
	return &Sink{SessionID: uuid.New()}
}

// Emit records err. Callers are expected to call Emit at most once per
// recovery site — Sink itself does not enforce that (the bracket
// combinator does, since only it knows when a site's single emission has
// already happened).
func (s *Sink) Emit(err *ParseError) {
	s.errs = append(s.errs, err)
}

// Errors returns every error emitted so far, in emission order.
func (s *Sink) Errors() []*ParseError {
	return s.errs
}

// HasErrors reports whether anything has been emitted. A parse is only
// considered successful overall if nothing was ever emitted to its sink.
func (s *Sink) HasErrors() bool {
	return len(s.errs) > 0
}

// Aggregate builds the top-level Aggregated ParseError: every sink entry
// followed (if the parse also returned Failure at the root) by the root
// error, in emission order. root may be nil when the parse otherwise
// succeeded but the sink is non-empty.
func (s *Sink) Aggregate(root *ParseError) *ParseError {
	members := make([]*ParseError, 0, len(s.errs)+1)
	members = append(members, s.errs...)
	if root != nil {
		members = append(members, root)
	}
	if len(members) == 0 {
		return nil
	}
	agg := &ParseError{
		Kind:     Aggregated,
		Severity: SeverityAtomic,
		Primary:  Label{Span: members[0].Primary.Span, Message: "parsing failed with multiple errors"},
		Members:  members,
	}
	return agg
}

// AsError folds the sink's contents (plus an optional extra failure, e.g.
// an I/O error reading the source) into a single error using
// hashicorp/go-multierror's Append, the multi-error-as-one-error idiom
// this engine's Aggregated kind mirrors (see DESIGN.md). Returns nil when
// there is nothing to report.
func (s *Sink) AsError(extra error) error {
	var merr *multierror.Error
	for _, e := range s.errs {
		merr = multierror.Append(merr, e)
	}
	if extra != nil {
		merr = multierror.Append(merr, extra)
	}
	return merr.ErrorOrNil()
}
