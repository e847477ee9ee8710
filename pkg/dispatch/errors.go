package dispatch

import "fmt"

// ErrorKind classifies routing failures. Everything except Infrastructure is
// an expected condition handled inside the dispatcher; only Infrastructure
// propagates to the caller for a generic apology.
type ErrorKind string

const (
	KindNoMatch           ErrorKind = "no_match"
	KindAmbiguousMatch    ErrorKind = "ambiguous_match"
	KindBadgeNotFound     ErrorKind = "badge_not_found"
	KindStaleKnownTerms   ErrorKind = "stale_known_terms"
	KindClassifierTimeout ErrorKind = "classifier_timeout"
	KindClassifierError   ErrorKind = "classifier_error"
	KindInfrastructure    ErrorKind = "infrastructure"
)

// RouteError is a typed routing error.
type RouteError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *RouteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *RouteError) Unwrap() error { return e.Err }

// NewRouteError builds a typed error.
func NewRouteError(kind ErrorKind, msg string, err error) *RouteError {
	return &RouteError{Kind: kind, Msg: msg, Err: err}
}
