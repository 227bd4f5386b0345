package manager

import (
	"errors"
	"fmt"

	"github.com/cyp0633/libccm/internal/resolve"
	"github.com/cyp0633/libccm/resource"
)

// ErrorKind classifies manager errors.
type ErrorKind string

const (
	KindStoreUnavailable     ErrorKind = "store_unavailable"
	KindQueryFailure         ErrorKind = "query_failure"
	KindResolutionNotFound   ErrorKind = "resolution_not_found"
	KindParseFailure         ErrorKind = "parse_failure"
	KindMissingParent        ErrorKind = "missing_parent"
	KindUnhandledCombination ErrorKind = "unhandled_combination"
	KindDuplicateID          ErrorKind = "duplicate_id"
)

// Error is a failure tied to one resource id. Only a StoreUnavailable error
// during bootstrap is fatal; every other kind affects a single item.
type Error struct {
	Kind ErrorKind
	ID   resource.ID
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrStoreUnavailable     = &Error{Kind: KindStoreUnavailable}
	ErrQueryFailure         = &Error{Kind: KindQueryFailure}
	ErrResolutionNotFound   = &Error{Kind: KindResolutionNotFound}
	ErrParseFailure         = &Error{Kind: KindParseFailure}
	ErrMissingParent        = &Error{Kind: KindMissingParent}
	ErrUnhandledCombination = &Error{Kind: KindUnhandledCombination}
	ErrDuplicateID          = &Error{Kind: KindDuplicateID}
)

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.ID != "" {
		msg += " " + e.ID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// resolveError maps a resolver failure onto the matching kind.
func resolveError(id resource.ID, err error) *Error {
	kind := KindQueryFailure
	switch {
	case errors.Is(err, resolve.ErrNotFound):
		kind = KindResolutionNotFound
	case errors.Is(err, resolve.ErrParse):
		kind = KindParseFailure
	}
	return &Error{Kind: kind, ID: id, Err: err}
}

func unhandled(op string, r resource.Resource) *Error {
	return &Error{
		Kind: KindUnhandledCombination,
		ID:   r.ID(),
		Err:  fmt.Errorf("%s of a %s is not supported", op, r.Kind()),
	}
}
