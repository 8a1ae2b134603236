package domain

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindUpstreamOrInternal ErrorKind = iota
	KindUnauthorized
	KindMalformedHandle
	KindPlayerNotFound
	KindCatalogMisconfigured
	KindPersistenceFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindMalformedHandle:
		return "malformed_handle"
	case KindPlayerNotFound:
		return "player_not_found"
	case KindCatalogMisconfigured:
		return "catalog_misconfigured"
	case KindPersistenceFailed:
		return "persistence_failed"
	default:
		return "upstream_or_internal"
	}
}

// HTTPStatus maps a failure kind onto the status code returned to clients.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindMalformedHandle:
		return http.StatusBadRequest
	case KindPlayerNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SyncError is a terminal stat sync failure. Message is safe to show to users.
type SyncError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(kind ErrorKind, message string, err error) *SyncError {
	return &SyncError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of a SyncError anywhere in err's chain.
func KindOf(err error) ErrorKind {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUpstreamOrInternal
}

// UserMessage returns the display message for err. Errors outside the taxonomy
// surface their own text, matching the catch-all behaviour.
func UserMessage(err error) string {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
