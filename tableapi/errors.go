package tableapi

import (
	"errors"
	"fmt"
)

// Failure classes for remote calls. Timeout and Server class errors
// are retried before being surfaced; Client and Malformed errors
// surface immediately.
type Kind int

const (
	KindTimeout Kind = iota
	KindServer
	KindClient
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server error"
	case KindClient:
		return "client error"
	default:
		return "malformed response"
	}
}

// Error describes a failed remote call, with enough context to tell
// which table or function was involved.
type Error struct {
	Kind   Kind
	Target string // table or function name
	Params string // query string or RPC params, for diagnostics
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s querying %q", e.Kind, e.Target)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Params != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Params)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindServer
}

// KindOf extracts the failure class from an error chain. The second
// return is false if the chain holds no tableapi error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
