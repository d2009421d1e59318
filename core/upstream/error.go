// Package upstream describes failures reported by external capabilities
// (completion, synthesis, transcription services).
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

type Capability string

const (
	CapabilityCompletion    Capability = "completion"
	CapabilitySynthesis     Capability = "synthesis"
	CapabilityTranscription Capability = "transcription"
)

// Error is returned by capability adapters when the remote service answers
// with a non-success status or a payload that cannot be used.
type Error struct {
	Capability Capability
	// StatusCode is the HTTP status of the response, zero when the failure
	// happened before or after the status was known.
	StatusCode int
	Reason     string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s upstream error", e.Capability)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d %s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func NewStatusError(capability Capability, statusCode int, reason string) *Error {
	return &Error{Capability: capability, StatusCode: statusCode, Reason: reason}
}

func NewMalformedError(capability Capability, reason string) *Error {
	return &Error{Capability: capability, Reason: "malformed response: " + reason}
}

func Wrap(capability Capability, err error) *Error {
	return &Error{Capability: capability, Err: err}
}

// As extracts the upstream error from err, if any.
func As(err error) (*Error, bool) {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}
