package api

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags a backend failure with its recovery path. The backend does
// not emit structured error codes, so the classifier below derives the
// kind once, here, and callers never inspect message strings themselves.
type Kind int

const (
	// KindUnknown covers responses the classifier cannot place.
	KindUnknown Kind = iota

	// KindNetwork means the request never produced a response.
	KindNetwork

	// KindInvalidToken means the session token was rejected (401). The
	// caller must clear the session and return to the auth view.
	KindInvalidToken

	// KindFolderLocked means the target folder requires a password
	// challenge (401 referencing the folder password).
	KindFolderLocked

	// KindValidation means the backend rejected the payload (4xx with a
	// message); the message is surfaced verbatim.
	KindValidation

	// KindNotFound means the resource does not exist (404).
	KindNotFound

	// KindServer covers 5xx responses.
	KindServer
)

// Error is the typed failure returned by every client operation.
type Error struct {
	Kind    Kind
	Status  int // HTTP status; 0 when no response was received
	Message string
	Op      string // "login", "list folders", ...
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
}

// ErrorKind returns the Kind of err if it (or anything in its chain) is
// an *Error, and KindUnknown otherwise.
func ErrorKind(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// Message returns the backend-supplied message of err, or fallback when
// err carries none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsInvalidToken reports whether err means the session is no longer valid.
func IsInvalidToken(err error) bool {
	return ErrorKind(err) == KindInvalidToken
}

// IsFolderLocked reports whether err means the target folder requires a
// password challenge.
func IsFolderLocked(err error) bool {
	return ErrorKind(err) == KindFolderLocked
}

// IsNetwork reports whether err means the request never reached the backend.
func IsNetwork(err error) bool {
	return ErrorKind(err) == KindNetwork
}

// classify maps an HTTP status and backend message to a Kind.
//
// The backend distinguishes the two 401 causes only in prose: a rejected
// session token mentions "token", a locked folder mentions "password".
// An ambiguous 401 is treated as an invalid token, which at worst forces
// a re-login rather than prompting for a folder password that would not
// help.
func classify(status int, message string) Kind {
	lower := strings.ToLower(message)
	switch {
	case status == 401 && strings.Contains(lower, "password"):
		return KindFolderLocked
	case status == 401:
		return KindInvalidToken
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServer
	case status >= 400:
		if message != "" {
			return KindValidation
		}
		return KindUnknown
	default:
		return KindUnknown
	}
}
