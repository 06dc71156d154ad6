////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package errs defines the error kinds surfaced by the client library.
//
// Every failure returned by a pull operation is (or wraps) an *Error whose
// Kind identifies the class of failure. Use Is to test for a kind through
// any amount of github.com/pkg/errors wrapping.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error.
type Kind uint8

const (
	// Unknown is the zero Kind and is never produced by the library.
	Unknown Kind = iota

	// InvalidArgument is returned when a caller supplies an unusable
	// argument, such as a nil event handler.
	InvalidArgument

	// InvalidInvocation is returned when an operation is called in the wrong
	// mode (client-only under server integration or the reverse) or before
	// a user has logged in.
	InvalidInvocation

	// Unauthorized is returned when the server rejects the credentials.
	Unauthorized

	// ServerError is returned for every other non-2xx response and for
	// application level errors in otherwise valid responses.
	ServerError

	// NetworkError is returned when the transport fails without producing a
	// structured response.
	NetworkError
)

var kindStrings = map[Kind]string{
	Unknown:           "Unknown",
	InvalidArgument:   "InvalidArgument",
	InvalidInvocation: "InvalidInvocation",
	Unauthorized:      "Unauthorized",
	ServerError:       "ServerError",
	NetworkError:      "NetworkError",
}

// String returns the Kind as a human-readable name.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("INVALID KIND %d", k)
}

// Error is the concrete error type of the library.
type Error struct {
	Kind Kind

	// Status is the HTTP status of the response that produced the error, or
	// 0 when there was no response.
	Status int

	// Message is the richest message available for the failure.
	Message string

	cause error
}

// New returns an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind that records cause as the
// underlying failure.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the Kind of the first *Error found in the chain of err, or
// Unknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err is or wraps an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// InvalidInvocationErr returns the InvalidInvocation error for the named
// operation with the reason it cannot run.
func InvalidInvocationErr(operation, reason string) *Error {
	return Newf(InvalidInvocation, "%s: %s", operation, reason)
}
