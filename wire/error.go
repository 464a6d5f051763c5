// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrMalformed indicates bytes that do not form a valid transaction
	// encoding: truncated input, length prefixes pointing past the end of
	// the data, or an extra payload whose decoder did not consume exactly
	// the declared length.
	ErrMalformed = errors.New("malformed transaction encoding")

	// ErrPayloadTypeMismatch indicates that a transaction of a registered
	// special type carries an extra payload of a different variant.
	ErrPayloadTypeMismatch = errors.New("extra payload does not conform with the special transaction type")

	// ErrMalformedOpaquePayload indicates that a transaction of an
	// unregistered special type carries an extra payload that is not
	// OpaquePayload.
	ErrMalformedOpaquePayload = errors.New("extra payload of an unregistered special transaction type is not opaque bytes")

	// ErrInvariantViolation indicates a value that breaks a structural
	// invariant of the encoding, such as a hash that is not 32 bytes long.
	ErrInvariantViolation = errors.New("invariant violation")
)

// MessageError describes an issue with a transaction encoding. It unwraps to
// ErrMalformed.
type MessageError struct {
	Func        string // Function name
	Description string // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e *MessageError) Error() string {
	if e.Func != "" {
		return e.Func + ": " + e.Description
	}
	return e.Description
}

// Unwrap returns ErrMalformed so that callers can test with errors.Is.
func (e *MessageError) Unwrap() error {
	return ErrMalformed
}

// messageError creates an error for the given function and description.
func messageError(f string, desc string) error {
	return errors.WithStack(&MessageError{Func: f, Description: desc})
}

// IsMalformedError returns whether err was caused by malformed or truncated
// input.
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, ErrMalformed)
}
