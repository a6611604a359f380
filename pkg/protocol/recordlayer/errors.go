// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package recordlayer implements the TLS 1.3 Record Layer https://datatracker.ietf.org/doc/html/rfc8446#section-5
package recordlayer

import (
	"errors"

	"github.com/pion/tls13/pkg/protocol"
)

// Local contract violations. None of these are caused by the peer.
var (
	//nolint:err113
	errUnprotectedApplicationData = &protocol.InternalError{
		Err: errors.New("application data records must not be written to the wire unprotected"),
	}
	//nolint:err113
	errEmptyFragment = &protocol.InternalError{
		Err: errors.New("zero-length fragments of types other than application data are not allowed"),
	}
	//nolint:err113
	errInvalidChangeCipherSpec = &protocol.InternalError{
		Err: errors.New("change cipher spec payload must be the single byte 0x01"),
	}
	//nolint:err113
	errInitialChangeCipherSpec = &protocol.InternalError{
		Err: errors.New("change cipher spec must not be the initial record"),
	}
	//nolint:err113
	errInvalidContentType = &protocol.InternalError{Err: errors.New("invalid content type")}
	//nolint:err113
	errCiphertextLengthMismatch = &protocol.InternalError{
		Err: errors.New("sealed fragment length does not match the announced length"),
	}
	//nolint:err113
	errBufferTooSmall = &protocol.TemporaryError{Err: errors.New("buffer is too small")}
)
