// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"errors"

	"github.com/pion/tls13/pkg/protocol"
)

// Typed errors.
var (
	errBufferTooSmall                 = &protocol.TemporaryError{Err: errors.New("buffer is too small")}                               //nolint:err113
	errLengthMismatch                 = &protocol.InternalError{Err: errors.New("data length and declared length do not match")}       //nolint:err113
	errHandshakeMessageUnset          = &protocol.InternalError{Err: errors.New("handshake message unset, unable to marshal")}         //nolint:err113
	errMessageTooLarge                = &protocol.FatalError{Err: errors.New("handshake message exceeds maximum size")}                //nolint:err113
	errInvalidSessionID               = &protocol.FatalError{Err: errors.New("session id must not be longer than 32 bytes")}           //nolint:err113
	errInvalidCipherSuites            = &protocol.FatalError{Err: errors.New("invalid cipher_suites vector")}                          //nolint:err113
	errInvalidCompressionMethods      = &protocol.FatalError{Err: errors.New("invalid legacy_compression_methods vector")}             //nolint:err113
	errInvalidCertificateEntry        = &protocol.FatalError{Err: errors.New("invalid certificate entry")}                             //nolint:err113
	errRequestContextTooLong          = &protocol.FatalError{Err: errors.New("certificate_request_context must not exceed 255 bytes")} //nolint:err113
	errMissingSignatureAlgorithms     = &protocol.FatalError{Err: errors.New("certificate request without signature_algorithms")}      //nolint:err113
	errInvalidSignature               = &protocol.FatalError{Err: errors.New("invalid certificate verify signature")}                  //nolint:err113
	errInvalidFinished                = &protocol.FatalError{Err: errors.New("finished must carry verify_data")}                       //nolint:err113
	errInvalidNewSessionTicket        = &protocol.FatalError{Err: errors.New("invalid new session ticket")}                            //nolint:err113
	errNotHelloRetryRequest           = &protocol.InternalError{Err: errors.New("random does not identify a HelloRetryRequest")}       //nolint:err113
	errHelloRetryRequestRandomInHello = &protocol.InternalError{Err: errors.New("ServerHello random identifies a HelloRetryRequest")}  //nolint:err113
)
