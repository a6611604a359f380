// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
)

// Typed errors.
var (
	ErrConnClosed = &FatalError{Err: errors.New("conn is closed")} //nolint:err113

	errDeadlineExceeded = &TimeoutError{Err: fmt.Errorf("read/write timeout: %w", context.DeadlineExceeded)}

	//nolint:err113
	errHandshakeInProgress = &TemporaryError{Err: errors.New("handshake is in progress")}

	//nolint:err113
	errEmptyCertificates = &FatalError{Err: errors.New("certificates must not be empty")}
	//nolint:err113
	errEmptyCipherSuites = &FatalError{Err: errors.New("cipher suites must not be empty")}
	//nolint:err113
	errEmptyGroups = &FatalError{Err: errors.New("groups must not be empty")}
	//nolint:err113
	errEmptySignatureSchemes = &FatalError{Err: errors.New("signature schemes must not be empty")}
	//nolint:err113
	errEmptyNextProtos = &FatalError{Err: errors.New("application protocols must not be empty")}
	//nolint:err113
	errInvalidNextProto = &FatalError{Err: errors.New("application protocol must be 1 to 255 bytes long")}
	//nolint:err113
	errInvalidServerName = &FatalError{Err: errors.New("server name is not a valid host name")}
	//nolint:err113
	errNoHostname = errors.New("no server name to verify the certificate against")
	//nolint:err113
	errInvalidCertificate = &FatalError{Err: errors.New("certificate has no leaf or private key")}
	//nolint:err113
	errNilCallbacks = &FatalError{Err: errors.New("callbacks must not be nil")}
	//nolint:err113
	errNilCipherStateFactory = &FatalError{Err: errors.New("cipher state factory must not be nil")}
	//nolint:err113
	errNilLoggerFactory = &FatalError{Err: errors.New("logger factory must not be nil")}
	//nolint:err113
	errNilRand = &FatalError{Err: errors.New("random source must not be nil")}
	//nolint:err113
	errNilNextConn = &FatalError{Err: errors.New("Conn can not be created with a nil nextConn")}
	//nolint:err113
	errNilWriter = &FatalError{Err: errors.New("client can not be created with a nil writer")}
	//nolint:err113
	errNoConfigProvided = &FatalError{Err: errors.New("no config provided")}

	//nolint:err113
	errDowngradeNotAllowed = &InternalError{
		Err: errors.New("server negotiated a legacy version but downgrades are not allowed"),
	}
	//nolint:err113
	errDowngradeRequested = &InternalError{Err: errors.New("connection was handed off to a legacy implementation")}
	//nolint:err113
	errDowngradeTLS12 = &InternalError{
		Err: fmt.Errorf("%w: TLS 1.2 downgrade sentinel in a TLS 1.3 ServerHello", protocol.ErrNotImplemented),
	}
	//nolint:err113
	errPSKOnly = &InternalError{
		Err: fmt.Errorf("%w: PSK-only key exchange", protocol.ErrNotImplemented),
	}
	//nolint:err113
	errPeerCertChain = &InternalError{
		Err: fmt.Errorf("%w: peer certificate chain retrieval", protocol.ErrNotImplemented),
	}
	//nolint:err113
	errUnexpectedMessageType = &InternalError{Err: errors.New("unexpected message type")}
	//nolint:err113
	errDuplicateMessage = &InternalError{Err: errors.New("handshake message already stored")}
)

// FatalError indicates that the TLS connection is no longer available.
// It is mainly caused by wrong configuration of server or client.
type FatalError = protocol.FatalError

// InternalError indicates and internal error caused by the implementation,
// and the TLS connection is no longer available.
// It is mainly caused by bugs or tried to use unimplemented features.
type InternalError = protocol.InternalError

// TemporaryError indicates that the TLS connection is still available, but the request was failed temporary.
type TemporaryError = protocol.TemporaryError

// TimeoutError indicates that the request was timed out.
type TimeoutError = protocol.TimeoutError

// HandshakeError indicates that the handshake failed.
type HandshakeError = protocol.HandshakeError

// invalidCipherSuiteError indicates an attempt at using an unsupported cipher suite.
type invalidCipherSuiteError struct {
	id ciphersuite.ID
}

func (e *invalidCipherSuiteError) Error() string {
	return fmt.Sprintf("CipherSuite with id(%d) is not valid", e.id)
}

func (e *invalidCipherSuiteError) Is(err error) bool {
	var other *invalidCipherSuiteError
	if errors.As(err, &other) {
		return e.id == other.id
	}

	return false
}

// invalidGroupError indicates an attempt at using an unsupported key exchange group.
type invalidGroupError struct {
	group elliptic.Curve
}

func (e *invalidGroupError) Error() string {
	return fmt.Sprintf("group %s is not supported", e.group)
}

// alertError wraps an alert received from the peer as an error.
type alertError struct {
	*alert.Alert
}

func (e *alertError) Error() string {
	return fmt.Sprintf("alert: %s", e.Alert.String())
}

func (e *alertError) Is(err error) bool {
	var other *alertError
	if errors.As(err, &other) {
		return e.Description == other.Description
	}

	return false
}

// netError translates an error from underlying Conn to corresponding net.Error.
func netError(err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Return io.EOF and context errors as is.
		return err
	}

	var (
		ne      net.Error
		opError *net.OpError
		se      *os.SyscallError
	)

	if errors.As(err, &opError) {
		if errors.As(opError, &se) && se.Timeout() {
			return &TimeoutError{Err: err}
		}
	}

	if errors.As(err, &ne) {
		return err
	}

	return &FatalError{Err: err}
}
