// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"fmt"

	"github.com/pion/tls13/pkg/protocol/handshake"
)

// handshakeState keeps the main-flow messages of one handshake. Every
// message is stored at most once, only the ClientHello is replaced after a
// HelloRetryRequest.
type handshakeState struct {
	clientHello         *handshake.ClientHello
	helloRetryRequest   *handshake.HelloRetryRequest
	serverHello         *handshake.ServerHello
	serverHello12       *handshake.ServerHello12
	encryptedExtensions *handshake.EncryptedExtensions
	certificateRequest  *handshake.CertificateRequest
	serverCertificate   *handshake.Certificate
	serverCertVerify    *handshake.CertificateVerify
	serverFinished      *handshake.Finished

	clientCertificate *handshake.Certificate
	clientCertVerify  *handshake.CertificateVerify
	clientFinished    *handshake.Finished
}

func store[T any](slot **T, msg *T) error {
	if *slot != nil {
		return &InternalError{Err: fmt.Errorf("%w: %T", errDuplicateMessage, msg)}
	}
	*slot = msg

	return nil
}

// sent records a message this client transmitted.
func (s *handshakeState) sent(msg handshake.Message) error {
	switch m := msg.(type) {
	case *handshake.ClientHello:
		if s.clientHello != nil && s.helloRetryRequest == nil {
			return &InternalError{Err: fmt.Errorf("%w: %T", errDuplicateMessage, m)}
		}
		s.clientHello = m

		return nil
	case *handshake.Certificate:
		return store(&s.clientCertificate, m)
	case *handshake.CertificateVerify:
		return store(&s.clientCertVerify, m)
	case *handshake.Finished:
		return store(&s.clientFinished, m)
	default:
		return &InternalError{Err: fmt.Errorf("%w: sent %T", errUnexpectedMessageType, msg)}
	}
}

// received records a message sent by the server.
func (s *handshakeState) received(msg handshake.Message) error {
	switch m := msg.(type) {
	case *handshake.HelloRetryRequest:
		return store(&s.helloRetryRequest, m)
	case *handshake.ServerHello:
		return store(&s.serverHello, m)
	case *handshake.ServerHello12:
		return store(&s.serverHello12, m)
	case *handshake.EncryptedExtensions:
		return store(&s.encryptedExtensions, m)
	case *handshake.CertificateRequest:
		return store(&s.certificateRequest, m)
	case *handshake.Certificate:
		return store(&s.serverCertificate, m)
	case *handshake.CertificateVerify:
		return store(&s.serverCertVerify, m)
	case *handshake.Finished:
		return store(&s.serverFinished, m)
	default:
		return &InternalError{Err: fmt.Errorf("%w: received %T", errUnexpectedMessageType, msg)}
	}
}

func (s *handshakeState) hasClientHello() bool { return s.clientHello != nil }

func (s *handshakeState) hasHelloRetryRequest() bool { return s.helloRetryRequest != nil }

func (s *handshakeState) hasServerFinished() bool { return s.serverFinished != nil }

func (s *handshakeState) handshakeFinished() bool {
	return s.serverFinished != nil && s.clientFinished != nil
}
