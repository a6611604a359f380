// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package handshake provides the TLS 1.3 handshake messages
package handshake

import (
	"fmt"

	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
	"golang.org/x/crypto/cryptobyte"
)

// Type is the unique identifier for each handshake message
// https://datatracker.ietf.org/doc/html/rfc8446#appendix-B.3
type Type uint8

// Types of TLS Handshake messages we know about.
const (
	TypeClientHello         Type = 1
	TypeServerHello         Type = 2
	TypeNewSessionTicket    Type = 4
	TypeEndOfEarlyData      Type = 5
	TypeEncryptedExtensions Type = 8
	TypeCertificate         Type = 11
	TypeCertificateRequest  Type = 13
	TypeCertificateVerify   Type = 15
	TypeFinished            Type = 20
	TypeKeyUpdate           Type = 24
	TypeMessageHash         Type = 254

	// TypeHelloRetryRequest is never sent on the wire. A HelloRetryRequest
	// is a ServerHello with a special random; the reserved code point keeps
	// it a distinct message type for transition checks.
	TypeHelloRetryRequest Type = 6
)

// String returns the string representation of this type.
func (t Type) String() string { //nolint:cyclop
	switch t {
	case TypeClientHello:
		return "ClientHello"
	case TypeServerHello:
		return "ServerHello"
	case TypeNewSessionTicket:
		return "NewSessionTicket"
	case TypeEndOfEarlyData:
		return "EndOfEarlyData"
	case TypeEncryptedExtensions:
		return "EncryptedExtensions"
	case TypeCertificate:
		return "Certificate"
	case TypeCertificateRequest:
		return "CertificateRequest"
	case TypeCertificateVerify:
		return "CertificateVerify"
	case TypeFinished:
		return "Finished"
	case TypeKeyUpdate:
		return "KeyUpdate"
	case TypeMessageHash:
		return "MessageHash"
	case TypeHelloRetryRequest:
		return "HelloRetryRequest"
	}

	return fmt.Sprintf("Type(%d)", uint8(t))
}

// WireType returns the msg_type byte used to send a message of this type.
func (t Type) WireType() Type {
	if t == TypeHelloRetryRequest {
		return TypeServerHello
	}

	return t
}

// IsPostHandshake reports whether messages of this type are only legal
// after the handshake completed.
func (t Type) IsPostHandshake() bool {
	return t == TypeNewSessionTicket || t == TypeKeyUpdate
}

// Message is the body of a Handshake datagram.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
	Type() Type
}

// HeaderLength is the size of msg_type plus the 24 bit length.
const HeaderLength = 4

// maxMessageSize bounds a single handshake message; large certificate
// chains are the only legitimate reason to come close.
const maxMessageSize = 1 << 18

// Handshake protocol is responsible for selecting a cipher spec and
// generating a master secret, which together comprise the primary
// cryptographic parameters associated with a secure session. The
// handshake protocol can also optionally authenticate parties to each
// other by having them present certificates.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4
type Handshake struct {
	Message Message

	// Raw is the exact encoding (header included) the message was parsed
	// from or serialized to. It is what enters the transcript hash.
	Raw []byte
}

// ContentType returns what kind of content this message is carying.
func (h Handshake) ContentType() protocol.ContentType {
	return protocol.ContentTypeHandshake
}

// Type returns the type of the carried message.
func (h *Handshake) Type() Type {
	if h.Message == nil {
		return 0
	}

	return h.Message.Type()
}

// Marshal encodes a handshake into a binary message and remembers it as Raw.
func (h *Handshake) Marshal() ([]byte, error) {
	if h.Message == nil {
		return nil, errHandshakeMessageUnset
	}

	body, err := h.Message.Marshal()
	if err != nil {
		return nil, err
	}
	if len(body) > maxMessageSize {
		return nil, errMessageTooLarge
	}

	var b cryptobyte.Builder
	b.AddUint8(uint8(h.Message.Type().WireType()))
	b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(body)
	})

	raw, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	h.Raw = raw

	return raw, nil
}

// Unmarshal decodes a single complete handshake message.
func (h *Handshake) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var msgType uint8
	var body cryptobyte.String
	if !s.ReadUint8(&msgType) || !s.ReadUint24LengthPrefixed(&body) {
		return errBufferTooSmall
	}
	if !s.Empty() {
		return errLengthMismatch
	}

	var msg Message
	var err error
	if Type(msgType) == TypeServerHello {
		msg, err = unmarshalServerHello(body)
	} else if msg, err = newMessage(Type(msgType)); err == nil {
		err = msg.Unmarshal(body)
	}
	if err != nil {
		return err
	}

	h.Message = msg
	h.Raw = append([]byte{}, data...)

	return nil
}

func newMessage(t Type) (Message, error) {
	switch t {
	case TypeClientHello:
		return &ClientHello{}, nil
	case TypeEncryptedExtensions:
		return &EncryptedExtensions{}, nil
	case TypeCertificate:
		return &Certificate{}, nil
	case TypeCertificateRequest:
		return &CertificateRequest{}, nil
	case TypeCertificateVerify:
		return &CertificateVerify{}, nil
	case TypeFinished:
		return &Finished{}, nil
	case TypeNewSessionTicket:
		return &NewSessionTicket{}, nil
	case TypeKeyUpdate:
		return &KeyUpdate{}, nil
	}

	return nil, alert.Errorf(alert.UnexpectedMessage, "unexpected handshake message type %s", t)
}
