// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/extension"
	"golang.org/x/crypto/cryptobyte"
)

// serverHelloFields is the structure shared by ServerHello,
// HelloRetryRequest and a legacy ServerHello.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.1.3
type serverHelloFields struct {
	Version           protocol.Version // legacy_version
	Random            Random
	SessionID         []byte // legacy_session_id_echo
	CipherSuiteID     ciphersuite.ID
	CompressionMethod byte
	Extensions        extension.List
}

// SessionIDEcho returns the echoed legacy session id.
func (f *serverHelloFields) SessionIDEcho() []byte { return f.SessionID }

// CipherSuite returns the selected cipher suite.
func (f *serverHelloFields) CipherSuite() ciphersuite.ID { return f.CipherSuiteID }

// ExtensionList returns the extensions of the message.
func (f *serverHelloFields) ExtensionList() extension.List { return f.Extensions }

// SelectedVersion returns the version from supported_versions, falling
// back to legacy_version when the extension is absent.
func (f *serverHelloFields) SelectedVersion() protocol.Version {
	if sv := f.Extensions.SupportedVersions(); sv != nil {
		if v, ok := sv.Selected(); ok {
			return v
		}
	}

	return f.Version
}

func (f *serverHelloFields) marshal(random Random) ([]byte, error) {
	if len(f.SessionID) > maxSessionIDLength {
		return nil, errInvalidSessionID
	}

	exts, err := extension.Marshal(f.Extensions)
	if err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddUint16(f.Version.Uint16())
	b.AddBytes(random[:])
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(f.SessionID)
	})
	b.AddUint16(uint16(f.CipherSuiteID))
	b.AddUint8(f.CompressionMethod)
	b.AddBytes(exts)

	return b.Bytes()
}

// unmarshal returns the random; the extension block is decoded in ctx.
// A missing extension block is accepted for legacy servers.
func (f *serverHelloFields) unmarshal(data []byte, ctx extension.MessageContext) (Random, error) {
	s := cryptobyte.String(data)

	var random Random
	var version, suite uint16
	var randomBytes []byte
	var sessionID cryptobyte.String
	if !s.ReadUint16(&version) || !s.ReadBytes(&randomBytes, RandomLength) ||
		!s.ReadUint8LengthPrefixed(&sessionID) || !s.ReadUint16(&suite) || !s.ReadUint8(&f.CompressionMethod) {
		return random, errBufferTooSmall
	}
	if len(sessionID) > maxSessionIDLength {
		return random, errInvalidSessionID
	}

	exts, err := extension.Unmarshal(s, ctx)
	if err != nil {
		return random, err
	}

	copy(random[:], randomBytes)
	f.Version = protocol.VersionFromUint16(version)
	f.SessionID = append([]byte{}, sessionID...)
	f.CipherSuiteID = ciphersuite.ID(suite)
	f.Extensions = exts

	return random, nil
}

// ServerHello is the TLS 1.3 response to a ClientHello.
type ServerHello struct {
	serverHelloFields
}

// Type returns the Handshake Type.
func (m ServerHello) Type() Type {
	return TypeServerHello
}

// Marshal encodes the Handshake.
func (m *ServerHello) Marshal() ([]byte, error) {
	if m.Random.IsHelloRetryRequest() {
		return nil, errHelloRetryRequestRandomInHello
	}

	return m.marshal(m.Random)
}

// Unmarshal populates the message from encoded data.
func (m *ServerHello) Unmarshal(data []byte) error {
	random, err := m.unmarshal(data, extension.ContextServerHello)
	if err != nil {
		return err
	}
	m.Random = random

	return nil
}

// HelloRetryRequest asks the client to retry with different parameters.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.1.4
type HelloRetryRequest struct {
	serverHelloFields
}

// Type returns the Handshake Type.
func (m HelloRetryRequest) Type() Type {
	return TypeHelloRetryRequest
}

// Marshal encodes the Handshake.
func (m *HelloRetryRequest) Marshal() ([]byte, error) {
	return m.marshal(helloRetryRequestRandom)
}

// Unmarshal populates the message from encoded data.
func (m *HelloRetryRequest) Unmarshal(data []byte) error {
	random, err := m.unmarshal(data, extension.ContextHelloRetryRequest)
	if err != nil {
		return err
	}
	if !random.IsHelloRetryRequest() {
		return errNotHelloRetryRequest
	}

	return nil
}

// ServerHello12 is a ServerHello negotiating TLS 1.2 or below. It is only
// inspected to decide on a downgrade.
type ServerHello12 struct {
	ServerHello
}

// Type returns the Handshake Type.
func (m ServerHello12) Type() Type {
	return TypeServerHello
}

// NewServerHello creates a ServerHello message.
func NewServerHello(version protocol.Version, random Random, sessionID []byte, suite ciphersuite.ID, exts extension.List) *ServerHello {
	return &ServerHello{serverHelloFields{
		Version:       version,
		Random:        random,
		SessionID:     sessionID,
		CipherSuiteID: suite,
		Extensions:    exts,
	}}
}

// NewHelloRetryRequest creates a HelloRetryRequest message.
func NewHelloRetryRequest(sessionID []byte, suite ciphersuite.ID, exts extension.List) *HelloRetryRequest {
	return &HelloRetryRequest{serverHelloFields{
		Version:       protocol.Version1_2,
		Random:        helloRetryRequestRandom,
		SessionID:     sessionID,
		CipherSuiteID: suite,
		Extensions:    exts,
	}}
}

// unmarshalServerHello picks the variant of a ServerHello body: the
// HelloRetryRequest marker random wins, then the presence of
// supported_versions separates TLS 1.3 from older versions.
func unmarshalServerHello(body []byte) (Message, error) {
	if len(body) < 2+RandomLength {
		return nil, errBufferTooSmall
	}

	var random Random
	copy(random[:], body[2:])
	if random.IsHelloRetryRequest() {
		hrr := &HelloRetryRequest{}
		if err := hrr.Unmarshal(body); err != nil {
			return nil, err
		}

		return hrr, nil
	}

	sh := &ServerHello{}
	if err := sh.Unmarshal(body); err != nil {
		return nil, err
	}
	if sh.Extensions.SupportedVersions() == nil {
		return &ServerHello12{ServerHello: *sh}, nil
	}

	return sh, nil
}
