// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/extension"
	"golang.org/x/crypto/cryptobyte"
)

const maxSessionIDLength = 32

// ClientHello is for when a client first connects to a server it is
// required to send the client hello as its first message.  The client can also send a
// client hello in response to a HelloRetryRequest.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.1.2
type ClientHello struct {
	Version            protocol.Version // legacy_version, always 0x0303
	Random             Random
	SessionID          []byte
	CipherSuiteIDs     []ciphersuite.ID
	CompressionMethods []byte
	Extensions         extension.List
}

// Type returns the Handshake Type.
func (m ClientHello) Type() Type {
	return TypeClientHello
}

// OffersCipherSuite reports whether id was offered.
func (m *ClientHello) OffersCipherSuite(id ciphersuite.ID) bool {
	for _, offered := range m.CipherSuiteIDs {
		if offered == id {
			return true
		}
	}

	return false
}

// OffersVersion reports whether v is listed in supported_versions.
func (m *ClientHello) OffersVersion(v protocol.Version) bool {
	sv := m.Extensions.SupportedVersions()

	return sv != nil && sv.Contains(v)
}

// Marshal encodes the Handshake.
func (m *ClientHello) Marshal() ([]byte, error) {
	if len(m.SessionID) > maxSessionIDLength {
		return nil, errInvalidSessionID
	}
	if len(m.CipherSuiteIDs) == 0 {
		return nil, errInvalidCipherSuites
	}

	exts, err := extension.Marshal(m.Extensions)
	if err != nil {
		return nil, err
	}

	compression := m.CompressionMethods
	if len(compression) == 0 {
		compression = []byte{0x00}
	}

	var b cryptobyte.Builder
	b.AddUint16(m.Version.Uint16())
	b.AddBytes(m.Random[:])
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(m.SessionID)
	})
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		for _, id := range m.CipherSuiteIDs {
			b.AddUint16(uint16(id))
		}
	})
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(compression)
	})
	b.AddBytes(exts)

	return b.Bytes()
}

// Unmarshal populates the message from encoded data.
func (m *ClientHello) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var version uint16
	var random []byte
	var sessionID, suites, compression cryptobyte.String
	if !s.ReadUint16(&version) || !s.ReadBytes(&random, RandomLength) ||
		!s.ReadUint8LengthPrefixed(&sessionID) {
		return errBufferTooSmall
	}
	if len(sessionID) > maxSessionIDLength {
		return errInvalidSessionID
	}
	if !s.ReadUint16LengthPrefixed(&suites) || len(suites) == 0 || len(suites)%2 != 0 {
		return errInvalidCipherSuites
	}
	if !s.ReadUint8LengthPrefixed(&compression) || len(compression) == 0 {
		return errInvalidCompressionMethods
	}

	exts, err := extension.Unmarshal(s, extension.ContextClientHello)
	if err != nil {
		return err
	}

	m.Version = protocol.VersionFromUint16(version)
	copy(m.Random[:], random)
	m.SessionID = append([]byte{}, sessionID...)
	m.CipherSuiteIDs = m.CipherSuiteIDs[:0]
	for !suites.Empty() {
		var id uint16
		suites.ReadUint16(&id)
		m.CipherSuiteIDs = append(m.CipherSuiteIDs, ciphersuite.ID(id))
	}
	m.CompressionMethods = append([]byte{}, compression...)
	m.Extensions = exts

	return nil
}
