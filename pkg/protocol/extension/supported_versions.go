// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"github.com/pion/tls13/pkg/protocol"
	"golang.org/x/crypto/cryptobyte"
)

// SupportedVersions is a TLS extension used by the client to indicate
// which versions of TLS it supports and by the server to indicate which
// version it is using.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.2.1
type SupportedVersions struct {
	// ClientHello's preference-ordered list, or the single selected
	// version in ServerHello and HelloRetryRequest.
	Versions []protocol.Version

	ctx MessageContext
}

// TypeValue returns the extension TypeValue.
func (s SupportedVersions) TypeValue() TypeValue { return SupportedVersionsTypeValue }

func (s *SupportedVersions) setContext(ctx MessageContext) { s.ctx = ctx }

func (s *SupportedVersions) selected() bool {
	return s.ctx == ContextServerHello || s.ctx == ContextHelloRetryRequest
}

// Selected returns the version chosen by the server.
func (s *SupportedVersions) Selected() (protocol.Version, bool) {
	if len(s.Versions) != 1 {
		return protocol.Version{}, false
	}

	return s.Versions[0], true
}

// Contains reports whether v is listed.
func (s *SupportedVersions) Contains(v protocol.Version) bool {
	for _, ours := range s.Versions {
		if ours.Equal(v) {
			return true
		}
	}

	return false
}

// NewSelectedVersion creates the ServerHello form of the extension.
func NewSelectedVersion(v protocol.Version) *SupportedVersions {
	return &SupportedVersions{Versions: []protocol.Version{v}, ctx: ContextServerHello}
}

// Marshal encodes the extension. The ClientHello form is a list, the
// ServerHello form a single version.
func (s *SupportedVersions) Marshal() ([]byte, error) {
	// The 2..254 bound is defined in the following:
	// https://datatracker.ietf.org/doc/html/rfc8446#section-4.2.1
	if len(s.Versions) == 0 || len(s.Versions) > 127 || (s.selected() && len(s.Versions) != 1) {
		return nil, errInvalidSupportedVersionsFormat
	}

	var builder cryptobyte.Builder
	builder.AddUint16(uint16(s.TypeValue()))
	builder.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		if s.selected() {
			b.AddUint16(s.Versions[0].Uint16())

			return
		}

		b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
			for _, v := range s.Versions {
				b.AddUint16(v.Uint16())
			}
		})
	})

	return builder.Bytes()
}

// Unmarshal parses either the ClientHello list or the ServerHello /
// HelloRetryRequest single value, depending on the carrying message.
func (s *SupportedVersions) Unmarshal(data []byte) error {
	body, err := readBody(data, s.TypeValue())
	if err != nil {
		return err
	}

	s.Versions = s.Versions[:0]
	if s.selected() {
		var v uint16
		if !body.ReadUint16(&v) || !body.Empty() {
			return errInvalidSupportedVersionsFormat
		}
		s.Versions = append(s.Versions, protocol.VersionFromUint16(v))

		return nil
	}

	var list cryptobyte.String
	if !body.ReadUint8LengthPrefixed(&list) || !body.Empty() || len(list) < 2 || len(list)%2 != 0 {
		return errInvalidSupportedVersionsFormat
	}
	for !list.Empty() {
		var v uint16
		list.ReadUint16(&v)
		s.Versions = append(s.Versions, protocol.VersionFromUint16(v))
	}

	return nil
}
