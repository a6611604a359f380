// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package recordlayer

import (
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
	"golang.org/x/crypto/cryptobyte"
)

// Record layer limits.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.1
const (
	HeaderSize        = 5
	MaxPlaintextSize  = 1 << 14
	MaxCiphertextSize = MaxPlaintextSize + 256
)

// Header implements the TLSPlaintext / TLSCiphertext record header
//
//	struct {
//	    ContentType type;
//	    ProtocolVersion legacy_record_version;
//	    uint16 length;
//	} TLSPlaintext;
type Header struct {
	ContentType protocol.ContentType
	Version     protocol.Version
	ContentLen  uint16
}

// Marshal encodes a Header.
func (h *Header) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint8(uint8(h.ContentType))
	b.AddUint8(h.Version.Major)
	b.AddUint8(h.Version.Minor)
	b.AddUint16(h.ContentLen)

	return b.Bytes()
}

// Unmarshal populates a Header from encoded data. It does not judge the
// values, see validate.
func (h *Header) Unmarshal(data []byte) error {
	s := cryptobyte.String(data)

	var contentType uint8
	var version, length uint16
	if !s.ReadUint8(&contentType) || !s.ReadUint16(&version) || !s.ReadUint16(&length) {
		return errBufferTooSmall
	}

	h.ContentType = protocol.ContentType(contentType)
	h.Version = protocol.VersionFromUint16(version)
	h.ContentLen = length

	return nil
}

// validate applies the RFC 8446 rules for received record headers.
// allowCompatibilityVersion permits 0x0301, which is only legal on the very
// first record a server receives.
func (h *Header) validate(allowCompatibilityVersion bool) error {
	// RFC 8446 5.
	//    If a TLS implementation receives an unexpected record type,
	//    it MUST terminate the connection with an "unexpected_message" alert.
	if !h.ContentType.IsValid() {
		return alert.Errorf(alert.UnexpectedMessage, "unexpected record type %d", uint8(h.ContentType))
	}

	if !h.Version.Equal(protocol.Version1_2) &&
		!(allowCompatibilityVersion && h.Version.Equal(protocol.Version1_0)) {
		return alert.Errorf(alert.ProtocolVersion, "invalid record version %s", h.Version)
	}

	// Zero-length fragments of Application Data MAY be sent, everything else
	// must carry content.
	if h.ContentLen == 0 && h.ContentType != protocol.ContentTypeApplicationData {
		return alert.Errorf(alert.DecodeError, "empty %s record received", h.ContentType)
	}

	limit := MaxPlaintextSize
	if h.ContentType == protocol.ContentTypeApplicationData {
		limit = MaxCiphertextSize
	}
	if int(h.ContentLen) > limit {
		return alert.Errorf(alert.RecordOverflow, "overflowing %s record received (%d bytes)", h.ContentType, h.ContentLen)
	}

	return nil
}
