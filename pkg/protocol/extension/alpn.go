// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"golang.org/x/crypto/cryptobyte"
)

// ALPN is a TLS extension for application-layer protocol negotiation within
// the TLS handshake.
//
// https://tools.ietf.org/html/rfc7301
type ALPN struct {
	ProtocolNameList []string
}

// TypeValue returns the extension TypeValue.
func (a ALPN) TypeValue() TypeValue {
	return ALPNTypeValue
}

// Marshal encodes the extension.
func (a *ALPN) Marshal() ([]byte, error) {
	for _, proto := range a.ProtocolNameList {
		if len(proto) == 0 || len(proto) > 255 {
			return nil, ErrALPNInvalidFormat
		}
	}

	var b cryptobyte.Builder
	b.AddUint16(uint16(a.TypeValue()))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			for _, proto := range a.ProtocolNameList {
				b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
					b.AddBytes([]byte(proto))
				})
			}
		})
	})

	return b.Bytes()
}

// Unmarshal populates the extension from encoded data.
func (a *ALPN) Unmarshal(data []byte) error {
	body, err := readBody(data, a.TypeValue())
	if err != nil {
		return err
	}

	var protoList cryptobyte.String
	if !body.ReadUint16LengthPrefixed(&protoList) || protoList.Empty() || !body.Empty() {
		return ErrALPNInvalidFormat
	}

	a.ProtocolNameList = nil
	for !protoList.Empty() {
		var proto cryptobyte.String
		if !protoList.ReadUint8LengthPrefixed(&proto) || proto.Empty() {
			return ErrALPNInvalidFormat
		}
		a.ProtocolNameList = append(a.ProtocolNameList, string(proto))
	}

	return nil
}

// ALPNProtocolSelection validates the protocol the server picked. The
// server must have selected exactly one of the protocols we offered.
func ALPNProtocolSelection(offered, selected []string) (string, error) {
	if len(selected) == 0 {
		return "", nil
	}
	if len(selected) != 1 {
		return "", ErrALPNInvalidFormat
	}
	for _, o := range offered {
		if o == selected[0] {
			return o, nil
		}
	}

	return "", errALPNNoAppProto
}
