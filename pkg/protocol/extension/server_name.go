// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"golang.org/x/crypto/cryptobyte"
)

const serverNameTypeHostName = 0

// ServerName allows the client to inform the server the specific
// name it wishes to contact. Useful if multiple DNS names resolve
// to one IP. A server acknowledges it in EncryptedExtensions with an empty
// body, which leaves ServerName empty.
//
// https://tools.ietf.org/html/rfc6066#section-3
type ServerName struct {
	ServerName string
}

// TypeValue returns the extension TypeValue.
func (s ServerName) TypeValue() TypeValue {
	return ServerNameTypeValue
}

// Marshal encodes the extension.
func (s *ServerName) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint16(uint16(s.TypeValue()))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		if s.ServerName == "" {
			return
		}
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddUint8(serverNameTypeHostName)
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes([]byte(s.ServerName))
			})
		})
	})

	return b.Bytes()
}

// Unmarshal populates the extension from encoded data.
func (s *ServerName) Unmarshal(data []byte) error {
	body, err := readBody(data, s.TypeValue())
	if err != nil {
		return err
	}
	s.ServerName = ""
	if body.Empty() {
		return nil
	}

	var nameList cryptobyte.String
	if !body.ReadUint16LengthPrefixed(&nameList) || nameList.Empty() || !body.Empty() {
		return errInvalidSNIFormat
	}

	for !nameList.Empty() {
		var nameType uint8
		var name cryptobyte.String
		if !nameList.ReadUint8(&nameType) || !nameList.ReadUint16LengthPrefixed(&name) || name.Empty() {
			return errInvalidSNIFormat
		}
		if nameType != serverNameTypeHostName {
			continue
		}
		if s.ServerName != "" {
			return errInvalidSNIFormat
		}
		s.ServerName = string(name)
	}

	return nil
}
