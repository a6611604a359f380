// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"golang.org/x/crypto/cryptobyte"
)

// Cookie is sent by a server in HelloRetryRequest and echoed by the client
// in its second ClientHello.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.2.2
type Cookie struct {
	Cookie []byte
}

// TypeValue returns the extension TypeValue.
func (c Cookie) TypeValue() TypeValue {
	return CookieTypeValue
}

// Marshal encodes the extension.
func (c *Cookie) Marshal() ([]byte, error) {
	cookieLength := len(c.Cookie)
	if cookieLength == 0 || cookieLength > 0xfffd {
		return nil, errCookieFormat
	}
	var b cryptobyte.Builder
	b.AddUint16(uint16(c.TypeValue()))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes(c.Cookie)
		})
	})

	return b.Bytes()
}

// Unmarshal populates the extension from encoded data.
func (c *Cookie) Unmarshal(data []byte) error {
	body, err := readBody(data, c.TypeValue())
	if err != nil {
		return err
	}

	var cookie cryptobyte.String
	if !body.ReadUint16LengthPrefixed(&cookie) || !body.Empty() {
		return errCookieFormat
	}

	cookieLength := len(cookie)
	if cookieLength == 0 || cookieLength > 0xfffd {
		return errCookieFormat
	}

	c.Cookie = append([]byte{}, cookie...)

	return nil
}
