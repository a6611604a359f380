// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import "golang.org/x/crypto/cryptobyte"

// Unknown carries an extension this package does not interpret.
type Unknown struct {
	Type TypeValue
	Data []byte
}

// TypeValue returns the extension TypeValue.
func (u Unknown) TypeValue() TypeValue { return u.Type }

// Marshal encodes the extension.
func (u *Unknown) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint16(uint16(u.Type))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(u.Data)
	})

	return b.Bytes()
}

// Unmarshal populates the extension from encoded data.
func (u *Unknown) Unmarshal(data []byte) error {
	body, err := readBody(data, u.Type)
	if err != nil {
		return err
	}
	u.Data = append([]byte{}, body...)

	return nil
}
