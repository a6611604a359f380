// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package protocol

// ChangeCipherSpec is a no-op in TLS 1.3. It may still be sent unprotected
// for middlebox compatibility and must then consist of the single byte 0x01.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5
type ChangeCipherSpec struct{}

// ChangeCipherSpecValue is the only legal ChangeCipherSpec payload byte.
const ChangeCipherSpecValue = 0x01

// ContentType returns the ContentType of this content.
func (c ChangeCipherSpec) ContentType() ContentType {
	return ContentTypeChangeCipherSpec
}

// Marshal encodes the ChangeCipherSpec.
func (c *ChangeCipherSpec) Marshal() ([]byte, error) {
	return []byte{ChangeCipherSpecValue}, nil
}

// Unmarshal populates the ChangeCipherSpec from binary data.
func (c *ChangeCipherSpec) Unmarshal(data []byte) error {
	if !IsChangeCipherSpecPayload(data) {
		return errInvalidCipherSpec
	}

	return nil
}

// IsChangeCipherSpecPayload reports whether data is exactly the one byte 0x01.
func IsChangeCipherSpecPayload(data []byte) bool {
	return len(data) == 1 && data[0] == ChangeCipherSpecValue
}
