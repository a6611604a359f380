// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

// Finished is sent by both sides and carries the MAC over the transcript.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.4
type Finished struct {
	VerifyData []byte
}

// Type returns the Handshake Type.
func (m Finished) Type() Type {
	return TypeFinished
}

// Marshal encodes the Handshake.
func (m *Finished) Marshal() ([]byte, error) {
	if len(m.VerifyData) == 0 {
		return nil, errInvalidFinished
	}

	return append([]byte{}, m.VerifyData...), nil
}

// Unmarshal populates the message from encoded data. The length is checked
// by the MAC comparison.
func (m *Finished) Unmarshal(data []byte) error {
	if len(data) == 0 {
		return errInvalidFinished
	}
	m.VerifyData = append([]byte{}, data...)

	return nil
}
