// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"github.com/pion/tls13/pkg/protocol/alert"
)

// Reader reassembles handshake messages from record fragments. A message
// may span several records and a record may carry several messages.
type Reader struct {
	buffer []byte
}

// Push appends the content of a handshake record.
func (r *Reader) Push(fragment []byte) {
	r.buffer = append(r.buffer, fragment...)
}

// Buffered reports whether an incomplete message is pending. Handshake
// messages must not span a key change, so the caller checks this before
// switching keys.
func (r *Reader) Buffered() bool {
	return len(r.buffer) != 0
}

// Drain returns every buffered byte and empties the reader.
func (r *Reader) Drain() []byte {
	out := r.buffer
	r.buffer = nil

	return out
}

// Next returns the next complete message, or nil when more data is needed.
func (r *Reader) Next() (*Handshake, error) {
	if len(r.buffer) < HeaderLength {
		return nil, nil //nolint:nilnil
	}

	bodyLen := int(r.buffer[1])<<16 | int(r.buffer[2])<<8 | int(r.buffer[3])
	if bodyLen > maxMessageSize {
		return nil, &alert.Error{Description: alert.DecodeError, Err: errMessageTooLarge}
	}
	if len(r.buffer) < HeaderLength+bodyLen {
		return nil, nil //nolint:nilnil
	}

	raw := r.buffer[:HeaderLength+bodyLen]
	r.buffer = r.buffer[HeaderLength+bodyLen:]
	if len(r.buffer) == 0 {
		r.buffer = nil
	}

	h := &Handshake{}
	if err := h.Unmarshal(raw); err != nil {
		return nil, err
	}

	return h, nil
}
