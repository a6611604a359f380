// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"bytes"
	"crypto/rand"
	"io"

	"github.com/pion/tls13/pkg/protocol"
)

// RandomLength is the length of the ClientHello/ServerHello random.
const RandomLength = 32

// Random is the 32 byte value sent in ClientHello and ServerHello.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.1.2
type Random [RandomLength]byte

// RFC 8446 4.1.3
//
//	For reasons of backward compatibility with middleboxes [...], the
//	HelloRetryRequest message uses the same structure as the ServerHello,
//	but with Random set to the special value of the SHA-256 of
//	"HelloRetryRequest".
var helloRetryRequestRandom = Random{ //nolint:gochecknoglobals
	0xCF, 0x21, 0xAD, 0x74, 0xE5, 0x9A, 0x61, 0x11,
	0xBE, 0x1D, 0x8C, 0x02, 0x1E, 0x65, 0xB8, 0x91,
	0xC2, 0xA2, 0x11, 0x16, 0x7A, 0xBB, 0x8C, 0x5E,
	0x07, 0x9E, 0x09, 0xE2, 0xC8, 0xA8, 0x33, 0x9C,
}

// Downgrade protection sentinels placed in the last 8 bytes of a
// ServerHello random by a TLS 1.3 capable server negotiating an older
// version.
var (
	downgradeTLS12 = []byte{0x44, 0x4F, 0x57, 0x4E, 0x47, 0x52, 0x44, 0x01} //nolint:gochecknoglobals
	downgradeTLS11 = []byte{0x44, 0x4F, 0x57, 0x4E, 0x47, 0x52, 0x44, 0x00} //nolint:gochecknoglobals
)

const downgradeSentinelLength = 8

// HelloRetryRequestRandom returns the fixed random of a HelloRetryRequest.
func HelloRetryRequestRandom() Random {
	return helloRetryRequestRandom
}

// Populate fills the random from reader. A nil reader uses crypto/rand.
func (r *Random) Populate(reader io.Reader) error {
	if reader == nil {
		reader = rand.Reader
	}
	_, err := io.ReadFull(reader, r[:])

	return err
}

// IsHelloRetryRequest reports whether r is the HelloRetryRequest marker.
func (r Random) IsHelloRetryRequest() bool {
	return r == helloRetryRequestRandom
}

// DowngradeSignal reports the version a server signalled in the last 8
// bytes of its random, if any. TLS 1.1 stands for "TLS 1.1 or below".
func (r Random) DowngradeSignal() (protocol.Version, bool) {
	tail := r[RandomLength-downgradeSentinelLength:]
	switch {
	case bytes.Equal(tail, downgradeTLS12):
		return protocol.Version1_2, true
	case bytes.Equal(tail, downgradeTLS11):
		return protocol.Version1_1, true
	}

	return protocol.Version{}, false
}

// WithDowngradeSignal returns a copy of r carrying the sentinel for v.
// Versions other than TLS 1.2 select the TLS 1.1 sentinel.
func (r Random) WithDowngradeSignal(v protocol.Version) Random {
	sentinel := downgradeTLS11
	if v.Equal(protocol.Version1_2) {
		sentinel = downgradeTLS12
	}
	copy(r[RandomLength-downgradeSentinelLength:], sentinel)

	return r
}
