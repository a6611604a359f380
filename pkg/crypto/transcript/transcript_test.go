// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package transcript

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Of(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}

	return h.Sum(nil)
}

func TestCurrentAndPrevious(t *testing.T) {
	first := []byte{0x01, 0x00, 0x00, 0x01, 0xaa}
	second := []byte{0x02, 0x00, 0x00, 0x01, 0xbb}
	third := []byte{0x08, 0x00, 0x00, 0x01, 0xcc}

	s, err := NewWithAlgorithm(crypto.SHA256)
	require.NoError(t, err)
	assert.Equal(t, sha256Of(), s.Current())
	assert.Empty(t, s.Previous())

	s.Update(first)
	s.Update(second)
	assert.Equal(t, sha256Of(first, second), s.Current())
	assert.Equal(t, sha256Of(first), s.Previous())

	s.Update(third)
	assert.Equal(t, sha256Of(first, second, third), s.Current())
	assert.Equal(t, sha256Of(first, second), s.Previous())

	// snapshots are copies
	snapshot := s.Current()
	snapshot[0] ^= 0xff
	assert.Equal(t, sha256Of(first, second, third), s.Current())
}

func TestDeferredAlgorithm(t *testing.T) {
	clientHello := []byte{0x01, 0x00, 0x00, 0x02, 0x01, 0x02}
	serverHello := []byte{0x02, 0x00, 0x00, 0x02, 0x03, 0x04}

	s := New()
	s.Update(clientHello)
	s.Update(serverHello)
	assert.Nil(t, s.Current())

	require.NoError(t, s.SetAlgorithm(crypto.SHA256))
	assert.Equal(t, crypto.SHA256, s.Algorithm())
	assert.Equal(t, sha256Of(clientHello, serverHello), s.Current())
	assert.Equal(t, sha256Of(clientHello), s.Previous())

	// idempotent for the same algorithm, rejected for another one
	assert.NoError(t, s.SetAlgorithm(crypto.SHA256))
	assert.ErrorIs(t, s.SetAlgorithm(crypto.SHA384), errAlgorithmChanged)
}

func TestUnavailableAlgorithm(t *testing.T) {
	_, err := NewWithAlgorithm(crypto.Hash(0))
	assert.ErrorIs(t, err, errUnavailableHash)
}

func TestRecreateAfterHelloRetryRequest(t *testing.T) {
	clientHello1 := []byte{0x01, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03}
	helloRetryRequest := []byte{0x02, 0x00, 0x00, 0x01, 0x09}
	clientHello2 := []byte{0x01, 0x00, 0x00, 0x03, 0x04, 0x05, 0x06}

	prior := New()
	prior.Update(clientHello1)
	prior.Update(helloRetryRequest)

	s, err := RecreateAfterHelloRetryRequest(crypto.SHA384, prior)
	require.NoError(t, err)
	assert.Equal(t, crypto.SHA384, s.Algorithm())

	h := sha512.New384()
	h.Write(clientHello1)
	messageHash := append([]byte{0xfe, 0x00, 0x00, 48}, h.Sum(nil)...)

	s.Update(clientHello2)

	want := sha512.New384()
	want.Write(messageHash)
	want.Write(helloRetryRequest)
	wantPrevious := want.Sum(nil)
	want.Write(clientHello2)

	assert.Equal(t, want.Sum(nil), s.Current())
	assert.Equal(t, wantPrevious, s.Previous())
}

func TestRecreateRequiresExactlyTwoMessages(t *testing.T) {
	prior := New()
	prior.Update([]byte{0x01})
	_, err := RecreateAfterHelloRetryRequest(crypto.SHA256, prior)
	assert.ErrorIs(t, err, errUnexpectedRecreate)

	bound, err := NewWithAlgorithm(crypto.SHA256)
	require.NoError(t, err)
	bound.Update([]byte{0x01})
	bound.Update([]byte{0x02})
	_, err = RecreateAfterHelloRetryRequest(crypto.SHA256, bound)
	assert.ErrorIs(t, err, errUnexpectedRecreate)
}
