// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ciphersuite provides the TLS 1.3 cipher suites and the AEAD
// record protection built on them
package ciphersuite

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	_ "crypto/sha256" // register SHA-256 for crypto.Hash
	_ "crypto/sha512" // register SHA-384 for crypto.Hash

	"golang.org/x/crypto/chacha20poly1305"
)

// ID is the 2 byte cipher suite identifier
//
// https://datatracker.ietf.org/doc/html/rfc8446#appendix-B.4
type ID uint16

// Supported TLS 1.3 cipher suites.
const (
	TLS_AES_128_GCM_SHA256       ID = 0x1301 //nolint:revive,stylecheck
	TLS_AES_256_GCM_SHA384       ID = 0x1302 //nolint:revive,stylecheck
	TLS_CHACHA20_POLY1305_SHA256 ID = 0x1303 //nolint:revive,stylecheck
)

func (i ID) String() string {
	if s, ok := ByID(i); ok {
		return s.Name
	}

	return fmt.Sprintf("unknown(%#04x)", uint16(i))
}

// Suite bundles the AEAD and the hash (PRF) of a TLS 1.3 cipher suite.
type Suite struct {
	ID        ID
	Name      string
	Hash      crypto.Hash
	KeyLength int
	newAEAD   func(key []byte) (cipher.AEAD, error)
}

// IVLength is the per-record nonce length of every TLS 1.3 AEAD.
const IVLength = 12

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

var suites = []*Suite{ //nolint:gochecknoglobals
	{
		ID:        TLS_AES_128_GCM_SHA256,
		Name:      "TLS_AES_128_GCM_SHA256",
		Hash:      crypto.SHA256,
		KeyLength: 16,
		newAEAD:   newAESGCM,
	},
	{
		ID:        TLS_AES_256_GCM_SHA384,
		Name:      "TLS_AES_256_GCM_SHA384",
		Hash:      crypto.SHA384,
		KeyLength: 32,
		newAEAD:   newAESGCM,
	},
	{
		ID:        TLS_CHACHA20_POLY1305_SHA256,
		Name:      "TLS_CHACHA20_POLY1305_SHA256",
		Hash:      crypto.SHA256,
		KeyLength: chacha20poly1305.KeySize,
		newAEAD:   chacha20poly1305.New,
	},
}

// ByID looks up a supported cipher suite.
func ByID(id ID) (*Suite, bool) {
	for _, s := range suites {
		if s.ID == id {
			return s, true
		}
	}

	return nil, false
}

// IDs returns all supported cipher suites in the default preference order.
func IDs() []ID {
	out := make([]ID, 0, len(suites))
	for _, s := range suites {
		out = append(out, s.ID)
	}

	return out
}

// NewAEAD creates the suite's AEAD keyed with key.
func (s *Suite) NewAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != s.KeyLength {
		return nil, fmt.Errorf("%w: %d bytes for %s", errInvalidKeyLength, len(key), s.Name)
	}

	return s.newAEAD(key)
}
