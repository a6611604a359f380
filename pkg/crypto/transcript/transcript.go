// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package transcript implements the TLS 1.3 running transcript hash
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.1
package transcript

import (
	"crypto"
	"errors"
	"fmt"
	"hash"

	_ "crypto/sha256" // register SHA-256 for crypto.Hash
	_ "crypto/sha512" // register SHA-384 for crypto.Hash

	"github.com/pion/tls13/pkg/protocol"
)

// messageHashType is the synthetic handshake type that replaces the first
// ClientHello after a HelloRetryRequest.
const messageHashType = 254

var (
	//nolint:err113
	errAlgorithmChanged = &protocol.InternalError{Err: errors.New("transcript hash algorithm cannot be changed")}
	//nolint:err113
	errUnavailableHash = &protocol.InternalError{Err: errors.New("transcript hash algorithm is not available")}
	//nolint:err113
	errUnexpectedRecreate = &protocol.InternalError{
		Err: errors.New("transcript can only be recreated from exactly ClientHello and HelloRetryRequest"),
	}
)

// State is a running digest over every handshake message in the order they
// were sent or received. Until the hash algorithm is known messages are
// kept verbatim and replayed once SetAlgorithm is called.
//
// Current and Previous are snapshots: Current includes the most recently
// processed message, Previous excludes it.
type State struct {
	algorithm   crypto.Hash
	h           hash.Hash
	unprocessed [][]byte
	current     []byte
	previous    []byte
}

// New creates a transcript that does not know its hash algorithm yet.
func New() *State {
	return &State{}
}

// NewWithAlgorithm creates a transcript bound to algorithm.
func NewWithAlgorithm(algorithm crypto.Hash) (*State, error) {
	s := New()
	if err := s.SetAlgorithm(algorithm); err != nil {
		return nil, err
	}

	return s, nil
}

// RecreateAfterHelloRetryRequest builds the transcript that follows a
// HelloRetryRequest: the first ClientHello is replaced by a message_hash
// message carrying its digest, then the HelloRetryRequest is appended
// verbatim. prior must have seen exactly those two messages.
func RecreateAfterHelloRetryRequest(algorithm crypto.Hash, prior *State) (*State, error) {
	if prior.h != nil || len(prior.unprocessed) != 2 {
		return nil, errUnexpectedRecreate
	}

	s, err := NewWithAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	clientHello := prior.unprocessed[0]
	helloRetryRequest := prior.unprocessed[1]

	digest := algorithm.New()
	digest.Write(clientHello)

	// RFC 8446 4.4.1
	//    Transcript-Hash(ClientHello1, HelloRetryRequest, ... Mn) =
	//        Hash(message_hash ||        /* Handshake type */
	//             00 00 Hash.length  ||  /* Handshake message length (bytes) */
	//             Hash(ClientHello1) ||  /* Hash of ClientHello1 */
	//             HelloRetryRequest  || ... || Mn)
	messageHash := make([]byte, 0, 4+algorithm.Size())
	messageHash = append(messageHash, messageHashType, 0x00, 0x00, byte(algorithm.Size()))
	messageHash = digest.Sum(messageHash)

	s.Update(messageHash)
	s.Update(helloRetryRequest)

	return s, nil
}

// SetAlgorithm binds the digest function. Setting the same algorithm again
// is a no-op, switching to a different one is an error.
func (s *State) SetAlgorithm(algorithm crypto.Hash) error {
	if s.h != nil {
		if s.algorithm != algorithm {
			return errAlgorithmChanged
		}

		return nil
	}
	if !algorithm.Available() {
		return fmt.Errorf("%w: %v", errUnavailableHash, algorithm)
	}

	s.algorithm = algorithm
	s.h = algorithm.New()
	s.current = s.h.Sum(nil)

	unprocessed := s.unprocessed
	s.unprocessed = nil
	for _, msg := range unprocessed {
		s.Update(msg)
	}

	return nil
}

// Algorithm returns the bound hash, or zero before SetAlgorithm.
func (s *State) Algorithm() crypto.Hash {
	return s.algorithm
}

// Update appends the serialized handshake message (header included).
func (s *State) Update(msg []byte) {
	if s.h == nil {
		s.unprocessed = append(s.unprocessed, append([]byte{}, msg...))

		return
	}

	s.previous = s.current
	s.h.Write(msg)
	s.current = s.h.Sum(nil)
}

// Current returns the digest including the last processed message. It is
// nil until the algorithm is known.
func (s *State) Current() []byte {
	return clone(s.current)
}

// Previous returns the digest excluding the last processed message. It is
// nil until at least one message was hashed after the algorithm was bound.
func (s *State) Previous() []byte {
	return clone(s.previous)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	return append([]byte{}, b...)
}
