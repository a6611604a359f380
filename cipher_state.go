// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"github.com/pion/tls13/pkg/protocol/recordlayer"
)

// CipherState owns the traffic keys of a connection. It is created once the
// ServerHello was processed and advanced at both Finished messages and at
// every Key Update. pkg/crypto/cipherstate provides the default
// implementation.
//
//go:generate mockgen -source=cipher_state.go -destination=mock_cipher_state_test.go -package=tls13
type CipherState interface {
	recordlayer.Protector

	// FinishedMAC computes our verify_data over transcriptHash.
	FinishedMAC(transcriptHash []byte) ([]byte, error)
	// VerifyPeerFinishedMAC checks the peer's verify_data.
	VerifyPeerFinishedMAC(transcriptHash, mac []byte) bool

	// AdvanceWithServerFinished derives the application traffic secrets
	// from the transcript up to and including the server Finished.
	AdvanceWithServerFinished(transcriptHash []byte) error
	// AdvanceWithClientFinished switches the client to application traffic
	// keys using the transcript up to and including the client Finished.
	AdvanceWithClientFinished(transcriptHash []byte) error

	UpdateReadKeys() error
	UpdateWriteKeys() error
}
