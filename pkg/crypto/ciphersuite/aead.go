// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ciphersuite

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"math"

	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
)

var (
	//nolint:err113
	errInvalidKeyLength = &protocol.InternalError{Err: errors.New("invalid key length")}
	//nolint:err113
	errInvalidIVLength = &protocol.InternalError{Err: errors.New("invalid IV length")}
	//nolint:err113
	errSequenceNumberOverflow = &protocol.InternalError{Err: errors.New("sequence number overflow")}
	//nolint:err113
	errDecryptRecord = errors.New("failed to decrypt record")
)

// RecordAEAD protects the records of one direction of a connection with a
// single set of traffic keys.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.3
type RecordAEAD struct {
	aead cipher.AEAD
	iv   [IVLength]byte
	seq  uint64
}

// NewRecordAEAD creates the record protection for key and iv.
func NewRecordAEAD(suite *Suite, key, iv []byte) (*RecordAEAD, error) {
	if len(iv) != IVLength {
		return nil, errInvalidIVLength
	}

	aead, err := suite.NewAEAD(key)
	if err != nil {
		return nil, err
	}

	r := &RecordAEAD{aead: aead}
	copy(r.iv[:], iv)

	return r, nil
}

// SequenceNumber returns the sequence number of the next record.
func (r *RecordAEAD) SequenceNumber() uint64 {
	return r.seq
}

// Overhead returns the ciphertext expansion of a record.
func (r *RecordAEAD) Overhead() int {
	return r.aead.Overhead()
}

// The per-record nonce is the padded sequence number XORed with the
// static IV.
func (r *RecordAEAD) nonce() []byte {
	nonce := r.iv
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], r.seq)
	for i := range seq {
		nonce[IVLength-8+i] ^= seq[i]
	}

	return nonce[:]
}

// Seal encrypts plaintext using the record header as additional data.
func (r *RecordAEAD) Seal(header, plaintext []byte) ([]byte, error) {
	if r.seq == math.MaxUint64 {
		return nil, errSequenceNumberOverflow
	}

	out := r.aead.Seal(nil, r.nonce(), plaintext, header)
	r.seq++

	return out, nil
}

// Open decrypts a record and returns the sequence number it was sealed with.
func (r *RecordAEAD) Open(header, ciphertext []byte) (uint64, []byte, error) {
	if r.seq == math.MaxUint64 {
		return 0, nil, errSequenceNumberOverflow
	}

	plaintext, err := r.aead.Open(nil, r.nonce(), ciphertext, header)
	if err != nil {
		// RFC 8446 5.2
		//    If the decryption fails, the receiver MUST terminate the connection
		//    with a "bad_record_mac" alert.
		return 0, nil, &alert.Error{Description: alert.BadRecordMac, Err: errDecryptRecord}
	}

	seq := r.seq
	r.seq++

	return seq, plaintext, nil
}
