// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package keyschedule implements TLS 1.3's key derivation related functions
package keyschedule

import (
	"errors"
	"hash"
	"io"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/hkdf"
)

var (
	errMissingHashFunction = errors.New("HKDF expected a non-nil hash function")                   //nolint:err113
	errLabelTooSmall       = errors.New("HKDF-Expand-Label expected a label with length >= 7")     //nolint:err113
	errLabelTooBig         = errors.New("HKDF-Expand-Label expected a label with length <= 255")   //nolint:err113
	errContextTooBig       = errors.New("HKDF-Expand-Label expected a context with length <= 255") //nolint:err113
	errLengthTooBig        = errors.New("HKDF-Expand-Label expected a length <= 65535")            //nolint:err113
)

const (
	// TLS13prefix is prepended to every HKDF label, RFC 8446 section 7.1.
	TLS13prefix = "tls13 "
)

// Labels used by the TLS 1.3 key schedule.
const (
	LabelDerived                  = "derived"
	LabelClientHandshakeTraffic   = "c hs traffic"
	LabelServerHandshakeTraffic   = "s hs traffic"
	LabelClientApplicationTraffic = "c ap traffic"
	LabelServerApplicationTraffic = "s ap traffic"
	LabelExporterMaster           = "exp master"
	LabelResumptionMaster         = "res master"
	LabelFinished                 = "finished"
	LabelKey                      = "key"
	LabelIV                       = "iv"
	LabelTrafficUpdate            = "traffic upd"
)

// HkdfExtract implements RFC 5869 section 2.2. A nil salt is treated as
// HashLen zero bytes.
func HkdfExtract(hash func() hash.Hash, salt, ikm []byte) ([]byte, error) {
	if hash == nil {
		return nil, errMissingHashFunction
	}

	return hkdf.Extract(hash, ikm, salt), nil
}

// HkdfExpandLabel implements RFC 8446 section 7.1.
func HkdfExpandLabel(hash func() hash.Hash, secret []byte, label string, context []byte, length int) ([]byte, error) {
	fullLabel := []byte(TLS13prefix + label)

	switch {
	case hash == nil:
		return nil, errMissingHashFunction
	case len(fullLabel) < 7:
		return nil, errLabelTooSmall
	case len(fullLabel) > 255:
		return nil, errLabelTooBig
	case len(context) > 255:
		return nil, errContextTooBig
	case length < 0 || length > 0xffff:
		return nil, errLengthTooBig
	}

	var builder cryptobyte.Builder

	builder.AddUint16(uint16(length))

	builder.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(fullLabel)
	})

	builder.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(context)
	})

	hkdfLabel, err := builder.Bytes()
	if err != nil {
		return nil, err
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(hash, secret, hkdfLabel), out); err != nil {
		return nil, err
	}

	return out, nil
}

// DeriveSecret implements RFC 8446 section 7.1. transcriptHash is the
// already computed Transcript-Hash(Messages).
func DeriveSecret(hash func() hash.Hash, secret []byte, label string, transcriptHash []byte) ([]byte, error) {
	if hash == nil {
		return nil, errMissingHashFunction
	}

	return HkdfExpandLabel(hash, secret, label, transcriptHash, hash().Size())
}

// EmptyHash returns Transcript-Hash("") for the given hash, the context of
// the "derived" steps.
func EmptyHash(hash func() hash.Hash) []byte {
	return hash().Sum(nil)
}
