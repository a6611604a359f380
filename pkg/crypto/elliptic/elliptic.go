// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package elliptic provides the (EC)DHE groups used for TLS 1.3 key shares
package elliptic

import (
	"crypto/ecdh"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var (
	errInvalidNamedCurve = errors.New("invalid named curve")    //nolint:err113
	errInvalidPublicKey  = errors.New("invalid peer key share") //nolint:err113
)

// Keypair is a Curve with a Private/Public Keypair.
type Keypair struct {
	Curve      Curve
	PublicKey  []byte
	privateKey *ecdh.PrivateKey
}

// Curve is used to represent the IANA registered named groups for TLS
//
// https://www.iana.org/assignments/tls-parameters/tls-parameters.xml#tls-parameters-8
type Curve uint16

// Curve enums.
const (
	P256   Curve = 0x0017
	P384   Curve = 0x0018
	X25519 Curve = 0x001d
)

func (c Curve) String() string {
	switch c {
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case X25519:
		return "X25519"
	}

	return fmt.Sprintf("%#x", uint16(c))
}

// Curves returns all curves we implement.
func Curves() map[Curve]bool {
	return map[Curve]bool{
		X25519: true,
		P256:   true,
		P384:   true,
	}
}

// DefaultCurves returns the groups offered when none are configured, most
// preferred first.
func DefaultCurves() []Curve {
	return []Curve{X25519, P256, P384}
}

// GenerateKeypair generates a keypair for the given Curve. A nil reader uses
// crypto/rand.
func GenerateKeypair(curve Curve, reader io.Reader) (*Keypair, error) {
	ec, err := curve.toECDH()
	if err != nil {
		return nil, err
	}
	if reader == nil {
		reader = rand.Reader
	}

	sk, err := ec.GenerateKey(reader)
	if err != nil {
		return nil, err
	}

	return &Keypair{
		Curve:      curve,
		PublicKey:  sk.PublicKey().Bytes(), // NIST: SEC1 uncompressed (04||X||Y); X25519: 32 bytes
		privateKey: sk,
	}, nil
}

// SharedSecret performs the key exchange with the peer's key share.
func (k *Keypair) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	ec, err := k.Curve.toECDH()
	if err != nil {
		return nil, err
	}

	pub, err := ec.NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPublicKey, err) //nolint:errorlint
	}

	secret, err := k.privateKey.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPublicKey, err) //nolint:errorlint
	}

	return secret, nil
}

// IsInvalidPublicKey reports whether err was caused by a malformed peer share.
func IsInvalidPublicKey(err error) bool {
	return errors.Is(err, errInvalidPublicKey)
}

// toECDH returns the crypto/ecdh curve for our enum.
func (c Curve) toECDH() (ecdh.Curve, error) {
	switch c {
	case X25519:
		return ecdh.X25519(), nil
	case P256:
		return ecdh.P256(), nil
	case P384:
		return ecdh.P384(), nil
	default:
		return nil, errInvalidNamedCurve
	}
}
