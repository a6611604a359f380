// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package signaturehash provides the TLS 1.3 signature schemes used by
// CertificateVerify
package signaturehash

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"github.com/pion/tls13/pkg/protocol"
)

var (
	errNoAvailableSignatureSchemes = errors.New("connection can not be created, no SignatureScheme satisfy this Config") //nolint:err113
	errInvalidSignatureScheme      = errors.New("invalid signature scheme")                                              //nolint:err113
	errKeySchemeMismatch           = errors.New("key does not match signature scheme")                                   //nolint:err113
	errInvalidPrivateKey           = errors.New("invalid private key type")                                              //nolint:err113
	errInvalidSignature            = errors.New("signature verification failed")                                         //nolint:err113
)

// Schemes returns the signature schemes usable in TLS 1.3 CertificateVerify.
//
// IMPORTANT: order in this slice determines priority used by
// SelectSignatureScheme.
func Schemes() []tls.SignatureScheme {
	return []tls.SignatureScheme{
		tls.ECDSAWithP256AndSHA256,
		tls.ECDSAWithP384AndSHA384,
		tls.ECDSAWithP521AndSHA512,
		tls.Ed25519,
		tls.PSSWithSHA256,
		tls.PSSWithSHA384,
		tls.PSSWithSHA512,
	}
}

// IsSupported reports whether scheme can be used to sign or verify a TLS 1.3
// CertificateVerify.
func IsSupported(scheme tls.SignatureScheme) bool {
	for _, s := range Schemes() {
		if s == scheme {
			return true
		}
	}

	return false
}

// ParseSignatureSchemes validates a configured scheme list. It returns the
// default list if no SignatureScheme is passed.
func ParseSignatureSchemes(sigs []tls.SignatureScheme) ([]tls.SignatureScheme, error) {
	if len(sigs) == 0 {
		return Schemes(), nil
	}

	out := make([]tls.SignatureScheme, 0, len(sigs))
	for _, s := range sigs {
		if !IsSupported(s) {
			return nil, fmt.Errorf("SignatureScheme %04x: %w", uint16(s), errInvalidSignatureScheme)
		}
		out = append(out, s)
	}

	return out, nil
}

// SelectSignatureScheme returns our most preferred scheme that the peer
// accepts and that the private key can produce.
func SelectSignatureScheme(peer []tls.SignatureScheme, privateKey crypto.PrivateKey) (tls.SignatureScheme, error) {
	signer, ok := privateKey.(crypto.Signer)
	if !ok {
		return 0, errInvalidPrivateKey
	}

	for _, ours := range Schemes() {
		for _, theirs := range peer {
			if ours == theirs && isCompatible(ours, signer.Public()) {
				return ours, nil
			}
		}
	}

	return 0, errNoAvailableSignatureSchemes
}

func isCompatible(scheme tls.SignatureScheme, pub crypto.PublicKey) bool {
	switch key := pub.(type) {
	case ed25519.PublicKey:
		return scheme == tls.Ed25519
	case *ecdsa.PublicKey:
		return ecdsaCurve(scheme) == key.Curve
	case *rsa.PublicKey:
		return scheme == tls.PSSWithSHA256 || scheme == tls.PSSWithSHA384 || scheme == tls.PSSWithSHA512
	default:
		return false
	}
}

func ecdsaCurve(scheme tls.SignatureScheme) elliptic.Curve {
	switch scheme {
	case tls.ECDSAWithP256AndSHA256:
		return elliptic.P256()
	case tls.ECDSAWithP384AndSHA384:
		return elliptic.P384()
	case tls.ECDSAWithP521AndSHA512:
		return elliptic.P521()
	default:
		return nil
	}
}

// HashFunc returns the digest used by scheme. Ed25519 signs the message
// directly and reports crypto.Hash(0).
func HashFunc(scheme tls.SignatureScheme) (crypto.Hash, error) {
	switch scheme {
	case tls.ECDSAWithP256AndSHA256, tls.PSSWithSHA256:
		return crypto.SHA256, nil
	case tls.ECDSAWithP384AndSHA384, tls.PSSWithSHA384:
		return crypto.SHA384, nil
	case tls.ECDSAWithP521AndSHA512, tls.PSSWithSHA512:
		return crypto.SHA512, nil
	case tls.Ed25519:
		return 0, nil
	default:
		return 0, errInvalidSignatureScheme
	}
}

// Context strings of the CertificateVerify signature input.
const (
	serverContext = "TLS 1.3, server CertificateVerify"
	clientContext = "TLS 1.3, client CertificateVerify"
)

// CertificateVerifyContent builds the signed content of a CertificateVerify
// sent by side over transcriptHash.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.3
func CertificateVerifyContent(side protocol.Side, transcriptHash []byte) []byte {
	context := serverContext
	if side == protocol.SideClient {
		context = clientContext
	}

	var b bytes.Buffer
	b.Write(bytes.Repeat([]byte{0x20}, 64))
	b.WriteString(context)
	b.WriteByte(0x00)
	b.Write(transcriptHash)

	return b.Bytes()
}

// Sign signs content with privateKey according to scheme.
func Sign(rand io.Reader, privateKey crypto.PrivateKey, scheme tls.SignatureScheme, content []byte) ([]byte, error) {
	signer, ok := privateKey.(crypto.Signer)
	if !ok {
		return nil, errInvalidPrivateKey
	}
	if !isCompatible(scheme, signer.Public()) {
		return nil, errKeySchemeMismatch
	}

	hashFunc, err := HashFunc(scheme)
	if err != nil {
		return nil, err
	}

	digest := content
	var opts crypto.SignerOpts = hashFunc
	if hashFunc != 0 {
		h := hashFunc.New()
		h.Write(content)
		digest = h.Sum(nil)
	}
	if _, isRSA := signer.Public().(*rsa.PublicKey); isRSA {
		opts = &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: hashFunc}
	}

	return signer.Sign(rand, digest, opts)
}

// Verify checks signature over content with the peer's public key.
func Verify(publicKey crypto.PublicKey, scheme tls.SignatureScheme, content, signature []byte) error {
	if !isCompatible(scheme, publicKey) {
		return errKeySchemeMismatch
	}

	hashFunc, err := HashFunc(scheme)
	if err != nil {
		return err
	}

	switch key := publicKey.(type) {
	case ed25519.PublicKey:
		if !ed25519.Verify(key, content, signature) {
			return errInvalidSignature
		}

		return nil
	case *ecdsa.PublicKey:
		h := hashFunc.New()
		h.Write(content)
		if !ecdsa.VerifyASN1(key, h.Sum(nil), signature) {
			return errInvalidSignature
		}

		return nil
	case *rsa.PublicKey:
		h := hashFunc.New()
		h.Write(content)
		opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash}
		if err := rsa.VerifyPSS(key, hashFunc, h.Sum(nil), signature, opts); err != nil {
			return fmt.Errorf("%w: %v", errInvalidSignature, err) //nolint:errorlint
		}

		return nil
	}

	return errInvalidPrivateKey
}
