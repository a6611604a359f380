// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"crypto/tls"

	"golang.org/x/crypto/cryptobyte"
)

// SignatureAlgorithms allows a Client/Server to indicate which signature
// schemes may be used in CertificateVerify messages.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.2.3
type SignatureAlgorithms struct {
	Schemes []tls.SignatureScheme
}

// TypeValue returns the extension TypeValue.
func (s SignatureAlgorithms) TypeValue() TypeValue {
	return SignatureAlgorithmsTypeValue
}

// Marshal encodes the extension.
func (s *SignatureAlgorithms) Marshal() ([]byte, error) {
	return marshalSignatureSchemes(s.TypeValue(), s.Schemes)
}

// Unmarshal populates the extension from encoded data.
func (s *SignatureAlgorithms) Unmarshal(data []byte) error {
	schemes, err := unmarshalSignatureSchemes(s.TypeValue(), data)
	s.Schemes = schemes

	return err
}

// Contains reports whether scheme is listed.
func (s *SignatureAlgorithms) Contains(scheme tls.SignatureScheme) bool {
	return containsScheme(s.Schemes, scheme)
}

// SignatureAlgorithmsCert allows a Client/Server to indicate which signature algorithms
// may be used in digital signatures for X.509 certificates.
// This is separate from signature_algorithms which applies to handshake signatures.
//
// https://tools.ietf.org/html/rfc8446#section-4.2.3
type SignatureAlgorithmsCert struct {
	Schemes []tls.SignatureScheme
}

// TypeValue returns the extension TypeValue.
func (s SignatureAlgorithmsCert) TypeValue() TypeValue {
	return SignatureAlgorithmsCertTypeValue
}

// Marshal encodes the extension.
func (s *SignatureAlgorithmsCert) Marshal() ([]byte, error) {
	return marshalSignatureSchemes(s.TypeValue(), s.Schemes)
}

// Unmarshal populates the extension from encoded data.
func (s *SignatureAlgorithmsCert) Unmarshal(data []byte) error {
	schemes, err := unmarshalSignatureSchemes(s.TypeValue(), data)
	s.Schemes = schemes

	return err
}

func containsScheme(schemes []tls.SignatureScheme, scheme tls.SignatureScheme) bool {
	for _, s := range schemes {
		if s == scheme {
			return true
		}
	}

	return false
}

func marshalSignatureSchemes(typeValue TypeValue, schemes []tls.SignatureScheme) ([]byte, error) {
	if len(schemes) == 0 {
		return nil, errInvalidSignatureAlgorithmsFormat
	}

	var builder cryptobyte.Builder
	builder.AddUint16(uint16(typeValue))
	builder.AddUint16LengthPrefixed(func(extBuilder *cryptobyte.Builder) {
		extBuilder.AddUint16LengthPrefixed(func(algBuilder *cryptobyte.Builder) {
			for _, v := range schemes {
				algBuilder.AddUint16(uint16(v))
			}
		})
	})

	return builder.Bytes()
}

// Schemes are kept verbatim, including ones we cannot verify, so that the
// peer's preference can be matched against our own list.
func unmarshalSignatureSchemes(typeValue TypeValue, data []byte) ([]tls.SignatureScheme, error) {
	body, err := readBody(data, typeValue)
	if err != nil {
		return nil, err
	}

	var algData cryptobyte.String
	if !body.ReadUint16LengthPrefixed(&algData) || !body.Empty() || algData.Empty() || len(algData)%2 != 0 {
		return nil, errInvalidSignatureAlgorithmsFormat
	}

	schemes := make([]tls.SignatureScheme, 0, len(algData)/2)
	for !algData.Empty() {
		var scheme uint16
		algData.ReadUint16(&scheme)
		schemes = append(schemes, tls.SignatureScheme(scheme))
	}

	return schemes, nil
}
