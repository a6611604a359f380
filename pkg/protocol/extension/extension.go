// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package extension implements the extension values carried by TLS 1.3
// handshake messages
package extension

import (
	"golang.org/x/crypto/cryptobyte"
)

// TypeValue is the 2 byte value for a TLS Extension as registered in the IANA
//
// https://www.iana.org/assignments/tls-extensiontype-values/tls-extensiontype-values.xhtml
type TypeValue uint16

// TypeValue constants.
const (
	ServerNameTypeValue              TypeValue = 0
	SupportedGroupsTypeValue         TypeValue = 10
	SignatureAlgorithmsTypeValue     TypeValue = 13
	ALPNTypeValue                    TypeValue = 16
	PreSharedKeyTypeValue            TypeValue = 41
	EarlyDataTypeValue               TypeValue = 42
	SupportedVersionsTypeValue       TypeValue = 43
	CookieTypeValue                  TypeValue = 44
	PskKeyExchangeModesTypeValue     TypeValue = 45
	SignatureAlgorithmsCertTypeValue TypeValue = 50
	KeyShareTypeValue                TypeValue = 51
)

// MessageContext identifies the handshake message an extension block
// belongs to. Some extensions are encoded differently per message.
type MessageContext uint8

// MessageContext enums.
const (
	ContextClientHello MessageContext = iota + 1
	ContextServerHello
	ContextHelloRetryRequest
	ContextEncryptedExtensions
	ContextCertificate
	ContextCertificateRequest
)

func (m MessageContext) String() string {
	switch m {
	case ContextClientHello:
		return "ClientHello"
	case ContextServerHello:
		return "ServerHello"
	case ContextHelloRetryRequest:
		return "HelloRetryRequest"
	case ContextEncryptedExtensions:
		return "EncryptedExtensions"
	case ContextCertificate:
		return "Certificate"
	case ContextCertificateRequest:
		return "CertificateRequest"
	default:
		return "unknown"
	}
}

// Extension represents a single TLS extension.
type Extension interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
	TypeValue() TypeValue
}

// contextual is implemented by extensions whose body depends on the
// message carrying them.
type contextual interface {
	setContext(ctx MessageContext)
}

func newExtension(typ TypeValue) Extension {
	switch typ {
	case ServerNameTypeValue:
		return &ServerName{}
	case SupportedGroupsTypeValue:
		return &SupportedGroups{}
	case SignatureAlgorithmsTypeValue:
		return &SignatureAlgorithms{}
	case SignatureAlgorithmsCertTypeValue:
		return &SignatureAlgorithmsCert{}
	case ALPNTypeValue:
		return &ALPN{}
	case SupportedVersionsTypeValue:
		return &SupportedVersions{}
	case CookieTypeValue:
		return &Cookie{}
	case KeyShareTypeValue:
		return &KeyShare{}
	default:
		return &Unknown{Type: typ}
	}
}

// Unmarshal parses an extension block (including its 2 byte length) of a
// message of the given context. Extensions this package does not model are
// kept as *Unknown so that no extension type is silently dropped.
func Unmarshal(buf []byte, ctx MessageContext) (List, error) {
	val := cryptobyte.String(buf)
	if val.Empty() {
		return List{}, nil
	}

	var block cryptobyte.String
	if !val.ReadUint16LengthPrefixed(&block) {
		return nil, errBufferTooSmall
	}
	if !val.Empty() {
		return nil, errLengthMismatch
	}

	extensions := List{}
	seen := map[TypeValue]struct{}{}
	for !block.Empty() {
		raw := block
		var typ uint16
		var body cryptobyte.String
		if !block.ReadUint16(&typ) || !block.ReadUint16LengthPrefixed(&body) {
			return nil, errBufferTooSmall
		}
		raw = raw[:4+len(body)]

		// RFC 8446 4.2
		//    There MUST NOT be more than one extension of the same type in a
		//    given extension block.
		if _, ok := seen[TypeValue(typ)]; ok {
			return nil, errDuplicateExtension
		}
		seen[TypeValue(typ)] = struct{}{}

		e := newExtension(TypeValue(typ))
		if c, ok := e.(contextual); ok {
			c.setContext(ctx)
		}
		if err := e.Unmarshal(raw); err != nil {
			return nil, err
		}
		extensions = append(extensions, e)
	}

	return extensions, nil
}

// Marshal many extensions at once.
func Marshal(e []Extension) ([]byte, error) {
	var b cryptobyte.Builder
	var failure error
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		for _, ext := range e {
			raw, err := ext.Marshal()
			if err != nil {
				failure = err

				return
			}
			b.AddBytes(raw)
		}
	})
	if failure != nil {
		return nil, failure
	}

	return b.Bytes()
}

// readBody checks the extension header and returns the extension_data.
func readBody(data []byte, typ TypeValue) (cryptobyte.String, error) {
	val := cryptobyte.String(data)
	var ext uint16
	if !val.ReadUint16(&ext) || TypeValue(ext) != typ {
		return nil, errInvalidExtensionType
	}

	var body cryptobyte.String
	if !val.ReadUint16LengthPrefixed(&body) || !val.Empty() {
		return nil, errBufferTooSmall
	}

	return body, nil
}
