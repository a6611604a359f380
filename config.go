// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"

	"github.com/pion/logging"
	"github.com/pion/tls13/pkg/crypto/cipherstate"
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/pion/tls13/pkg/crypto/signaturehash"
	"github.com/pion/tls13/pkg/protocol"
	"golang.org/x/net/idna"
)

// CipherStateFactory creates the cipher state once the ServerHello fixed the
// cipher suite and the key exchange produced a shared secret.
type CipherStateFactory func(
	side protocol.Side, suite ciphersuite.ID, sharedSecret, transcriptHash []byte,
) (CipherState, error)

// Config is used to configure a TLS 1.3 client.
// After a Config is passed to a client function it must not be modified.
type Config struct {
	// ServerName is sent in the server_name extension and used to verify
	// the server certificate. Internationalized names are converted to
	// their ASCII form. An IP address is only used for verification.
	ServerName string

	// RootCAs defines the set of root certificate authorities used to
	// verify the server. A nil pool uses the host's root CA set.
	RootCAs *x509.CertPool

	// Certificates is presented when the server sends a CertificateRequest.
	// Only the first entry is used.
	Certificates []tls.Certificate

	// CipherSuites in preference order. Defaults to every supported suite.
	CipherSuites []ciphersuite.ID

	// Groups lists the key exchange groups in preference order. A key share
	// is only sent for the first one; the server may ask for another with a
	// HelloRetryRequest.
	Groups []elliptic.Curve

	// SignatureSchemes advertised in signature_algorithms.
	SignatureSchemes []tls.SignatureScheme

	// NextProtos is the list of ALPN protocols offered to the server.
	NextProtos []string

	// AllowTLS12 offers TLS 1.2 in supported_versions and arms the handoff
	// to a legacy implementation when the server negotiates it.
	AllowTLS12 bool

	// MiddleboxCompatibility sends a non-empty legacy_session_id and dummy
	// change_cipher_spec records (RFC 8446 appendix D.4).
	MiddleboxCompatibility bool

	// Rand provides randomness for hello randoms, key shares and
	// signatures. Defaults to crypto/rand.
	Rand io.Reader

	LoggerFactory logging.LoggerFactory

	// Callbacks lets the application inspect extensions and verify the
	// server's certificate chain. Defaults to DefaultCallbacks.
	Callbacks Callbacks

	// Tracer receives connection events. Optional.
	Tracer *Tracer

	// NewCipherState overrides the cipher state implementation.
	NewCipherState CipherStateFactory
}

func newDefaultCipherState(
	side protocol.Side, suite ciphersuite.ID, sharedSecret, transcriptHash []byte,
) (CipherState, error) {
	state, err := cipherstate.New(side, suite, sharedSecret, transcriptHash)
	if err != nil {
		return nil, err
	}

	return state, nil
}

func validateConfig(config *Config) error {
	if config == nil {
		return errNoConfigProvided
	}

	for _, id := range config.CipherSuites {
		if _, ok := ciphersuite.ByID(id); !ok {
			return &invalidCipherSuiteError{id: id}
		}
	}

	supported := elliptic.Curves()
	for _, group := range config.Groups {
		if !supported[group] {
			return &invalidGroupError{group: group}
		}
	}

	if len(config.SignatureSchemes) > 0 {
		if _, err := signaturehash.ParseSignatureSchemes(config.SignatureSchemes); err != nil {
			return err
		}
	}

	for _, proto := range config.NextProtos {
		if len(proto) == 0 || len(proto) > 255 {
			return errInvalidNextProto
		}
	}

	for _, cert := range config.Certificates {
		if len(cert.Certificate) == 0 || cert.PrivateKey == nil {
			return errInvalidCertificate
		}
	}

	return nil
}

// normalizedServerName returns the ASCII form of name used on the wire and
// for certificate verification.
func normalizedServerName(name string) (string, error) {
	if name == "" || net.ParseIP(name) != nil {
		return name, nil
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", errInvalidServerName
	}

	return ascii, nil
}

// withDefaults returns a copy of config with every unset field defaulted.
func (c *Config) withDefaults() (*Config, error) {
	out := *c

	serverName, err := normalizedServerName(c.ServerName)
	if err != nil {
		return nil, err
	}
	out.ServerName = serverName

	if len(out.CipherSuites) == 0 {
		out.CipherSuites = ciphersuite.IDs()
	}
	if len(out.Groups) == 0 {
		out.Groups = elliptic.DefaultCurves()
	}
	if out.SignatureSchemes, err = signaturehash.ParseSignatureSchemes(out.SignatureSchemes); err != nil {
		return nil, err
	}
	if out.Rand == nil {
		out.Rand = rand.Reader
	}
	if out.LoggerFactory == nil {
		out.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	if out.Callbacks == nil {
		out.Callbacks = &DefaultCallbacks{}
	}
	if out.NewCipherState == nil {
		out.NewCipherState = newDefaultCipherState
	}

	return &out, nil
}
