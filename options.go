// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"crypto/tls"
	"crypto/x509"
	"io"

	"github.com/pion/logging"
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
)

// ClientOption configures a TLS 1.3 client.
type ClientOption interface {
	applyClient(*clientConfig) error
}

// defensiveCopy copies a slice. This prevents the caller from mutating
// the config after construction. Returns empty slice if input is empty.
func defensiveCopy[T any](t ...T) []T {
	return append([]T{}, t...)
}

// clientConfig is the internal configuration structure built by options.
type clientConfig struct {
	serverName             string
	rootCAs                *x509.CertPool
	certificates           []tls.Certificate
	cipherSuites           []ciphersuite.ID
	groups                 []elliptic.Curve
	signatureSchemes       []tls.SignatureScheme
	nextProtos             []string
	allowTLS12             bool
	middleboxCompatibility bool
	rand                   io.Reader
	loggerFactory          logging.LoggerFactory
	callbacks              Callbacks
	tracer                 *Tracer
	newCipherState         CipherStateFactory
}

// applyDefaults applies default values to the config.
func (c *clientConfig) applyDefaults() {
	c.middleboxCompatibility = true
}

// toConfig converts the internal clientConfig to the exported Config struct.
// All slice fields are copied to ensure immutability.
func (c *clientConfig) toConfig() *Config {
	config := &Config{
		ServerName:             c.serverName,
		RootCAs:                c.rootCAs,
		AllowTLS12:             c.allowTLS12,
		MiddleboxCompatibility: c.middleboxCompatibility,
		Rand:                   c.rand,
		LoggerFactory:          c.loggerFactory,
		Callbacks:              c.callbacks,
		Tracer:                 c.tracer,
		NewCipherState:         c.newCipherState,
	}

	if len(c.certificates) > 0 {
		config.Certificates = defensiveCopy(c.certificates...)
	}
	if len(c.cipherSuites) > 0 {
		config.CipherSuites = defensiveCopy(c.cipherSuites...)
	}
	if len(c.groups) > 0 {
		config.Groups = defensiveCopy(c.groups...)
	}
	if len(c.signatureSchemes) > 0 {
		config.SignatureSchemes = defensiveCopy(c.signatureSchemes...)
	}
	if len(c.nextProtos) > 0 {
		config.NextProtos = defensiveCopy(c.nextProtos...)
	}

	return config
}

// buildClientConfig builds a Config for client from the provided options.
func buildClientConfig(opts ...ClientOption) (*Config, error) {
	cfg := &clientConfig{}
	cfg.applyDefaults()

	for _, opt := range opts {
		if err := opt.applyClient(cfg); err != nil {
			return nil, err
		}
	}

	return cfg.toConfig(), nil
}

// clientOption wraps an apply function for the client.
type clientOption func(*clientConfig) error

func (o clientOption) applyClient(c *clientConfig) error { return o(c) }

// WithServerName sets the server name sent in server_name and used for
// certificate verification. The name is converted to its ASCII form.
func WithServerName(name string) ClientOption {
	return clientOption(func(c *clientConfig) error {
		ascii, err := normalizedServerName(name)
		if err != nil {
			return err
		}
		c.serverName = ascii

		return nil
	})
}

// WithRootCAs sets the root certificate authorities used to verify the server.
func WithRootCAs(pool *x509.CertPool) ClientOption {
	return clientOption(func(c *clientConfig) error {
		c.rootCAs = pool

		return nil
	})
}

// WithCertificates sets the certificate chain presented when the server
// requests client authentication.
// For functional options, an explicitly empty slice is not allowed.
func WithCertificates(certs ...tls.Certificate) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if len(certs) == 0 {
			return errEmptyCertificates
		}
		c.certificates = defensiveCopy(certs...)

		return nil
	})
}

// WithCipherSuites sets the offered cipher suites in preference order.
// For functional options, an explicitly empty slice is not allowed.
func WithCipherSuites(suites ...ciphersuite.ID) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if len(suites) == 0 {
			return errEmptyCipherSuites
		}
		for _, id := range suites {
			if _, ok := ciphersuite.ByID(id); !ok {
				return &invalidCipherSuiteError{id: id}
			}
		}
		c.cipherSuites = defensiveCopy(suites...)

		return nil
	})
}

// WithGroups sets the key exchange groups in preference order.
// For functional options, an explicitly empty slice is not allowed.
func WithGroups(groups ...elliptic.Curve) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if len(groups) == 0 {
			return errEmptyGroups
		}
		c.groups = defensiveCopy(groups...)

		return nil
	})
}

// WithSignatureSchemes sets the schemes advertised in signature_algorithms.
// For functional options, an explicitly empty slice is not allowed.
func WithSignatureSchemes(schemes ...tls.SignatureScheme) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if len(schemes) == 0 {
			return errEmptySignatureSchemes
		}
		c.signatureSchemes = defensiveCopy(schemes...)

		return nil
	})
}

// WithNextProtos sets the ALPN protocols offered to the server.
// For functional options, an explicitly empty slice is not allowed.
func WithNextProtos(protos ...string) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if len(protos) == 0 {
			return errEmptyNextProtos
		}
		c.nextProtos = defensiveCopy(protos...)

		return nil
	})
}

// WithAllowTLS12 offers TLS 1.2 and allows handing the connection to a
// legacy implementation when the server selects it.
func WithAllowTLS12(allow bool) ClientOption {
	return clientOption(func(c *clientConfig) error {
		c.allowTLS12 = allow

		return nil
	})
}

// WithMiddleboxCompatibility toggles middlebox compatibility mode. It is
// enabled by default.
func WithMiddleboxCompatibility(enabled bool) ClientOption {
	return clientOption(func(c *clientConfig) error {
		c.middleboxCompatibility = enabled

		return nil
	})
}

// WithRand sets the source of randomness.
// Returns an error if the reader is nil.
func WithRand(reader io.Reader) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if reader == nil {
			return errNilRand
		}
		c.rand = reader

		return nil
	})
}

// WithLoggerFactory sets the logger factory for creating loggers.
// Returns an error if the factory is nil.
func WithLoggerFactory(factory logging.LoggerFactory) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if factory == nil {
			return errNilLoggerFactory
		}
		c.loggerFactory = factory

		return nil
	})
}

// WithCallbacks sets the application callbacks.
// Returns an error if callbacks is nil.
func WithCallbacks(callbacks Callbacks) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if callbacks == nil {
			return errNilCallbacks
		}
		c.callbacks = callbacks

		return nil
	})
}

// WithTracer sets the connection tracer.
func WithTracer(tracer *Tracer) ClientOption {
	return clientOption(func(c *clientConfig) error {
		c.tracer = tracer

		return nil
	})
}

// WithCipherStateFactory replaces the cipher state implementation.
// Returns an error if the factory is nil.
func WithCipherStateFactory(factory CipherStateFactory) ClientOption {
	return clientOption(func(c *clientConfig) error {
		if factory == nil {
			return errNilCipherStateFactory
		}
		c.newCipherState = factory

		return nil
	})
}
