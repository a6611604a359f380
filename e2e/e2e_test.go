// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build (interop || openssl) && !js
// +build interop openssl
// +build !js

package e2e

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"testing"
	"time"

	"github.com/pion/tls13"
	"github.com/pion/tls13/metrics"
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/pion/tls13/pkg/crypto/selfsign"
	"github.com/pion/transport/v3/test"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMessage   = "Hello World"
	testTimeLimit = 5 * time.Second
)

// serverFunc starts a TLS 1.3 echo server presenting cert and returns its
// address together with a function that waits for it to exit.
type serverFunc func(t *testing.T, cert tls.Certificate, config *tls.Config) (string, func() error)

// clientPion dials address, sends testMessage and expects it echoed back.
func clientPion(t *testing.T, address string, cert tls.Certificate, opts ...tls13.ClientOption) *tls13.Conn {
	t.Helper()

	roots := x509.NewCertPool()
	roots.AddCert(cert.Leaf)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeLimit)
	defer cancel()

	conn, err := tls13.Dial(ctx, "tcp", address, append([]tls13.ClientOption{
		tls13.WithServerName("localhost"),
		tls13.WithRootCAs(roots),
		tls13.WithTracer(metrics.NewTracerWithRegisterer(prometheus.NewRegistry())),
	}, opts...)...)
	require.NoError(t, err)

	_, err = conn.Write([]byte(testMessage))
	require.NoError(t, err)

	buf := make([]byte, len(testMessage))
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, testMessage, string(buf))

	return conn
}

// serverGo runs a crypto/tls server that echoes the first message.
func serverGo(t *testing.T, cert tls.Certificate, config *tls.Config) (string, func() error) {
	t.Helper()

	config = config.Clone()
	config.Certificates = []tls.Certificate{cert}
	config.MinVersion = tls.VersionTLS13

	listener, err := tls.Listen("tcp", "127.0.0.1:0", config)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		defer func() {
			_ = listener.Close()
		}()

		conn, err := listener.Accept()
		if err != nil {
			done <- err

			return
		}
		defer func() {
			_ = conn.Close()
		}()

		buf := make([]byte, len(testMessage))
		if _, err := io.ReadFull(conn, buf); err != nil {
			done <- err

			return
		}
		_, err = conn.Write(buf)
		done <- err
	}()

	return listener.Addr().String(), func() error {
		select {
		case err := <-done:
			return err
		case <-time.After(testTimeLimit):
			return context.DeadlineExceeded
		}
	}
}

func testE2E(t *testing.T, server serverFunc, config *tls.Config, opts ...tls13.ClientOption) *tls13.Conn {
	t.Helper()

	cert, err := selfsign.GenerateSelfSignedWithDNS("localhost", "localhost")
	require.NoError(t, err)

	address, wait := server(t, cert, config)
	conn := clientPion(t, address, cert, opts...)
	require.NoError(t, conn.Close())
	require.NoError(t, wait())

	return conn
}

func TestGoE2ECipherSuites(t *testing.T) {
	lim := test.TimeOut(time.Second * 20)
	defer lim.Stop()

	for _, id := range ciphersuite.IDs() {
		id := id
		t.Run(id.String(), func(t *testing.T) {
			conn := testE2E(t, serverGo, &tls.Config{}, tls13.WithCipherSuites(id))
			suite, ok := conn.CipherSuite()
			assert.True(t, ok)
			assert.Equal(t, id, suite)
		})
	}
}

func TestGoE2EGroups(t *testing.T) {
	lim := test.TimeOut(time.Second * 20)
	defer lim.Stop()

	for _, group := range elliptic.DefaultCurves() {
		group := group
		t.Run(group.String(), func(t *testing.T) {
			testE2E(t, serverGo, &tls.Config{}, tls13.WithGroups(group))
		})
	}
}

func TestGoE2EHelloRetryRequest(t *testing.T) {
	lim := test.TimeOut(time.Second * 20)
	defer lim.Stop()

	// The client only sends an X25519 share, the server insists on P-256.
	testE2E(t, serverGo,
		&tls.Config{CurvePreferences: []tls.CurveID{tls.CurveP256}},
		tls13.WithGroups(elliptic.X25519, elliptic.P256))
}

func TestGoE2EALPN(t *testing.T) {
	lim := test.TimeOut(time.Second * 20)
	defer lim.Stop()

	conn := testE2E(t, serverGo, &tls.Config{NextProtos: []string{"h2"}}, tls13.WithNextProtos("h2", "http/1.1"))
	assert.Equal(t, "h2", conn.NegotiatedProtocol())
}

func TestGoE2EClientCertificate(t *testing.T) {
	lim := test.TimeOut(time.Second * 20)
	defer lim.Stop()

	clientCert, err := selfsign.GenerateSelfSigned()
	require.NoError(t, err)
	clientCAs := x509.NewCertPool()
	clientCAs.AddCert(clientCert.Leaf)

	testE2E(t, serverGo,
		&tls.Config{ClientAuth: tls.RequireAndVerifyClientCert, ClientCAs: clientCAs},
		tls13.WithCertificates(clientCert))
}

func TestGoE2EUnknownCA(t *testing.T) {
	lim := test.TimeOut(time.Second * 20)
	defer lim.Stop()

	cert, err := selfsign.GenerateSelfSignedWithDNS("localhost", "localhost")
	require.NoError(t, err)
	address, wait := serverGo(t, cert, &tls.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeLimit)
	defer cancel()

	_, err = tls13.Dial(ctx, "tcp", address,
		tls13.WithServerName("localhost"), tls13.WithRootCAs(x509.NewCertPool()))
	require.Error(t, err)

	// The server sees the alert sent by the client.
	assert.Error(t, wait())
}
