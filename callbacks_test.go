// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"crypto/x509"
	"errors"
	"testing"

	"github.com/pion/tls13/pkg/crypto/selfsign"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAlert(t *testing.T, err error, desc alert.Description) {
	t.Helper()

	got, ok := alert.DescriptionOf(err)
	require.True(t, ok, "expected an alert error, got %v", err)
	assert.Equal(t, desc, got)
}

func TestDefaultCallbacksVerifyCertChain(t *testing.T) {
	cert, err := selfsign.GenerateSelfSignedWithDNS("example.com", "example.com", "www.example.com")
	require.NoError(t, err)

	roots := x509.NewCertPool()
	roots.AddCert(cert.Leaf)
	chain := []*x509.Certificate{cert.Leaf}
	callbacks := &DefaultCallbacks{}

	assert.NoError(t, callbacks.VerifyCertChain(chain, nil, roots, UsageTLSServerAuth, "www.example.com"))
	assert.NoError(t, callbacks.VerifyCertChain(chain, nil, roots, UsageTLSClientAuth, "example.com"))

	requireAlert(t, callbacks.VerifyCertChain(nil, nil, roots, UsageTLSServerAuth, "example.com"),
		alert.BadCertificate)
	requireAlert(t, callbacks.VerifyCertChain(chain, nil, x509.NewCertPool(), UsageTLSServerAuth, "example.com"),
		alert.UnknownCA)
	requireAlert(t, callbacks.VerifyCertChain(chain, nil, roots, UsageTLSServerAuth, "other.example"),
		alert.BadCertificate)

	err = callbacks.VerifyCertChain(chain, nil, roots, UsageTLSServerAuth, "")
	requireAlert(t, err, alert.BadCertificate)
	assert.ErrorIs(t, err, errNoHostname)

	insecure := &DefaultCallbacks{InsecureSkipHostnameCheck: true}
	assert.NoError(t, insecure.VerifyCertChain(chain, nil, roots, UsageTLSServerAuth, ""))
	requireAlert(t, insecure.VerifyCertChain(chain, nil, x509.NewCertPool(), UsageTLSServerAuth, ""),
		alert.UnknownCA)
}

func TestCertificateAlert(t *testing.T) {
	assert.NoError(t, certificateAlert(nil))

	requireAlert(t, certificateAlert(x509.UnknownAuthorityError{}), alert.UnknownCA)
	requireAlert(t, certificateAlert(x509.CertificateInvalidError{Reason: x509.Expired}), alert.CertificateExpired)
	requireAlert(t, certificateAlert(x509.CertificateInvalidError{Reason: x509.NotAuthorizedToSign}),
		alert.BadCertificate)
	requireAlert(t, certificateAlert(errors.New("broken")), alert.BadCertificate) //nolint:err113

	// The cause stays reachable.
	assert.ErrorAs(t, certificateAlert(x509.CertificateInvalidError{Reason: x509.Expired}), &x509.CertificateInvalidError{})
}

func TestCallbackError(t *testing.T) {
	requireAlert(t, callbackError(errors.New("no"), alert.HandshakeFailure), alert.HandshakeFailure) //nolint:err113
	requireAlert(t, callbackError(alert.Errorf(alert.AccessDenied, "denied"), alert.HandshakeFailure),
		alert.AccessDenied)
}
