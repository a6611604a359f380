// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"crypto/x509"
	"errors"

	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/extension"
	"github.com/pion/tls13/pkg/protocol/handshake"
)

// UsageType selects the extended key usage a certificate chain is verified for.
type UsageType int

// UsageType enums.
const (
	UsageTLSServerAuth UsageType = iota + 1
	UsageTLSClientAuth
)

func (u UsageType) extKeyUsage() x509.ExtKeyUsage {
	if u == UsageTLSClientAuth {
		return x509.ExtKeyUsageClientAuth
	}

	return x509.ExtKeyUsageServerAuth
}

// Callbacks is the application's view into a connection. Implementations
// usually embed DefaultCallbacks and override what they need.
//
//go:generate mockgen -source=callbacks.go -destination=mock_callbacks_test.go -package=tls13
type Callbacks interface {
	// ExamineExtensions is called with the extensions of every ServerHello,
	// EncryptedExtensions and CertificateRequest. Returning an error aborts
	// the handshake.
	ExamineExtensions(exts extension.List, from protocol.Side, msgType handshake.Type) error

	// VerifyCertChain validates the peer's certificate chain. Returning an
	// *alert.Error selects the alert sent to the peer, any other error
	// results in bad_certificate.
	VerifyCertChain(
		chain []*x509.Certificate, ocspResponses [][]byte, trustAnchors *x509.CertPool,
		usage UsageType, hostname string,
	) error

	// SessionActivated is called once the handshake completed.
	SessionActivated()

	// RecordReceived delivers decrypted application data.
	RecordReceived(seq uint64, data []byte)

	// AlertReceived is called for every alert sent by the peer.
	AlertReceived(a alert.Alert)
}

// DefaultCallbacks verifies certificate chains with crypto/x509 and ignores
// every other event.
type DefaultCallbacks struct {
	// InsecureSkipHostnameCheck accepts chains without a hostname to verify
	// against. Any certificate issued by a trusted root is then accepted
	// for any server.
	InsecureSkipHostnameCheck bool
}

var _ Callbacks = (*DefaultCallbacks)(nil)

// ExamineExtensions accepts every extension.
func (*DefaultCallbacks) ExamineExtensions(extension.List, protocol.Side, handshake.Type) error {
	return nil
}

// VerifyCertChain verifies the chain against trustAnchors for hostname,
// which may be a DNS name or an IP address. An empty hostname is refused
// unless InsecureSkipHostnameCheck is set.
func (d *DefaultCallbacks) VerifyCertChain(
	chain []*x509.Certificate, _ [][]byte, trustAnchors *x509.CertPool, usage UsageType, hostname string,
) error {
	if len(chain) == 0 {
		return alert.Errorf(alert.BadCertificate, "empty certificate chain")
	}
	if hostname == "" && !d.InsecureSkipHostnameCheck {
		return &alert.Error{Description: alert.BadCertificate, Err: errNoHostname}
	}

	intermediates := x509.NewCertPool()
	for _, cert := range chain[1:] {
		intermediates.AddCert(cert)
	}

	_, err := chain[0].Verify(x509.VerifyOptions{
		Roots:         trustAnchors,
		Intermediates: intermediates,
		DNSName:       hostname,
		KeyUsages:     []x509.ExtKeyUsage{usage.extKeyUsage()},
	})

	return certificateAlert(err)
}

// certificateAlert maps crypto/x509 verification failures to the alert
// RFC 8446 section 6.2 recommends for them.
func certificateAlert(err error) error {
	if err == nil {
		return nil
	}

	var (
		unknownAuthority x509.UnknownAuthorityError
		invalid          x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &unknownAuthority):
		return &alert.Error{Description: alert.UnknownCA, Err: err}
	case errors.As(err, &invalid) && invalid.Reason == x509.Expired:
		return &alert.Error{Description: alert.CertificateExpired, Err: err}
	}

	return &alert.Error{Description: alert.BadCertificate, Err: err}
}

// SessionActivated does nothing.
func (*DefaultCallbacks) SessionActivated() {}

// RecordReceived drops the data.
func (*DefaultCallbacks) RecordReceived(uint64, []byte) {}

// AlertReceived does nothing.
func (*DefaultCallbacks) AlertReceived(alert.Alert) {}
