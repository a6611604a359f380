// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"bytes"
	"crypto"
	"crypto/tls"
	"crypto/x509"

	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/pion/tls13/pkg/crypto/signaturehash"
	"github.com/pion/tls13/pkg/crypto/transcript"
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/extension"
	"github.com/pion/tls13/pkg/protocol/handshake"
)

// serverHelloIsh is what ServerHello and HelloRetryRequest have in common.
type serverHelloIsh interface {
	SessionIDEcho() []byte
	CipherSuite() ciphersuite.ID
	SelectedVersion() protocol.Version
	ExtensionList() extension.List
}

// encryptedExtensionsForbidden lists extensions that are recognized but
// must never appear in EncryptedExtensions.
var encryptedExtensionsForbidden = []extension.TypeValue{ //nolint:gochecknoglobals
	extension.KeyShareTypeValue,
	extension.SupportedVersionsTypeValue,
	extension.CookieTypeValue,
	extension.PreSharedKeyTypeValue,
	extension.PskKeyExchangeModesTypeValue,
	extension.SignatureAlgorithmsTypeValue,
	extension.SignatureAlgorithmsCertTypeValue,
}

func (c *Client) handleHandshakeMessage(msg *handshake.Handshake) error {
	if msg == nil || msg.Message == nil {
		return &InternalError{Err: errUnexpectedMessageType}
	}
	if msg.Raw == nil {
		if _, err := msg.Marshal(); err != nil {
			return err
		}
	}

	if err := c.transitions.confirmTransitionTo(msg.Type()); err != nil {
		return err
	}
	c.transcript.Update(msg.Raw)
	if err := c.state.received(msg.Message); err != nil {
		return err
	}

	switch m := msg.Message.(type) {
	case *handshake.HelloRetryRequest:
		return c.handleHelloRetryRequest(m)
	case *handshake.ServerHello12:
		return c.handleServerHello12(m, msg.Raw)
	case *handshake.ServerHello:
		return c.handleServerHello(m)
	case *handshake.EncryptedExtensions:
		return c.handleEncryptedExtensions(m)
	case *handshake.CertificateRequest:
		return c.handleCertificateRequest(m)
	case *handshake.Certificate:
		return c.handleCertificate(m)
	case *handshake.CertificateVerify:
		return c.handleCertificateVerify(m)
	case *handshake.Finished:
		return c.handleFinished(m)
	default:
		return alert.Errorf(alert.UnexpectedMessage, "unexpected %s", msg.Type())
	}
}

func (c *Client) handlePostHandshakeMessage(msg *handshake.Handshake) error {
	if msg == nil || msg.Message == nil {
		return &InternalError{Err: errUnexpectedMessageType}
	}
	if !c.active {
		return alert.Errorf(alert.UnexpectedMessage, "%s before the handshake completed", msg.Type())
	}

	switch m := msg.Message.(type) {
	case *handshake.NewSessionTicket:
		c.log.Debugf("ignoring NewSessionTicket (lifetime: %ds)", m.Lifetime)

		return nil
	case *handshake.KeyUpdate:
		return c.handleKeyUpdate(m)
	default:
		return alert.Errorf(alert.UnexpectedMessage, "unexpected %s after the handshake", msg.Type())
	}
}

// validateServerHelloIsh runs the checks shared by ServerHello and
// HelloRetryRequest.
func (c *Client) validateServerHelloIsh(sh serverHelloIsh) error {
	ch := c.state.clientHello

	// RFC 8446 4.1.3
	//    A client which receives a legacy_session_id_echo field that does not
	//    match what it sent in the ClientHello MUST abort the handshake with an
	//    "illegal_parameter" alert.
	if !bytes.Equal(sh.SessionIDEcho(), ch.SessionID) {
		return alert.Errorf(alert.IllegalParameter, "echoed session id did not match")
	}

	// RFC 8446 4.1.3
	//    A client which receives a cipher suite that was not offered MUST
	//    abort the handshake with an "illegal_parameter" alert.
	if !ch.OffersCipherSuite(sh.CipherSuite()) {
		return alert.Errorf(alert.IllegalParameter, "server selected cipher suite %s that was not offered",
			sh.CipherSuite())
	}

	if !ch.OffersVersion(sh.SelectedVersion()) {
		return alert.Errorf(alert.IllegalParameter, "server selected version %s that was not offered",
			sh.SelectedVersion())
	}

	// RFC 8446 4.1.4
	//    As with the ServerHello, a HelloRetryRequest MUST NOT contain any
	//    extensions that were not first offered by the client in its
	//    ClientHello, with the exception of optionally the "cookie".
	for _, typ := range sh.ExtensionList().NotIn(ch.Extensions) {
		if typ != extension.CookieTypeValue {
			return alert.Errorf(alert.UnsupportedExtension, "unsolicited extension %d", typ)
		}
	}

	return nil
}

// validateTLS13Fields checks the fixed values of a TLS 1.3 ServerHello or
// HelloRetryRequest.
func validateTLS13Fields(legacyVersion protocol.Version, compressionMethod byte, selected protocol.Version) error {
	switch {
	case !legacyVersion.Equal(protocol.Version1_2):
		return alert.Errorf(alert.IllegalParameter, "unexpected legacy_version %s", legacyVersion)
	case compressionMethod != 0:
		return alert.Errorf(alert.IllegalParameter, "unexpected legacy_compression_method %d", compressionMethod)
	case !selected.Equal(protocol.Version1_3):
		return alert.Errorf(alert.IllegalParameter, "supported_versions selected %s", selected)
	}

	return nil
}

func (c *Client) handleServerHello12(sh *handshake.ServerHello12, raw []byte) error {
	if c.state.hasHelloRetryRequest() {
		return alert.Errorf(alert.UnexpectedMessage, "version downgrade received after HelloRetryRequest")
	}

	// RFC 8446 4.1.3
	//    TLS 1.3 clients receiving a ServerHello indicating TLS 1.2 or below
	//    MUST check that the last 8 bytes are not equal to either of these
	//    values. [...] If a match is found, the client MUST abort the
	//    handshake with an "illegal_parameter" alert.
	if _, ok := sh.Random.DowngradeSignal(); ok {
		return alert.Errorf(alert.IllegalParameter, "downgrade attack detected")
	}

	if sh.Extensions.Has(extension.SupportedVersionsTypeValue) {
		return alert.Errorf(alert.IllegalParameter, "legacy ServerHello carries supported_versions")
	}

	if !c.state.clientHello.OffersVersion(sh.SelectedVersion()) {
		return alert.Errorf(alert.IllegalParameter, "server selected version %s that was not offered",
			sh.SelectedVersion())
	}

	if !c.config.AllowTLS12 {
		return errDowngradeNotAllowed
	}

	c.transitions.setExpectedNext()
	c.downgrade = &DowngradeInfo{
		ClientHello: c.clientHelloRaw,
		ServerHello: append([]byte{}, raw...),
	}

	c.log.Debugf("server selected %s, handing off to a legacy implementation", sh.SelectedVersion())
	c.tracer.downgraded()

	return nil
}

func (c *Client) handleHelloRetryRequest(hrr *handshake.HelloRetryRequest) error {
	// RFC 8446 4.1.4
	//    The server's extensions MUST contain "supported_versions".
	if !hrr.Extensions.Has(extension.SupportedVersionsTypeValue) {
		return alert.Errorf(alert.MissingExtension, "HelloRetryRequest without supported_versions")
	}

	if err := c.validateServerHelloIsh(hrr); err != nil {
		return err
	}
	if err := validateTLS13Fields(hrr.Version, hrr.CompressionMethod, hrr.SelectedVersion()); err != nil {
		return err
	}

	suite, ok := ciphersuite.ByID(hrr.CipherSuiteID)
	if !ok {
		return alert.Errorf(alert.IllegalParameter, "unknown cipher suite %s", hrr.CipherSuiteID)
	}

	rebuilt, err := transcript.RecreateAfterHelloRetryRequest(suite.Hash, c.transcript)
	if err != nil {
		return err
	}
	c.transcript = rebuilt

	retry, err := c.retryClientHello(hrr)
	if err != nil {
		return err
	}

	// RFC 8446 D.4
	//    The client sends a dummy change_cipher_spec record immediately
	//    before its second flight. This may either be before its second
	//    ClientHello or before its encrypted handshake flight.
	if c.config.MiddleboxCompatibility {
		if err := c.sendDummyChangeCipherSpec(); err != nil {
			return err
		}
	}

	if err := c.sendHandshakeMessage(retry); err != nil {
		return err
	}
	c.transitions.setExpectedNext(handshake.TypeServerHello)

	return nil
}

// retryClientHello builds the second ClientHello. Random, session id and
// cipher suites stay the same.
func (c *Client) retryClientHello(hrr *handshake.HelloRetryRequest) (*handshake.ClientHello, error) {
	prev := c.state.clientHello
	exts := append(extension.List{}, prev.Extensions...)
	changed := false

	if ks := hrr.Extensions.KeyShare(); ks != nil {
		if ks.SelectedGroup == nil {
			return nil, alert.Errorf(alert.IllegalParameter, "HelloRetryRequest key_share without selected group")
		}
		group := *ks.SelectedGroup

		// RFC 8446 4.2.8
		//    Upon receipt of this extension in a HelloRetryRequest, the client
		//    MUST verify that (1) the selected_group field corresponds to a
		//    group which was provided in the "supported_groups" extension in
		//    the original ClientHello and (2) the selected_group field does not
		//    correspond to a group which was provided in the "key_share"
		//    extension in the original ClientHello.
		if sg := prev.Extensions.SupportedGroups(); sg == nil || !sg.Contains(group) {
			return nil, alert.Errorf(alert.IllegalParameter, "server selected group %s that was not offered", group)
		}
		if offered := prev.Extensions.KeyShare(); offered != nil {
			if _, ok := offered.ClientShare(group); ok {
				return nil, alert.Errorf(alert.IllegalParameter, "server requested a key share for %s again", group)
			}
		}

		keypair, err := elliptic.GenerateKeypair(group, c.config.Rand)
		if err != nil {
			return nil, err
		}
		c.keyShares = []*elliptic.Keypair{keypair}
		exts.Set(&extension.KeyShare{ClientShares: []extension.KeyShareEntry{{
			Group:       keypair.Curve,
			KeyExchange: keypair.PublicKey,
		}}})
		changed = true
	}

	if cookie := hrr.Extensions.Cookie(); cookie != nil {
		exts.Set(&extension.Cookie{Cookie: append([]byte{}, cookie.Cookie...)})
		changed = true
	}

	// RFC 8446 4.1.4
	//    Clients MUST abort the handshake with an "illegal_parameter" alert
	//    if the HelloRetryRequest would not result in any change in the
	//    ClientHello.
	if !changed {
		return nil, alert.Errorf(alert.IllegalParameter, "HelloRetryRequest would not change the ClientHello")
	}

	return &handshake.ClientHello{
		Version:            prev.Version,
		Random:             prev.Random,
		SessionID:          prev.SessionID,
		CipherSuiteIDs:     prev.CipherSuiteIDs,
		CompressionMethods: prev.CompressionMethods,
		Extensions:         exts,
	}, nil
}

func (c *Client) handleServerHello(sh *handshake.ServerHello) error { //nolint:cyclop
	// RFC 8446 4.1.3
	//    TLS 1.3 clients receiving a ServerHello indicating TLS 1.2 or below
	//    MUST check that the last 8 bytes are not equal to either of these
	//    values.
	if version, ok := sh.Random.DowngradeSignal(); ok {
		if version.Equal(protocol.Version1_1) {
			return alert.Errorf(alert.ProtocolVersion, "downgrade attack detected")
		}

		return errDowngradeTLS12
	}

	if err := c.validateServerHelloIsh(sh); err != nil {
		return err
	}
	if err := validateTLS13Fields(sh.Version, sh.CompressionMethod, sh.SelectedVersion()); err != nil {
		return err
	}

	// RFC 8446 4.1.4
	//    Upon receiving the ServerHello, clients MUST check that the cipher
	//    suite supplied in the ServerHello is the same as that in the
	//    HelloRetryRequest and otherwise abort the handshake with an
	//    "illegal_parameter" alert.
	if hrr := c.state.helloRetryRequest; hrr != nil {
		if sh.CipherSuiteID != hrr.CipherSuiteID {
			return alert.Errorf(alert.IllegalParameter, "cipher suite differs from HelloRetryRequest")
		}
		if !sh.SelectedVersion().Equal(hrr.SelectedVersion()) {
			return alert.Errorf(alert.IllegalParameter, "version differs from HelloRetryRequest")
		}
	}

	ks := sh.Extensions.KeyShare()
	if ks == nil || ks.ServerShare == nil {
		return errPSKOnly
	}

	keypair := c.keyShareFor(ks.ServerShare.Group)
	if keypair == nil {
		return alert.Errorf(alert.IllegalParameter, "server key share for %s was not offered", ks.ServerShare.Group)
	}
	sharedSecret, err := keypair.SharedSecret(ks.ServerShare.KeyExchange)
	if err != nil {
		if elliptic.IsInvalidPublicKey(err) {
			return &alert.Error{Description: alert.IllegalParameter, Err: err}
		}

		return err
	}
	c.keyShares = nil

	suite, ok := ciphersuite.ByID(sh.CipherSuiteID)
	if !ok {
		return alert.Errorf(alert.IllegalParameter, "unknown cipher suite %s", sh.CipherSuiteID)
	}
	if err := c.transcript.SetAlgorithm(suite.Hash); err != nil {
		return err
	}

	cipherState, err := c.config.NewCipherState(protocol.SideClient, suite.ID, sharedSecret, c.transcript.Current())
	if err != nil {
		return err
	}
	c.cipherState = cipherState

	if err := c.callbacks.ExamineExtensions(sh.Extensions, protocol.SideServer, handshake.TypeServerHello); err != nil {
		return callbackError(err, alert.HandshakeFailure)
	}

	// RFC 8446 5.1
	//    Handshake messages MUST NOT span key changes.
	if c.handshakeReader.Buffered() {
		return alert.Errorf(alert.UnexpectedMessage, "handshake data after ServerHello in the same record")
	}

	c.log.Debugf("negotiated %s", suite.ID)
	c.transitions.setExpectedNext(handshake.TypeEncryptedExtensions)

	return nil
}

func (c *Client) keyShareFor(group elliptic.Curve) *elliptic.Keypair {
	for _, keypair := range c.keyShares {
		if keypair.Curve == group {
			return keypair
		}
	}

	return nil
}

func (c *Client) handleEncryptedExtensions(ee *handshake.EncryptedExtensions) error {
	if unsolicited := ee.Extensions.NotIn(c.state.clientHello.Extensions); len(unsolicited) > 0 {
		return alert.Errorf(alert.UnsupportedExtension, "unsolicited extension %d", unsolicited[0])
	}

	// RFC 8446 4.2
	//    If an implementation receives an extension which it recognizes and
	//    which is not specified for the message in which it appears, it MUST
	//    abort the handshake with an "illegal_parameter" alert.
	for _, typ := range encryptedExtensionsForbidden {
		if ee.Extensions.Has(typ) {
			return alert.Errorf(alert.IllegalParameter, "extension %d not allowed in EncryptedExtensions", typ)
		}
	}

	if alpn := ee.Extensions.ALPN(); alpn != nil {
		proto, err := extension.ALPNProtocolSelection(c.config.NextProtos, alpn.ProtocolNameList)
		if err != nil {
			return &alert.Error{Description: alert.IllegalParameter, Err: err}
		}
		c.negotiatedProtocol = proto
	}

	if err := c.callbacks.ExamineExtensions(
		ee.Extensions, protocol.SideServer, handshake.TypeEncryptedExtensions,
	); err != nil {
		return callbackError(err, alert.HandshakeFailure)
	}

	c.transitions.setExpectedNext(handshake.TypeCertificate, handshake.TypeCertificateRequest)

	return nil
}

func (c *Client) handleCertificateRequest(cr *handshake.CertificateRequest) error {
	// RFC 8446 4.3.2
	//    This field SHALL be zero length unless used for the post-handshake
	//    authentication exchanges.
	if len(cr.CertificateRequestContext) != 0 {
		return alert.Errorf(alert.IllegalParameter, "certificate_request_context must be empty during the handshake")
	}

	if err := c.callbacks.ExamineExtensions(
		cr.Extensions, protocol.SideServer, handshake.TypeCertificateRequest,
	); err != nil {
		return callbackError(err, alert.HandshakeFailure)
	}

	c.transitions.setExpectedNext(handshake.TypeCertificate)

	return nil
}

func (c *Client) handleCertificate(cert *handshake.Certificate) error {
	for _, entry := range cert.CertificateList {
		// RFC 8446 4.4.2
		//    If an extension applies to the entire chain, it SHOULD be
		//    included in the first CertificateEntry. [...] the server's
		//    extensions MUST correspond to ones from the ClientHello message.
		if unsolicited := entry.Extensions.NotIn(c.state.clientHello.Extensions); len(unsolicited) > 0 {
			return alert.Errorf(alert.UnsupportedExtension, "unsolicited certificate entry extension %d", unsolicited[0])
		}
	}

	if len(cert.CertificateRequestContext) != 0 {
		return alert.Errorf(alert.DecodeError, "server Certificate carries a certificate_request_context")
	}
	if len(cert.CertificateList) == 0 {
		return alert.Errorf(alert.DecodeError, "server sent an empty certificate chain")
	}

	rawChain := cert.Chain()
	chain := make([]*x509.Certificate, 0, len(rawChain))
	for _, raw := range rawChain {
		parsed, err := x509.ParseCertificate(raw)
		if err != nil {
			return &alert.Error{Description: alert.BadCertificate, Err: err}
		}
		chain = append(chain, parsed)
	}

	if err := c.callbacks.VerifyCertChain(
		chain, nil, c.config.RootCAs, UsageTLSServerAuth, c.config.ServerName,
	); err != nil {
		return callbackError(err, alert.BadCertificate)
	}
	c.peerCertificates = rawChain

	c.transitions.setExpectedNext(handshake.TypeCertificateVerify)

	return nil
}

func (c *Client) handleCertificateVerify(cv *handshake.CertificateVerify) error {
	offered := c.state.clientHello.Extensions.SignatureAlgorithms()
	if offered == nil || !offered.Contains(cv.Scheme) {
		return alert.Errorf(alert.DecryptError, "server used signature scheme %s that was not offered", cv.Scheme)
	}

	leaf, err := x509.ParseCertificate(c.peerCertificates[0])
	if err != nil {
		return &alert.Error{Description: alert.BadCertificate, Err: err}
	}

	content := signaturehash.CertificateVerifyContent(protocol.SideServer, c.transcript.Previous())
	if err := signaturehash.Verify(leaf.PublicKey, cv.Scheme, content, cv.Signature); err != nil {
		return &alert.Error{Description: alert.DecryptError, Err: err}
	}

	c.transitions.setExpectedNext(handshake.TypeFinished)

	return nil
}

func (c *Client) handleFinished(fin *handshake.Finished) error {
	if !c.cipherState.VerifyPeerFinishedMAC(c.transcript.Previous(), fin.VerifyData) {
		return alert.Errorf(alert.DecryptError, "server Finished did not verify")
	}
	serverFinishedHash := c.transcript.Current()

	// RFC 8446 5.1
	//    Handshake messages MUST NOT span key changes.
	if c.handshakeReader.Buffered() {
		return alert.Errorf(alert.UnexpectedMessage, "handshake data after server Finished in the same record")
	}

	if c.config.MiddleboxCompatibility {
		if err := c.sendDummyChangeCipherSpec(); err != nil {
			return err
		}
	}

	if c.state.certificateRequest != nil {
		if err := c.sendClientAuthentication(c.state.certificateRequest); err != nil {
			return err
		}
	}

	verifyData, err := c.cipherState.FinishedMAC(c.transcript.Current())
	if err != nil {
		return err
	}
	if err := c.sendHandshakeMessage(&handshake.Finished{VerifyData: verifyData}); err != nil {
		return err
	}

	if err := c.cipherState.AdvanceWithServerFinished(serverFinishedHash); err != nil {
		return err
	}
	if err := c.cipherState.AdvanceWithClientFinished(c.transcript.Current()); err != nil {
		return err
	}

	c.transitions.setExpectedNext()
	c.active = true

	suite, _ := c.CipherSuite()
	c.log.Debugf("handshake completed with %s", suite)
	c.tracer.completedHandshake(suite)
	c.callbacks.SessionActivated()

	return nil
}

// sendClientAuthentication answers a CertificateRequest with our
// certificate, or an empty one when none is configured.
func (c *Client) sendClientAuthentication(cr *handshake.CertificateRequest) error {
	certificate := &handshake.Certificate{
		CertificateRequestContext: cr.CertificateRequestContext,
		CertificateList:           []handshake.CertificateEntry{},
	}
	if len(c.config.Certificates) == 0 {
		c.log.Debug("server requested a certificate but none is configured")

		return c.sendHandshakeMessage(certificate)
	}

	own := c.config.Certificates[0]
	for _, raw := range own.Certificate {
		certificate.CertificateList = append(certificate.CertificateList, handshake.CertificateEntry{CertificateData: raw})
	}
	if err := c.sendHandshakeMessage(certificate); err != nil {
		return err
	}

	return c.sendCertificateVerify(cr, own.PrivateKey)
}

func (c *Client) sendCertificateVerify(cr *handshake.CertificateRequest, privateKey crypto.PrivateKey) error {
	var accepted []tls.SignatureScheme
	if sa := cr.Extensions.SignatureAlgorithms(); sa != nil {
		accepted = sa.Schemes
	}

	scheme, err := signaturehash.SelectSignatureScheme(accepted, privateKey)
	if err != nil {
		return &alert.Error{Description: alert.HandshakeFailure, Err: err}
	}

	content := signaturehash.CertificateVerifyContent(protocol.SideClient, c.transcript.Current())
	signature, err := signaturehash.Sign(c.config.Rand, privateKey, scheme, content)
	if err != nil {
		return err
	}

	return c.sendHandshakeMessage(&handshake.CertificateVerify{Scheme: scheme, Signature: signature})
}

func (c *Client) handleKeyUpdate(ku *handshake.KeyUpdate) error {
	// RFC 8446 5.1
	//    Handshake messages MUST NOT span key changes.
	if c.handshakeReader.Buffered() {
		return alert.Errorf(alert.UnexpectedMessage, "handshake data after KeyUpdate in the same record")
	}

	if err := c.cipherState.UpdateReadKeys(); err != nil {
		return err
	}
	c.log.Debug("updated read keys")
	c.tracer.updatedKeys(KeyDirectionRead)

	// RFC 8446 4.6.3
	//    If the request_update field is set to "update_requested", then the
	//    receiver MUST send a KeyUpdate of its own with request_update set to
	//    "update_not_requested" prior to sending its next Application Data
	//    record.
	if ku.RequestUpdate {
		return c.sendKeyUpdate(false)
	}

	return nil
}

func (c *Client) handleDummyChangeCipherSpec() error {
	// RFC 8446 5.
	//    An implementation may receive an unencrypted record of type
	//    change_cipher_spec [...] at any time after the first ClientHello
	//    message has been sent or received and before the peer's Finished
	//    message has been received and MUST simply drop it without further
	//    processing.
	if !c.state.hasClientHello() || c.state.hasServerFinished() {
		return alert.Errorf(alert.UnexpectedMessage, "change_cipher_spec outside of the handshake")
	}

	c.log.Debug("dropping dummy change_cipher_spec")

	return nil
}
