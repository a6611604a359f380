// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"bytes"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"net"
	"testing"

	"github.com/pion/tls13/pkg/crypto/cipherstate"
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/pion/tls13/pkg/crypto/selfsign"
	"github.com/pion/tls13/pkg/crypto/signaturehash"
	"github.com/pion/tls13/pkg/crypto/transcript"
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/extension"
	"github.com/pion/tls13/pkg/protocol/handshake"
	"github.com/pion/tls13/pkg/protocol/recordlayer"
	"github.com/stretchr/testify/require"
)

// testServer is a scripted TLS 1.3 server. It reads what a Client wrote to
// in and queues its own records until flush hands them to the client.
type testServer struct {
	t    *testing.T
	cert tls.Certificate
	in   *bytes.Buffer

	suite      ciphersuite.ID
	layer      *recordlayer.Layer
	reader     handshake.Reader
	transcript *transcript.State
	cipher     *cipherstate.CipherState

	clientHello    *handshake.ClientHello
	clientHelloRaw []byte
	flight         []byte
	pending        []byte
}

// receivedMessage is a handshake message read from the client together with
// the server's transcript hash before it.
type receivedMessage struct {
	*handshake.Handshake
	transcript []byte
}

type receivedFlight struct {
	messages []receivedMessage
	alerts   []alert.Alert
	appData  [][]byte
	ccs      int
}

func newTestServer(t *testing.T, cert tls.Certificate, in *bytes.Buffer) *testServer {
	t.Helper()

	return &testServer{
		t:          t,
		cert:       cert,
		in:         in,
		suite:      ciphersuite.TLS_AES_128_GCM_SHA256,
		layer:      recordlayer.NewLayer(protocol.SideServer),
		transcript: transcript.New(),
	}
}

func (s *testServer) protector() recordlayer.Protector {
	if s.cipher == nil {
		return nil
	}

	return s.cipher
}

// receive parses every complete record the client wrote so far.
func (s *testServer) receive() receivedFlight {
	s.t.Helper()

	s.layer.AppendReceivedBytes(s.in.Bytes())
	s.in.Reset()

	var flight receivedFlight
	for {
		record, needed, err := s.layer.NextRecord(s.protector())
		require.NoError(s.t, err)
		if needed > 0 {
			return flight
		}

		switch record.ContentType {
		case protocol.ContentTypeChangeCipherSpec:
			flight.ccs++
		case protocol.ContentTypeAlert:
			received := alert.Alert{}
			require.NoError(s.t, received.Unmarshal(record.Fragment))
			flight.alerts = append(flight.alerts, received)
		case protocol.ContentTypeApplicationData:
			flight.appData = append(flight.appData, record.Fragment)
		case protocol.ContentTypeHandshake:
			s.reader.Push(record.Fragment)
			for {
				msg, err := s.reader.Next()
				require.NoError(s.t, err)
				if msg == nil {
					break
				}

				before := s.transcript.Current()
				if !msg.Type().IsPostHandshake() {
					s.transcript.Update(msg.Raw)
				}
				flight.messages = append(flight.messages, receivedMessage{Handshake: msg, transcript: before})
			}
		default:
			s.t.Fatalf("unexpected record type %s", record.ContentType)
		}
	}
}

// readFrom moves the bytes of a single write on conn to the server's input.
func (s *testServer) readFrom(conn net.Conn) {
	s.t.Helper()

	buf := make([]byte, receiveBufferSize)
	n, err := conn.Read(buf)
	require.NoError(s.t, err)
	s.in.Write(buf[:n])
}

// readClientHello expects a ClientHello, optionally preceded by a dummy
// change_cipher_spec.
func (s *testServer) readClientHello() receivedFlight {
	s.t.Helper()

	flight := s.receive()
	require.Len(s.t, flight.messages, 1)
	hello, ok := flight.messages[0].Message.(*handshake.ClientHello)
	require.True(s.t, ok, "expected ClientHello, got %s", flight.messages[0].Type())
	s.clientHello = hello
	s.clientHelloRaw = flight.messages[0].Raw

	return flight
}

func (s *testServer) write(contentType protocol.ContentType, data []byte, p recordlayer.Protector) {
	s.t.Helper()

	records, err := s.layer.PrepareRecords(contentType, data, p)
	require.NoError(s.t, err)
	s.pending = append(s.pending, records...)
}

// marshal serializes msg and adds main-flow messages to the transcript.
func (s *testServer) marshal(msg handshake.Message) []byte {
	s.t.Helper()

	raw, err := (&handshake.Handshake{Message: msg}).Marshal()
	require.NoError(s.t, err)
	if !msg.Type().IsPostHandshake() {
		s.transcript.Update(raw)
	}

	return raw
}

// flush returns every record queued for the client.
func (s *testServer) flush() []byte {
	out := s.pending
	s.pending = nil

	return out
}

// helloRetryRequest sends a HelloRetryRequest selecting the server's suite
// and TLS 1.3 plus exts.
func (s *testServer) helloRetryRequest(exts ...extension.Extension) {
	s.t.Helper()

	hrr := handshake.NewHelloRetryRequest(s.clientHello.SessionID, s.suite,
		append(extension.List{extension.NewSelectedVersion(protocol.Version1_3)}, exts...))
	s.write(protocol.ContentTypeHandshake, s.marshal(hrr), nil)

	if s.transcript.Algorithm() != 0 {
		return
	}
	suite, ok := ciphersuite.ByID(s.suite)
	require.True(s.t, ok)
	rebuilt, err := transcript.RecreateAfterHelloRetryRequest(suite.Hash, s.transcript)
	require.NoError(s.t, err)
	s.transcript = rebuilt
}

// serverHello answers the client's first key share. mutate may break the
// message before it is sent.
func (s *testServer) serverHello(mutate ...func(*handshake.ServerHello)) {
	s.t.Helper()

	share := s.clientHello.Extensions.KeyShare().ClientShares[0]
	keypair, err := elliptic.GenerateKeypair(share.Group, rand.Reader)
	require.NoError(s.t, err)
	sharedSecret, err := keypair.SharedSecret(share.KeyExchange)
	require.NoError(s.t, err)

	var random handshake.Random
	require.NoError(s.t, random.Populate(rand.Reader))

	sh := handshake.NewServerHello(protocol.Version1_2, random, s.clientHello.SessionID, s.suite, extension.List{
		extension.NewSelectedVersion(protocol.Version1_3),
		&extension.KeyShare{ServerShare: &extension.KeyShareEntry{Group: keypair.Curve, KeyExchange: keypair.PublicKey}},
	})
	for _, m := range mutate {
		m(sh)
	}
	s.write(protocol.ContentTypeHandshake, s.marshal(sh), nil)

	suite, ok := ciphersuite.ByID(sh.CipherSuiteID)
	if !ok {
		return
	}
	require.NoError(s.t, s.transcript.SetAlgorithm(suite.Hash))
	s.cipher, err = cipherstate.New(protocol.SideServer, suite.ID, sharedSecret, s.transcript.Current())
	require.NoError(s.t, err)
}

// queue adds msg to the flight sent by sendFlight.
func (s *testServer) queue(msg handshake.Message) {
	s.flight = append(s.flight, s.marshal(msg)...)
}

func (s *testServer) queueCertificate() {
	s.queue(&handshake.Certificate{
		CertificateList: []handshake.CertificateEntry{{CertificateData: s.cert.Certificate[0]}},
	})
}

func (s *testServer) queueCertificateVerify(side protocol.Side) {
	s.t.Helper()

	content := signaturehash.CertificateVerifyContent(side, s.transcript.Current())
	signature, err := signaturehash.Sign(rand.Reader, s.cert.PrivateKey, tls.ECDSAWithP256AndSHA256, content)
	require.NoError(s.t, err)
	s.queue(&handshake.CertificateVerify{Scheme: tls.ECDSAWithP256AndSHA256, Signature: signature})
}

func (s *testServer) queueFinished() {
	s.t.Helper()

	verifyData, err := s.cipher.FinishedMAC(s.transcript.Current())
	require.NoError(s.t, err)
	s.queue(&handshake.Finished{VerifyData: verifyData})
}

// sendFlight writes the queued messages as a single record.
func (s *testServer) sendFlight() {
	s.write(protocol.ContentTypeHandshake, s.flight, s.protector())
	s.flight = nil
}

// serverFlight sends EncryptedExtensions through Finished and switches the
// server to its application traffic keys.
func (s *testServer) serverFlight(ee *handshake.EncryptedExtensions, cr *handshake.CertificateRequest) {
	s.t.Helper()

	if ee == nil {
		ee = &handshake.EncryptedExtensions{}
	}
	s.queue(ee)
	if cr != nil {
		s.queue(cr)
	}
	s.queueCertificate()
	s.queueCertificateVerify(protocol.SideServer)
	s.queueFinished()
	s.sendFlight()

	require.NoError(s.t, s.cipher.AdvanceWithServerFinished(s.transcript.Current()))
}

// readClientFinished verifies the client's last flight and switches the
// server to the client's application traffic keys.
func (s *testServer) readClientFinished() receivedFlight {
	s.t.Helper()

	flight := s.receive()
	require.NotEmpty(s.t, flight.messages)

	last := flight.messages[len(flight.messages)-1]
	finished, ok := last.Message.(*handshake.Finished)
	require.True(s.t, ok, "expected Finished, got %s", last.Type())
	require.True(s.t, s.cipher.VerifyPeerFinishedMAC(last.transcript, finished.VerifyData))
	require.NoError(s.t, s.cipher.AdvanceWithClientFinished(s.transcript.Current()))

	return flight
}

func (s *testServer) sendPostHandshake(msg handshake.Message) {
	s.write(protocol.ContentTypeHandshake, s.marshal(msg), s.cipher)
}

func (s *testServer) sendAppData(data []byte) {
	s.write(protocol.ContentTypeApplicationData, data, s.cipher)
}

func (s *testServer) sendAlert(a alert.Alert) {
	s.t.Helper()

	raw, err := a.Marshal()
	require.NoError(s.t, err)
	s.write(protocol.ContentTypeAlert, raw, s.protector())
}

// testPair is a Client wired to a testServer.
type testPair struct {
	t      *testing.T
	client *Client
	server *testServer
}

func testCertificate(t *testing.T) tls.Certificate {
	t.Helper()

	cert, err := selfsign.GenerateSelfSigned()
	require.NoError(t, err)

	return cert
}

// testClientOptions trusts cert for "localhost" and pins the negotiable
// parameters. opts are applied last.
func testClientOptions(cert tls.Certificate, opts ...ClientOption) []ClientOption {
	roots := x509.NewCertPool()
	roots.AddCert(cert.Leaf)

	return append([]ClientOption{
		WithServerName("localhost"),
		WithRootCAs(roots),
		WithCipherSuites(ciphersuite.TLS_AES_128_GCM_SHA256),
		WithGroups(elliptic.X25519, elliptic.P256),
	}, opts...)
}

// newTestPair creates a client and lets the server read its ClientHello.
func newTestPair(t *testing.T, opts ...ClientOption) *testPair {
	t.Helper()

	cert := testCertificate(t)
	wire := &bytes.Buffer{}
	client, err := NewClient(wire, testClientOptions(cert, opts...)...)
	require.NoError(t, err)

	server := newTestServer(t, cert, wire)
	server.readClientHello()

	return &testPair{t: t, client: client, server: server}
}

// deliver hands everything the server queued to the client.
func (p *testPair) deliver() error {
	_, err := p.client.ReceivedData(p.server.flush())

	return err
}

// handshake runs a full handshake without client authentication.
func (p *testPair) handshake() receivedFlight {
	p.t.Helper()

	p.server.serverHello()
	p.server.serverFlight(nil, nil)
	require.NoError(p.t, p.deliver())
	require.True(p.t, p.client.IsActive())

	return p.server.readClientFinished()
}

// requireFailure checks that the client failed with desc and reported it
// to the server.
func (p *testPair) requireFailure(err error, desc alert.Description) {
	p.t.Helper()

	require.Error(p.t, err)
	got, ok := alert.DescriptionOf(err)
	require.True(p.t, ok, "expected an alert error, got %v", err)
	require.Equal(p.t, desc, got, err.Error())
	require.Equal(p.t, err, p.client.Err())

	flight := p.server.receive()
	require.Equal(p.t, []alert.Alert{{Level: alert.Fatal, Description: desc}}, flight.alerts)
}
