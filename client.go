// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"errors"
	"io"
	"net"

	"github.com/pion/logging"
	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/pion/tls13/pkg/crypto/transcript"
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/extension"
	"github.com/pion/tls13/pkg/protocol/handshake"
	"github.com/pion/tls13/pkg/protocol/recordlayer"
)

// sessionIDLength is the size of the legacy_session_id sent in middlebox
// compatibility mode.
const sessionIDLength = 32

// DowngradeInfo carries what a legacy implementation needs to take over a
// connection whose server selected TLS 1.2.
type DowngradeInfo struct {
	// ClientHello and ServerHello are the encoded handshake messages,
	// headers included.
	ClientHello []byte
	ServerHello []byte
	// PendingHandshake holds handshake bytes that followed the ServerHello
	// in the same records, such as the rest of the server's flight.
	PendingHandshake []byte
	// PendingRecords holds received bytes the record layer did not parse.
	PendingRecords []byte
}

// Client is the client side of a TLS 1.3 connection. It consumes bytes
// received from the server through ReceivedData and writes every record it
// produces to the io.Writer given at construction.
//
// A Client is not safe for concurrent use.
type Client struct {
	config    *Config
	log       logging.LeveledLogger
	callbacks Callbacks
	tracer    *Tracer
	out       io.Writer

	recordLayer     *recordlayer.Layer
	handshakeReader handshake.Reader
	transitions     handshakeTransitions
	state           handshakeState
	transcript      *transcript.State
	cipherState     CipherState

	keyShares          []*elliptic.Keypair
	peerCertificates   [][]byte
	negotiatedProtocol string
	sentDummyCCS       bool

	clientHelloRaw []byte
	downgrade      *DowngradeInfo

	active     bool
	peerClosed bool
	closed     bool

	err atomicError
}

// NewClient creates a client from functional options and immediately writes
// the ClientHello to out.
func NewClient(out io.Writer, opts ...ClientOption) (*Client, error) {
	config, err := buildClientConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewClientWithConfig(out, config)
}

// NewClientWithConfig creates a client from config and immediately writes
// the ClientHello to out.
func NewClientWithConfig(out io.Writer, config *Config) (*Client, error) {
	if out == nil {
		return nil, errNilWriter
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	cfg, err := config.withDefaults()
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:      cfg,
		log:         cfg.LoggerFactory.NewLogger("tls13"),
		callbacks:   cfg.Callbacks,
		tracer:      cfg.Tracer,
		out:         out,
		recordLayer: recordlayer.NewLayer(protocol.SideClient),
		transcript:  transcript.New(),
	}

	hello, err := client.newClientHello()
	if err != nil {
		return nil, err
	}

	client.tracer.startedHandshake()
	if err := client.sendHandshakeMessage(hello); err != nil {
		return nil, err
	}
	client.transitions.setExpectedNext(handshake.TypeServerHello, handshake.TypeHelloRetryRequest)

	return client, nil
}

func (c *Client) newClientHello() (*handshake.ClientHello, error) {
	var random handshake.Random
	if err := random.Populate(c.config.Rand); err != nil {
		return nil, err
	}

	// RFC 8446 D.4
	//    In compatibility mode, [...] the client MUST send a non-empty
	//    legacy_session_id field.
	var sessionID []byte
	if c.config.MiddleboxCompatibility {
		sessionID = make([]byte, sessionIDLength)
		if _, err := io.ReadFull(c.config.Rand, sessionID); err != nil {
			return nil, err
		}
	}

	keypair, err := elliptic.GenerateKeypair(c.config.Groups[0], c.config.Rand)
	if err != nil {
		return nil, err
	}
	c.keyShares = []*elliptic.Keypair{keypair}

	versions := []protocol.Version{protocol.Version1_3}
	if c.config.AllowTLS12 {
		versions = append(versions, protocol.Version1_2)
	}

	exts := extension.List{}
	// RFC 6066 3.
	//    Literal IPv4 and IPv6 addresses are not permitted in "HostName".
	if name := c.config.ServerName; name != "" && net.ParseIP(name) == nil {
		exts = append(exts, &extension.ServerName{ServerName: name})
	}
	exts = append(exts,
		&extension.SupportedVersions{Versions: versions},
		&extension.SupportedGroups{Groups: c.config.Groups},
		&extension.SignatureAlgorithms{Schemes: c.config.SignatureSchemes},
		&extension.KeyShare{ClientShares: []extension.KeyShareEntry{{
			Group:       keypair.Curve,
			KeyExchange: keypair.PublicKey,
		}}},
	)
	if len(c.config.NextProtos) > 0 {
		exts = append(exts, &extension.ALPN{ProtocolNameList: c.config.NextProtos})
	}

	return &handshake.ClientHello{
		Version:        protocol.Version1_2,
		Random:         random,
		SessionID:      sessionID,
		CipherSuiteIDs: c.config.CipherSuites,
		Extensions:     exts,
	}, nil
}

// ReceivedData feeds bytes received from the server. It processes every
// complete record and returns how many more bytes are needed to complete
// the next one. Partial input is never an error.
//
// Once the server closed the connection with close_notify io.EOF is
// returned.
func (c *Client) ReceivedData(data []byte) (int, error) {
	if err := c.err.load(); err != nil {
		return 0, err
	}
	if c.downgrade != nil {
		return 0, errDowngradeRequested
	}
	if c.peerClosed {
		return 0, io.EOF
	}

	c.recordLayer.AppendReceivedBytes(data)

	for {
		record, needed, err := c.recordLayer.NextRecord(c.protector())
		if err != nil {
			return 0, c.fail(err)
		}
		if needed > 0 {
			return needed, nil
		}

		if err := c.processRecord(record); err != nil {
			return 0, c.fail(err)
		}

		switch {
		case c.downgrade != nil:
			c.downgrade.PendingRecords = c.recordLayer.DrainBuffered()

			return 0, nil
		case c.peerClosed:
			return 0, io.EOF
		}
	}
}

func (c *Client) processRecord(record *recordlayer.Record) error {
	c.log.Tracef("[record] <- %s (length: %d, protected: %t)", record.ContentType, len(record.Fragment), record.Protected)

	// RFC 8446 5.
	//    Implementations MUST NOT send zero-length fragments of Handshake
	//    types [...]. Zero-length fragments of Application Data MAY be sent.
	if len(record.Fragment) == 0 && record.ContentType != protocol.ContentTypeApplicationData {
		return alert.Errorf(alert.UnexpectedMessage, "empty %s record", record.ContentType)
	}

	// RFC 8446 5.1
	//    Handshake messages MUST NOT be interleaved with other record types.
	if record.ContentType != protocol.ContentTypeHandshake && c.handshakeReader.Buffered() {
		return alert.Errorf(alert.UnexpectedMessage, "%s record interleaved with a fragmented handshake message",
			record.ContentType)
	}

	if c.cipherState != nil && !record.Protected && record.ContentType != protocol.ContentTypeChangeCipherSpec {
		return alert.Errorf(alert.UnexpectedMessage, "unprotected %s record after the key exchange", record.ContentType)
	}

	switch record.ContentType {
	case protocol.ContentTypeHandshake:
		return c.handleHandshakeRecord(record.Fragment)
	case protocol.ContentTypeChangeCipherSpec:
		return c.handleDummyChangeCipherSpec()
	case protocol.ContentTypeAlert:
		return c.handleAlert(record.Fragment)
	case protocol.ContentTypeApplicationData:
		if !c.active {
			return alert.Errorf(alert.UnexpectedMessage, "application data before the handshake completed")
		}
		c.callbacks.RecordReceived(record.SequenceNumber, record.Fragment)

		return nil
	default:
		return alert.Errorf(alert.UnexpectedMessage, "unexpected record type %s", record.ContentType)
	}
}

func (c *Client) handleHandshakeRecord(fragment []byte) error {
	c.handshakeReader.Push(fragment)

	for c.downgrade == nil {
		msg, err := c.handshakeReader.Next()
		if err != nil {
			return asDecodeError(err)
		}
		if msg == nil {
			return nil
		}

		c.log.Tracef("[handshake] <- %s (length: %d)", msg.Type(), len(msg.Raw))
		c.tracer.receivedHandshakeMessage(msg.Type(), len(msg.Raw))

		if c.active {
			err = c.handlePostHandshakeMessage(msg)
		} else {
			err = c.handleHandshakeMessage(msg)
		}
		if err != nil {
			return err
		}
	}
	c.downgrade.PendingHandshake = c.handshakeReader.Drain()

	return nil
}

// HandleHandshakeMessage processes a main-flow handshake message that was
// parsed outside of ReceivedData.
func (c *Client) HandleHandshakeMessage(msg *handshake.Handshake) error {
	if err := c.err.load(); err != nil {
		return err
	}
	if err := c.handleHandshakeMessage(msg); err != nil {
		return c.fail(err)
	}

	return nil
}

// HandlePostHandshakeMessage processes a NewSessionTicket or KeyUpdate that
// was parsed outside of ReceivedData.
func (c *Client) HandlePostHandshakeMessage(msg *handshake.Handshake) error {
	if err := c.err.load(); err != nil {
		return err
	}
	if err := c.handlePostHandshakeMessage(msg); err != nil {
		return c.fail(err)
	}

	return nil
}

// HandleDummyChangeCipherSpec processes a middlebox compatibility
// change_cipher_spec record.
func (c *Client) HandleDummyChangeCipherSpec() error {
	if err := c.err.load(); err != nil {
		return err
	}
	if err := c.handleDummyChangeCipherSpec(); err != nil {
		return c.fail(err)
	}

	return nil
}

// Send encrypts data as application data. It fails until the handshake
// completed.
func (c *Client) Send(data []byte) error {
	if err := c.err.load(); err != nil {
		return err
	}
	if c.downgrade != nil {
		return errDowngradeRequested
	}
	if !c.active {
		return errHandshakeInProgress
	}

	return c.writeRecords(protocol.ContentTypeApplicationData, data)
}

// UpdateKeys sends a KeyUpdate and rolls our traffic keys forward. With
// requestPeerUpdate set the server is asked to do the same.
func (c *Client) UpdateKeys(requestPeerUpdate bool) error {
	if err := c.err.load(); err != nil {
		return err
	}
	if !c.active {
		return errHandshakeInProgress
	}
	if err := c.sendKeyUpdate(requestPeerUpdate); err != nil {
		return c.fail(err)
	}

	return nil
}

// Close sends close_notify. Later calls report ErrConnClosed.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.err.load() != nil {
		return nil
	}

	err := c.sendAlert(alert.Alert{Level: alert.Warning, Description: alert.CloseNotify})
	c.err.store(ErrConnClosed)
	c.tracer.closedConnection(nil)

	return err
}

// IsActive reports whether the handshake completed and application data
// can flow.
func (c *Client) IsActive() bool {
	return c.active && c.err.load() == nil
}

// IsClosedByPeer reports whether the server sent close_notify.
func (c *Client) IsClosedByPeer() bool {
	return c.peerClosed
}

// Err returns the error that closed the client, if any.
func (c *Client) Err() error {
	return c.err.load()
}

// DowngradeRequested reports whether the server negotiated TLS 1.2 and the
// connection has to be continued by a legacy implementation.
func (c *Client) DowngradeRequested() bool {
	return c.downgrade != nil
}

// DowngradeInfo returns the messages a legacy implementation continues
// from, or nil when no downgrade was requested.
func (c *Client) DowngradeInfo() *DowngradeInfo {
	return c.downgrade
}

// NegotiatedProtocol returns the ALPN protocol selected by the server.
func (c *Client) NegotiatedProtocol() string {
	return c.negotiatedProtocol
}

// CipherSuite returns the suite selected by the server.
func (c *Client) CipherSuite() (ciphersuite.ID, bool) {
	if c.state.serverHello == nil {
		return 0, false
	}

	return c.state.serverHello.CipherSuiteID, true
}

// PeerCertChain is not supported: the chain is only handed to
// Callbacks.VerifyCertChain during the handshake.
func (c *Client) PeerCertChain() ([][]byte, error) {
	return nil, errPeerCertChain
}

func (c *Client) protector() recordlayer.Protector {
	if c.cipherState == nil {
		return nil
	}

	return c.cipherState
}

func (c *Client) writeRecords(contentType protocol.ContentType, data []byte) error {
	records, err := c.recordLayer.PrepareRecords(contentType, data, c.protector())
	if err != nil {
		return err
	}

	c.log.Tracef("[record] -> %s (length: %d)", contentType, len(data))
	if _, err := c.out.Write(records); err != nil {
		return netError(err)
	}

	return nil
}

// sendHandshakeMessage serializes msg, adds main-flow messages to the
// transcript and writes it using the current keys.
func (c *Client) sendHandshakeMessage(msg handshake.Message) error {
	h := &handshake.Handshake{Message: msg}
	raw, err := h.Marshal()
	if err != nil {
		return err
	}

	if !msg.Type().IsPostHandshake() {
		if err := c.state.sent(msg); err != nil {
			return err
		}
		c.transcript.Update(raw)
	}
	if msg.Type() == handshake.TypeClientHello {
		c.clientHelloRaw = raw
	}

	c.log.Tracef("[handshake] -> %s (length: %d)", msg.Type(), len(raw))
	c.tracer.sentHandshakeMessage(msg.Type(), len(raw))

	return c.writeRecords(protocol.ContentTypeHandshake, raw)
}

// sendDummyChangeCipherSpec writes the middlebox compatibility record. It
// is sent at most once per connection.
func (c *Client) sendDummyChangeCipherSpec() error {
	if c.sentDummyCCS {
		return nil
	}

	record, err := c.recordLayer.PrepareDummyChangeCipherSpec()
	if err != nil {
		return err
	}

	c.log.Trace("[record] -> dummy change_cipher_spec")
	if _, err := c.out.Write(record); err != nil {
		return netError(err)
	}
	c.sentDummyCCS = true

	return nil
}

func (c *Client) sendAlert(a alert.Alert) error {
	raw, err := a.Marshal()
	if err != nil {
		return err
	}

	c.log.Debugf("[alert] -> %s", a.String())
	c.tracer.sentAlert(a)

	return c.writeRecords(protocol.ContentTypeAlert, raw)
}

func (c *Client) sendKeyUpdate(requestPeerUpdate bool) error {
	if err := c.sendHandshakeMessage(&handshake.KeyUpdate{RequestUpdate: requestPeerUpdate}); err != nil {
		return err
	}
	if err := c.cipherState.UpdateWriteKeys(); err != nil {
		return err
	}

	c.log.Debug("updated write keys")
	c.tracer.updatedKeys(KeyDirectionWrite)

	return nil
}

func (c *Client) handleAlert(fragment []byte) error {
	received := &alert.Alert{}
	if err := received.Unmarshal(fragment); err != nil {
		return &alert.Error{Description: alert.DecodeError, Err: err}
	}

	c.log.Debugf("[alert] <- %s", received.String())
	c.tracer.receivedAlert(*received)
	c.callbacks.AlertReceived(*received)

	switch received.Description {
	case alert.CloseNotify:
		c.peerClosed = true

		return nil
	case alert.UserCanceled:
		return nil
	default:
		// RFC 8446 6.
		//    All the alerts listed in Section 6.2 MUST be sent with
		//    AlertLevel=fatal and MUST be treated as error alerts when
		//    received regardless of the AlertLevel in the message.
		return &alertError{Alert: received}
	}
}

// fail closes the client after err. Unless err is an alert received from
// the server, a fatal alert is sent on a best effort basis.
func (c *Client) fail(err error) error {
	var received *alertError
	if !errors.As(err, &received) {
		desc, ok := alert.DescriptionOf(err)
		if !ok {
			desc = alert.InternalError
		}
		if sendErr := c.sendAlert(alert.Alert{Level: alert.Fatal, Description: desc}); sendErr != nil {
			c.log.Debugf("failed to send alert: %v", sendErr)
		}
	}

	c.log.Warnf("connection failed: %v", err)
	c.err.store(err)
	c.tracer.closedConnection(err)

	return err
}

// asDecodeError reports malformed handshake messages as decode_error.
func asDecodeError(err error) error {
	if _, ok := alert.DescriptionOf(err); ok {
		return err
	}

	return &alert.Error{Description: alert.DecodeError, Err: err}
}

// callbackError maps an application error to a protocol failure. Errors
// that already carry an alert are kept.
func callbackError(err error, desc alert.Description) error {
	if _, ok := alert.DescriptionOf(err); ok {
		return err
	}

	return &alert.Error{Description: desc, Err: err}
}
