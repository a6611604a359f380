// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package cipherstate implements the TLS 1.3 key schedule state of a
// connection: the traffic secrets of both directions and the record
// protection derived from them.
package cipherstate

import (
	"crypto/hmac"
	"errors"
	"hash"

	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/crypto/keyschedule"
	"github.com/pion/tls13/pkg/protocol"
)

var (
	//nolint:err113
	errInvalidStateTransition = &protocol.InternalError{Err: errors.New("invalid cipher state transition")}
	//nolint:err113
	errUnknownCipherSuite = &protocol.InternalError{Err: errors.New("unknown cipher suite")}
	//nolint:err113
	errInvalidSide = &protocol.InternalError{Err: errors.New("invalid side")}
)

type keyState int

const (
	stateHandshakeTraffic keyState = iota + 1
	stateServerApplicationTraffic
	stateApplicationTraffic
)

// CipherState owns the secrets of a connection from the point the (EC)DHE
// shared secret is known. Key sets are always replaced as a whole.
type CipherState struct {
	side  protocol.Side
	suite *ciphersuite.Suite
	state keyState

	handshakeSecret []byte
	masterSecret    []byte

	clientHandshakeTrafficSecret   []byte
	serverHandshakeTrafficSecret   []byte
	clientApplicationTrafficSecret []byte
	serverApplicationTrafficSecret []byte
	exporterMasterSecret           []byte
	resumptionMasterSecret         []byte

	readSecret  []byte
	writeSecret []byte
	read        *ciphersuite.RecordAEAD
	write       *ciphersuite.RecordAEAD
}

// New derives the handshake traffic secrets from the shared secret and the
// transcript hash up to and including ServerHello, and installs the
// handshake traffic keys for both directions.
func New(side protocol.Side, suiteID ciphersuite.ID, sharedSecret, transcriptHash []byte) (*CipherState, error) {
	if side != protocol.SideClient && side != protocol.SideServer {
		return nil, errInvalidSide
	}

	suite, ok := ciphersuite.ByID(suiteID)
	if !ok {
		return nil, errUnknownCipherSuite
	}

	c := &CipherState{side: side, suite: suite}
	h := c.hash()

	// No PSK: the early secret is extracted from a zero-filled IKM.
	earlySecret, err := keyschedule.HkdfExtract(h, nil, make([]byte, suite.Hash.Size()))
	if err != nil {
		return nil, err
	}
	derived, err := keyschedule.DeriveSecret(h, earlySecret, keyschedule.LabelDerived, keyschedule.EmptyHash(h))
	if err != nil {
		return nil, err
	}
	if c.handshakeSecret, err = keyschedule.HkdfExtract(h, derived, sharedSecret); err != nil {
		return nil, err
	}

	c.clientHandshakeTrafficSecret, err = keyschedule.DeriveSecret(
		h, c.handshakeSecret, keyschedule.LabelClientHandshakeTraffic, transcriptHash,
	)
	if err != nil {
		return nil, err
	}
	c.serverHandshakeTrafficSecret, err = keyschedule.DeriveSecret(
		h, c.handshakeSecret, keyschedule.LabelServerHandshakeTraffic, transcriptHash,
	)
	if err != nil {
		return nil, err
	}

	own, peer := c.clientHandshakeTrafficSecret, c.serverHandshakeTrafficSecret
	if side == protocol.SideServer {
		own, peer = peer, own
	}
	if err := c.installWrite(own); err != nil {
		return nil, err
	}
	if err := c.installRead(peer); err != nil {
		return nil, err
	}
	c.state = stateHandshakeTraffic

	return c, nil
}

func (c *CipherState) hash() func() hash.Hash {
	return c.suite.Hash.New
}

// Suite returns the negotiated cipher suite.
func (c *CipherState) Suite() ciphersuite.ID {
	return c.suite.ID
}

func (c *CipherState) trafficAEAD(secret []byte) (*ciphersuite.RecordAEAD, error) {
	key, err := keyschedule.HkdfExpandLabel(c.hash(), secret, keyschedule.LabelKey, nil, c.suite.KeyLength)
	if err != nil {
		return nil, err
	}
	iv, err := keyschedule.HkdfExpandLabel(c.hash(), secret, keyschedule.LabelIV, nil, ciphersuite.IVLength)
	if err != nil {
		return nil, err
	}

	return ciphersuite.NewRecordAEAD(c.suite, key, iv)
}

func (c *CipherState) installRead(secret []byte) error {
	aead, err := c.trafficAEAD(secret)
	if err != nil {
		return err
	}
	c.readSecret, c.read = secret, aead

	return nil
}

func (c *CipherState) installWrite(secret []byte) error {
	aead, err := c.trafficAEAD(secret)
	if err != nil {
		return err
	}
	c.writeSecret, c.write = secret, aead

	return nil
}

// EncryptRecordFragment seals an outgoing TLSInnerPlaintext.
func (c *CipherState) EncryptRecordFragment(header, fragment []byte) ([]byte, error) {
	return c.write.Seal(header, fragment)
}

// DecryptRecordFragment opens an incoming TLSCiphertext fragment.
func (c *CipherState) DecryptRecordFragment(header, sealed []byte) (uint64, []byte, error) {
	return c.read.Open(header, sealed)
}

// EncryptOutputLength returns the sealed length of a plaintext fragment.
func (c *CipherState) EncryptOutputLength(plaintextLen int) int {
	return plaintextLen + c.write.Overhead()
}

func (c *CipherState) finishedMAC(baseKey, transcriptHash []byte) ([]byte, error) {
	finishedKey, err := keyschedule.HkdfExpandLabel(
		c.hash(), baseKey, keyschedule.LabelFinished, nil, c.suite.Hash.Size(),
	)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(c.hash(), finishedKey)
	mac.Write(transcriptHash)

	return mac.Sum(nil), nil
}

func (c *CipherState) handshakeSecrets() (own, peer []byte) {
	if c.side == protocol.SideClient {
		return c.clientHandshakeTrafficSecret, c.serverHandshakeTrafficSecret
	}

	return c.serverHandshakeTrafficSecret, c.clientHandshakeTrafficSecret
}

// FinishedMAC computes this side's Finished verify_data.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-4.4.4
func (c *CipherState) FinishedMAC(transcriptHash []byte) ([]byte, error) {
	own, _ := c.handshakeSecrets()

	return c.finishedMAC(own, transcriptHash)
}

// VerifyPeerFinishedMAC checks the peer's Finished verify_data.
func (c *CipherState) VerifyPeerFinishedMAC(transcriptHash, mac []byte) bool {
	_, peer := c.handshakeSecrets()
	expected, err := c.finishedMAC(peer, transcriptHash)
	if err != nil {
		return false
	}

	return hmac.Equal(expected, mac)
}

// AdvanceWithServerFinished derives the application traffic secrets from
// the transcript hash up to and including the server Finished. Server
// originated traffic switches to the application keys; client originated
// traffic stays on the handshake keys until AdvanceWithClientFinished.
func (c *CipherState) AdvanceWithServerFinished(transcriptHash []byte) error {
	if c.state != stateHandshakeTraffic {
		return errInvalidStateTransition
	}

	h := c.hash()
	derived, err := keyschedule.DeriveSecret(h, c.handshakeSecret, keyschedule.LabelDerived, keyschedule.EmptyHash(h))
	if err != nil {
		return err
	}
	if c.masterSecret, err = keyschedule.HkdfExtract(h, derived, make([]byte, c.suite.Hash.Size())); err != nil {
		return err
	}

	if c.clientApplicationTrafficSecret, err = keyschedule.DeriveSecret(
		h, c.masterSecret, keyschedule.LabelClientApplicationTraffic, transcriptHash,
	); err != nil {
		return err
	}
	if c.serverApplicationTrafficSecret, err = keyschedule.DeriveSecret(
		h, c.masterSecret, keyschedule.LabelServerApplicationTraffic, transcriptHash,
	); err != nil {
		return err
	}
	if c.exporterMasterSecret, err = keyschedule.DeriveSecret(
		h, c.masterSecret, keyschedule.LabelExporterMaster, transcriptHash,
	); err != nil {
		return err
	}

	if c.side == protocol.SideClient {
		err = c.installRead(c.serverApplicationTrafficSecret)
	} else {
		err = c.installWrite(c.serverApplicationTrafficSecret)
	}
	if err != nil {
		return err
	}
	c.state = stateServerApplicationTraffic

	return nil
}

// AdvanceWithClientFinished switches client originated traffic to the
// application keys and derives the resumption master secret from the
// transcript hash up to and including the client Finished.
func (c *CipherState) AdvanceWithClientFinished(transcriptHash []byte) error {
	if c.state != stateServerApplicationTraffic {
		return errInvalidStateTransition
	}

	var err error
	if c.resumptionMasterSecret, err = keyschedule.DeriveSecret(
		c.hash(), c.masterSecret, keyschedule.LabelResumptionMaster, transcriptHash,
	); err != nil {
		return err
	}

	if c.side == protocol.SideClient {
		err = c.installWrite(c.clientApplicationTrafficSecret)
	} else {
		err = c.installRead(c.clientApplicationTrafficSecret)
	}
	if err != nil {
		return err
	}
	c.state = stateApplicationTraffic

	return nil
}

func (c *CipherState) nextTrafficSecret(secret []byte) ([]byte, error) {
	return keyschedule.HkdfExpandLabel(c.hash(), secret, keyschedule.LabelTrafficUpdate, nil, c.suite.Hash.Size())
}

// UpdateReadKeys rolls the peer's application traffic secret forward.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-7.2
func (c *CipherState) UpdateReadKeys() error {
	if c.state != stateApplicationTraffic {
		return errInvalidStateTransition
	}

	next, err := c.nextTrafficSecret(c.readSecret)
	if err != nil {
		return err
	}

	return c.installRead(next)
}

// UpdateWriteKeys rolls this side's application traffic secret forward.
func (c *CipherState) UpdateWriteKeys() error {
	if c.state != stateApplicationTraffic {
		return errInvalidStateTransition
	}

	next, err := c.nextTrafficSecret(c.writeSecret)
	if err != nil {
		return err
	}

	return c.installWrite(next)
}

// ExporterMasterSecret returns the exporter master secret once the server
// Finished has been processed.
func (c *CipherState) ExporterMasterSecret() []byte {
	return append([]byte{}, c.exporterMasterSecret...)
}

// ResumptionMasterSecret returns the resumption master secret once the
// client Finished has been processed.
func (c *CipherState) ResumptionMasterSecret() []byte {
	return append([]byte{}, c.resumptionMasterSecret...)
}
