// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pion/tls13/pkg/crypto/ciphersuite"
	"github.com/pion/tls13/pkg/protocol/recordlayer"
)

// receiveBufferSize fits one maximum sized record including its header.
const receiveBufferSize = recordlayer.HeaderSize + recordlayer.MaxCiphertextSize

// Conn is a TLS 1.3 client connection over a stream oriented net.Conn. Read
// and Write may be called concurrently.
type Conn struct {
	nextConn net.Conn

	// mu guards client and decrypted.
	mu        sync.Mutex
	client    *Client
	decrypted [][]byte

	readMu     sync.Mutex
	readBuffer []byte

	// readDeadline is the deadline set by the application. Handshake
	// restores it after installing its own.
	deadlineMu   sync.Mutex
	readDeadline time.Time
}

var _ net.Conn = (*Conn)(nil)

// connCallbacks queues application data for Conn.Read and forwards every
// event to the application's callbacks.
type connCallbacks struct {
	Callbacks
	conn *Conn
}

func (c *connCallbacks) RecordReceived(seq uint64, data []byte) {
	if len(data) > 0 {
		c.conn.decrypted = append(c.conn.decrypted, append([]byte{}, data...))
	}
	c.Callbacks.RecordReceived(seq, data)
}

// NewConn starts a TLS 1.3 handshake over nextConn. The ClientHello is
// written before NewConn returns; call Handshake to complete it.
func NewConn(nextConn net.Conn, opts ...ClientOption) (*Conn, error) {
	config, err := buildClientConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewConnWithConfig(nextConn, config)
}

// NewConnWithConfig is NewConn taking a Config.
func NewConnWithConfig(nextConn net.Conn, config *Config) (*Conn, error) {
	if nextConn == nil {
		return nil, errNilNextConn
	}
	if config == nil {
		return nil, errNoConfigProvided
	}

	conn := &Conn{
		nextConn:   nextConn,
		readBuffer: make([]byte, receiveBufferSize),
	}

	cfg := *config
	callbacks := cfg.Callbacks
	if callbacks == nil {
		callbacks = &DefaultCallbacks{}
	}
	cfg.Callbacks = &connCallbacks{Callbacks: callbacks, conn: conn}

	client, err := NewClientWithConfig(nextConn, &cfg)
	if err != nil {
		return nil, err
	}
	conn.client = client

	return conn, nil
}

// Dial connects to address and completes the handshake. Unless
// WithServerName is passed, the host part of address is used as server name.
// An IP address is verified against the certificate but not sent in
// server_name.
func Dial(ctx context.Context, network, address string, opts ...ClientOption) (*Conn, error) {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}
	opts = append([]ClientOption{WithServerName(host)}, opts...)

	var dialer net.Dialer
	nextConn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, netError(err)
	}

	conn, err := NewConn(nextConn, opts...)
	if err != nil {
		_ = nextConn.Close()

		return nil, err
	}
	if err := conn.Handshake(ctx); err != nil {
		_ = conn.Close()

		return nil, err
	}

	return conn, nil
}

// Handshake reads from the underlying connection until the handshake
// completed, failed or ctx is done.
func (c *Conn) Handshake(ctx context.Context) error {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	return c.handshake(ctx)
}

func (c *Conn) handshake(ctx context.Context) error {
	if finished, err := c.handshakeStatus(); finished {
		return err
	}

	appDeadline := c.appReadDeadline()
	if deadline, ok := ctx.Deadline(); ok && (appDeadline.IsZero() || deadline.Before(appDeadline)) {
		if err := c.nextConn.SetReadDeadline(deadline); err != nil {
			return netError(err)
		}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = c.nextConn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
		_ = c.nextConn.SetReadDeadline(c.appReadDeadline())
	}()

	for {
		if err := c.readOnce(); err != nil {
			switch ctxErr := ctx.Err(); {
			case errors.Is(ctxErr, context.DeadlineExceeded):
				return errDeadlineExceeded
			case ctxErr != nil:
				return ctxErr
			}

			return err
		}

		if finished, err := c.handshakeStatus(); finished {
			return err
		}
	}
}

func (c *Conn) appReadDeadline() time.Time {
	c.deadlineMu.Lock()
	defer c.deadlineMu.Unlock()

	return c.readDeadline
}

// handshakeStatus reports whether the handshake is over and how it ended.
func (c *Conn) handshakeStatus() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.client.IsActive():
		return true, nil
	case c.client.Err() != nil:
		return true, c.client.Err()
	case c.client.DowngradeRequested():
		return true, errDowngradeRequested
	}

	return false, nil
}

// readOnce feeds one read from the underlying connection to the client.
func (c *Conn) readOnce() error {
	n, readErr := c.nextConn.Read(c.readBuffer)
	if n > 0 {
		c.mu.Lock()
		_, err := c.client.ReceivedData(c.readBuffer[:n])
		c.mu.Unlock()
		if err != nil {
			return err
		}
	}
	if readErr != nil {
		return netError(readErr)
	}

	return nil
}

// Read reads decrypted application data. The handshake is completed first
// if needed.
func (c *Conn) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if err := c.handshake(context.Background()); err != nil {
		return 0, err
	}

	for {
		c.mu.Lock()
		if len(c.decrypted) > 0 {
			n := copy(p, c.decrypted[0])
			if n < len(c.decrypted[0]) {
				c.decrypted[0] = c.decrypted[0][n:]
			} else {
				c.decrypted = c.decrypted[1:]
			}
			c.mu.Unlock()

			return n, nil
		}
		peerClosed, closeErr := c.client.IsClosedByPeer(), c.client.Err()
		c.mu.Unlock()

		switch {
		case peerClosed:
			return 0, io.EOF
		case closeErr != nil:
			return 0, closeErr
		}

		if err := c.readOnce(); err != nil {
			return 0, err
		}
	}
}

// Write encrypts p as application data. The handshake is completed first
// if needed.
func (c *Conn) Write(p []byte) (int, error) {
	if finished, err := c.handshakeStatus(); !finished {
		if err := c.Handshake(context.Background()); err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.Send(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close sends close_notify and closes the underlying connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	err := c.client.Close()
	c.mu.Unlock()

	if closeErr := c.nextConn.Close(); err == nil {
		err = closeErr
	}

	return err
}

// NegotiatedProtocol returns the ALPN protocol selected by the server.
func (c *Conn) NegotiatedProtocol() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.client.NegotiatedProtocol()
}

// CipherSuite returns the cipher suite selected by the server.
func (c *Conn) CipherSuite() (ciphersuite.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.client.CipherSuite()
}

// LocalAddr implements net.Conn.LocalAddr.
func (c *Conn) LocalAddr() net.Addr {
	return c.nextConn.LocalAddr()
}

// RemoteAddr implements net.Conn.RemoteAddr.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nextConn.RemoteAddr()
}

// SetDeadline implements net.Conn.SetDeadline.
func (c *Conn) SetDeadline(t time.Time) error {
	c.deadlineMu.Lock()
	defer c.deadlineMu.Unlock()
	c.readDeadline = t

	return c.nextConn.SetDeadline(t)
}

// SetReadDeadline implements net.Conn.SetReadDeadline.
func (c *Conn) SetReadDeadline(t time.Time) error {
	c.deadlineMu.Lock()
	defer c.deadlineMu.Unlock()
	c.readDeadline = t

	return c.nextConn.SetReadDeadline(t)
}

// SetWriteDeadline implements net.Conn.SetWriteDeadline.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.nextConn.SetWriteDeadline(t)
}
