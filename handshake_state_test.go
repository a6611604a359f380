// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"testing"

	"github.com/pion/tls13/pkg/protocol/handshake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandshakeStateStoresOnce(t *testing.T) {
	var state handshakeState

	require.NoError(t, state.received(&handshake.EncryptedExtensions{}))
	assert.ErrorIs(t, state.received(&handshake.EncryptedExtensions{}), errDuplicateMessage)

	require.NoError(t, state.received(&handshake.Finished{}))
	assert.True(t, state.hasServerFinished())
	assert.False(t, state.handshakeFinished())

	require.NoError(t, state.sent(&handshake.Finished{}))
	assert.True(t, state.handshakeFinished())
	assert.ErrorIs(t, state.sent(&handshake.Finished{}), errDuplicateMessage)
}

func TestHandshakeStateClientHello(t *testing.T) {
	var state handshakeState
	assert.False(t, state.hasClientHello())

	first := &handshake.ClientHello{}
	require.NoError(t, state.sent(first))
	assert.True(t, state.hasClientHello())
	assert.ErrorIs(t, state.sent(&handshake.ClientHello{}), errDuplicateMessage)

	// A HelloRetryRequest allows a second ClientHello.
	require.NoError(t, state.received(&handshake.HelloRetryRequest{}))
	assert.True(t, state.hasHelloRetryRequest())
	second := &handshake.ClientHello{}
	require.NoError(t, state.sent(second))
	assert.Same(t, second, state.clientHello)
	assert.ErrorIs(t, state.received(&handshake.HelloRetryRequest{}), errDuplicateMessage)
}

func TestHandshakeStateUnexpectedType(t *testing.T) {
	var state handshakeState

	assert.ErrorIs(t, state.sent(&handshake.EncryptedExtensions{}), errUnexpectedMessageType)
	assert.ErrorIs(t, state.received(&handshake.KeyUpdate{}), errUnexpectedMessageType)
}
