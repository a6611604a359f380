// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"testing"

	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/handshake"
	"github.com/stretchr/testify/assert"
)

func TestHandshakeTransitions(t *testing.T) {
	var transitions handshakeTransitions
	assert.True(t, transitions.expectsNone())
	assert.Equal(t, "nothing", transitions.String())

	transitions.setExpectedNext(handshake.TypeServerHello, handshake.TypeHelloRetryRequest)
	assert.False(t, transitions.expectsNone())
	assert.Equal(t, "ServerHello, HelloRetryRequest", transitions.String())
	assert.NoError(t, transitions.confirmTransitionTo(handshake.TypeServerHello))
	assert.NoError(t, transitions.confirmTransitionTo(handshake.TypeHelloRetryRequest))

	err := transitions.confirmTransitionTo(handshake.TypeFinished)
	desc, ok := alert.DescriptionOf(err)
	assert.True(t, ok)
	assert.Equal(t, alert.UnexpectedMessage, desc)
	assert.Contains(t, err.Error(), "unexpected Finished")

	transitions.setExpectedNext()
	assert.True(t, transitions.expectsNone())
	assert.Error(t, transitions.confirmTransitionTo(handshake.TypeServerHello))
}
