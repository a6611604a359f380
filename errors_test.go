// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"testing"

	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/stretchr/testify/assert"
)

var errExample = errors.New("an example error") //nolint:err113

func TestErrorUnwrap(t *testing.T) {
	cases := []struct {
		err          error
		errUnwrapped []error
	}{
		{
			&FatalError{Err: errExample},
			[]error{errExample},
		},
		{
			&TemporaryError{Err: errExample},
			[]error{errExample},
		},
		{
			&InternalError{Err: errExample},
			[]error{errExample},
		},
		{
			&TimeoutError{Err: errExample},
			[]error{errExample},
		},
		{
			&HandshakeError{Err: errExample},
			[]error{errExample},
		},
	}
	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("%T", c.err), func(t *testing.T) {
			err := c.err
			for _, unwrapped := range c.errUnwrapped {
				e := errors.Unwrap(err)
				assert.ErrorIs(t, e, unwrapped)
				err = e
			}
		})
	}
}

func TestErrorNetError(t *testing.T) {
	cases := []struct {
		err                error
		str                string
		timeout, temporary bool
	}{
		{&FatalError{Err: errExample}, "tls fatal: an example error", false, false},
		{&TemporaryError{Err: errExample}, "tls temporary: an example error", false, true},
		{&InternalError{Err: errExample}, "tls internal: an example error", false, false},
		{&TimeoutError{Err: errExample}, "tls timeout: an example error", true, true},
	}
	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("%T", c.err), func(t *testing.T) {
			ne, ok := c.err.(net.Error)
			if !ok {
				t.Fatalf("%T doesn't implement net.Error", c.err)
			}
			assert.Equal(t, c.timeout, ne.Timeout())
			assert.Equal(t, c.temporary, ne.Temporary()) //nolint:staticcheck
			assert.Equal(t, c.str, ne.Error())
		})
	}
}

func TestNetErrorTranslation(t *testing.T) {
	assert.Equal(t, io.EOF, netError(io.EOF))

	deadline := netError(os.ErrDeadlineExceeded)
	var ne net.Error
	assert.ErrorAs(t, deadline, &ne)
	assert.True(t, ne.Timeout())

	var fatal *FatalError
	assert.ErrorAs(t, netError(errExample), &fatal)
	assert.ErrorIs(t, netError(errExample), errExample)
}

func TestAlertErrorIs(t *testing.T) {
	received := &alertError{&alert.Alert{Level: alert.Fatal, Description: alert.BadRecordMac}}

	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", received), &alertError{&alert.Alert{Description: alert.BadRecordMac}})
	assert.NotErrorIs(t, received, &alertError{&alert.Alert{Description: alert.DecodeError}})
	assert.Contains(t, received.Error(), "alert:")
}

func TestAtomicErrorKeepsFirst(t *testing.T) {
	var atomic atomicError
	assert.NoError(t, atomic.load())

	atomic.store(errExample)
	atomic.store(io.EOF)
	assert.Equal(t, errExample, atomic.load())
}
