// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package alert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlert(t *testing.T) {
	for _, test := range []struct {
		Name               string
		Data               []byte
		Want               *Alert
		WantUnmarshalError error
	}{
		{
			Name: "Valid Alert",
			Data: []byte{0x02, 0x0A},
			Want: &Alert{
				Level:       Fatal,
				Description: UnexpectedMessage,
			},
		},
		{
			Name: "Close notify",
			Data: []byte{0x01, 0x00},
			Want: &Alert{
				Level:       Warning,
				Description: CloseNotify,
			},
		},
		{
			Name:               "Invalid alert length",
			Data:               []byte{0x00},
			Want:               &Alert{},
			WantUnmarshalError: errBufferTooSmall,
		},
		{
			Name:               "Trailing bytes",
			Data:               []byte{0x02, 0x0A, 0x00},
			Want:               &Alert{},
			WantUnmarshalError: errBufferTooSmall,
		},
	} {
		a := &Alert{}
		assert.ErrorIs(t, a.Unmarshal(test.Data), test.WantUnmarshalError, test.Name)
		assert.Equal(t, test.Want, a, test.Name)

		if test.WantUnmarshalError != nil {
			continue
		}

		data, marshalErr := a.Marshal()
		assert.NoError(t, marshalErr)
		assert.Equal(t, test.Data, data, test.Name)
	}
}

func TestAlertIsClosure(t *testing.T) {
	assert.True(t, (&Alert{Level: Warning, Description: CloseNotify}).IsClosure())
	assert.True(t, (&Alert{Level: Warning, Description: UserCanceled}).IsClosure())
	assert.False(t, (&Alert{Level: Fatal, Description: DecodeError}).IsClosure())
}

func TestError(t *testing.T) {
	err := Errorf(IllegalParameter, "echoed session id did not match")
	assert.Equal(t, "alert IllegalParameter: echoed session id did not match", err.Error())
	assert.Equal(t, &Alert{Level: Fatal, Description: IllegalParameter}, err.Alert())

	wrapped := fmt.Errorf("handling ServerHello: %w", err)
	assert.ErrorIs(t, wrapped, &Error{Description: IllegalParameter})
	assert.NotErrorIs(t, wrapped, &Error{Description: DecodeError})

	desc, ok := DescriptionOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, IllegalParameter, desc)

	_, ok = DescriptionOf(errors.New("plain")) //nolint:err113
	assert.False(t, ok)
}
