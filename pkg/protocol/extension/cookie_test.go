// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCookie(t *testing.T) {
	extension := Cookie{Cookie: []byte{0x1, 0x42}}

	raw, err := extension.Marshal()
	assert.NoError(t, err)

	expect := []byte{
		0x00, 0x2c, // extension type
		0x00, 0x04, // extension length
		0x00, 0x02, // vec length
		0x01, 0x42, // cookie
	}
	assert.Equal(t, raw, expect)

	newExtension := Cookie{}

	assert.NoError(t, newExtension.Unmarshal(expect))
	assert.Equal(t, extension.Cookie, newExtension.Cookie)

	_, err = (&Cookie{}).Marshal()
	assert.ErrorIs(t, err, errCookieFormat)

	assert.ErrorIs(t, newExtension.Unmarshal([]byte{0x00, 0x2c, 0x00, 0x02, 0x00, 0x00}), errCookieFormat)
}

func FuzzCookieUnmarshal(f *testing.F) {
	testcases := [][]byte{
		{
			0x00, 0x2c, // extension type
			0x00, 0x04, // extension length
			0x00, 0x02, // vec length
			0x01, 0x42, // cookie
		},
		{
			0x00, 0x2c, // extension type
			0x00, 0x04, // extension length
			0x00, 0x01, // vec length
			0x01, // cookie
		},
	}

	for _, tc := range testcases {
		f.Add(tc)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		c := &Cookie{}
		if err := c.Unmarshal(data); err != nil {
			return
		}
		raw, err := c.Marshal()
		assert.NoError(t, err)
		assert.Equal(t, data, raw)
	})
}
