// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"testing"

	"github.com/pion/tls13/pkg/crypto/elliptic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyShareMarshal(t *testing.T) {
	group := elliptic.X25519

	cases := map[string]struct {
		ext    KeyShare
		expect []byte
		err    error
	}{
		"ClientHello": {
			ext: KeyShare{ClientShares: []KeyShareEntry{
				{Group: elliptic.X25519, KeyExchange: []byte{0xaa}},
				{Group: elliptic.P256, KeyExchange: []byte{0xbb, 0xcc}},
			}},
			expect: []byte{
				0x00, 0x33, 0x00, 0x0d,
				0x00, 0x0b,
				0x00, 0x1d, 0x00, 0x01, 0xaa,
				0x00, 0x17, 0x00, 0x02, 0xbb, 0xcc,
			},
		},
		"EmptyClientShares": {
			ext:    KeyShare{ClientShares: []KeyShareEntry{}},
			expect: []byte{0x00, 0x33, 0x00, 0x02, 0x00, 0x00},
		},
		"HelloRetryRequest": {
			ext:    KeyShare{SelectedGroup: &group},
			expect: []byte{0x00, 0x33, 0x00, 0x02, 0x00, 0x1d},
		},
		"DuplicateGroup": {
			ext: KeyShare{ClientShares: []KeyShareEntry{
				{Group: elliptic.X25519, KeyExchange: []byte{0xaa}},
				{Group: elliptic.X25519, KeyExchange: []byte{0xbb}},
			}},
			err: errDuplicateKeyShare,
		},
		"TooManyContexts": {
			ext: KeyShare{SelectedGroup: &group, ServerShare: &KeyShareEntry{Group: group, KeyExchange: []byte{1}}},
			err: errInvalidKeyShareFormat,
		},
		"EmptyServerShare": {
			ext: KeyShare{ServerShare: &KeyShareEntry{Group: group}},
			err: errInvalidKeyShareFormat,
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			raw, err := tc.ext.Marshal()
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, raw)
		})
	}
}

func TestKeyShareUnmarshalByContext(t *testing.T) {
	serverShare := []byte{0x00, 0x33, 0x00, 0x05, 0x00, 0x1d, 0x00, 0x01, 0xaa}

	k := &KeyShare{}
	k.setContext(ContextServerHello)
	require.NoError(t, k.Unmarshal(serverShare))
	require.NotNil(t, k.ServerShare)
	assert.Equal(t, []byte{0xaa}, k.ServerShare.KeyExchange)
	assert.Nil(t, k.ClientShares)

	k.setContext(ContextHelloRetryRequest)
	assert.ErrorIs(t, k.Unmarshal(serverShare), errInvalidKeyShareFormat)

	k.setContext(ContextClientHello)
	assert.ErrorIs(t, k.Unmarshal([]byte{
		0x00, 0x33, 0x00, 0x0c,
		0x00, 0x0a,
		0x00, 0x1d, 0x00, 0x01, 0xaa,
		0x00, 0x1d, 0x00, 0x01, 0xbb,
	}), errDuplicateKeyShare)
}
