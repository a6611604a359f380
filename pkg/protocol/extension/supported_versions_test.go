// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"testing"

	"github.com/pion/tls13/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedVersions(t *testing.T) {
	offered := &SupportedVersions{Versions: []protocol.Version{protocol.Version1_3, protocol.Version1_2}}
	raw, err := offered.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x2b, 0x00, 0x05, 0x04, 0x03, 0x04, 0x03, 0x03}, raw)

	parsed := &SupportedVersions{}
	require.NoError(t, parsed.Unmarshal(raw))
	assert.Equal(t, offered.Versions, parsed.Versions)
	_, ok := parsed.Selected()
	assert.False(t, ok)

	// Unknown versions are kept so the peer's choice can be checked
	// against what was offered.
	parsed.setContext(ContextServerHello)
	require.NoError(t, parsed.Unmarshal([]byte{0x00, 0x2b, 0x00, 0x02, 0x7f, 0x1c}))
	selected, ok := parsed.Selected()
	require.True(t, ok)
	assert.False(t, offered.Contains(selected))

	assert.ErrorIs(t, parsed.Unmarshal([]byte{0x00, 0x2b, 0x00, 0x01, 0x03}), errInvalidSupportedVersionsFormat)

	_, err = (&SupportedVersions{}).Marshal()
	assert.ErrorIs(t, err, errInvalidSupportedVersionsFormat)
}
