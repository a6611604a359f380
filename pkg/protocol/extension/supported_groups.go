// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"golang.org/x/crypto/cryptobyte"
)

// SupportedGroups implements TLS 1.3 "supported_groups" (RFC 8446 section 4.2.7).
type SupportedGroups struct {
	// Ordered by preference, most-preferred first. Codes we do not
	// implement are kept as received.
	Groups []elliptic.Curve
}

// TypeValue returns the extension TypeValue.
func (s SupportedGroups) TypeValue() TypeValue { return SupportedGroupsTypeValue }

// Contains reports whether group is listed.
func (s *SupportedGroups) Contains(group elliptic.Curve) bool {
	for _, g := range s.Groups {
		if g == group {
			return true
		}
	}

	return false
}

// Marshal encodes the extension. Requires at least one group.
func (s *SupportedGroups) Marshal() ([]byte, error) {
	if len(s.Groups) == 0 {
		return nil, errInvalidSupportedGroupsFormat
	}

	var b cryptobyte.Builder
	b.AddUint16(uint16(s.TypeValue()))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		// named_group_list<2..2^16-1>
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			for _, g := range s.Groups {
				b.AddUint16(uint16(g))
			}
		})
	})

	return b.Bytes()
}

// Unmarshal decodes the extension from either ClientHello or EncryptedExtensions.
func (s *SupportedGroups) Unmarshal(data []byte) error {
	body, err := readBody(data, s.TypeValue())
	if err != nil {
		return err
	}

	var list cryptobyte.String
	if !body.ReadUint16LengthPrefixed(&list) || !body.Empty() {
		return errInvalidSupportedGroupsFormat
	}

	// Must be at least one uint16 (2 bytes) and an even number of bytes.
	if len(list) < 2 || (len(list)%2) != 0 {
		return errInvalidSupportedGroupsFormat
	}

	s.Groups = s.Groups[:0]
	for !list.Empty() {
		var group uint16
		if !list.ReadUint16(&group) {
			return errInvalidSupportedGroupsFormat
		}
		s.Groups = append(s.Groups, elliptic.Curve(group))
	}

	return nil
}
