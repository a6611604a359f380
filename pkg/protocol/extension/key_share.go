// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import (
	"github.com/pion/tls13/pkg/crypto/elliptic"
	"golang.org/x/crypto/cryptobyte"
)

// KeyShareEntry is a single (EC)DHE public value.
type KeyShareEntry struct {
	Group       elliptic.Curve
	KeyExchange []byte
}

// KeyShare represents the "key_share" extension. Only one of the fields can be used at a time.
// See RFC 8446 section 4.2.8.
type KeyShare struct {
	ClientShares  []KeyShareEntry // ClientHello
	ServerShare   *KeyShareEntry  // ServerHello
	SelectedGroup *elliptic.Curve // HelloRetryRequest

	ctx MessageContext
}

// TypeValue returns the extension TypeValue.
func (k KeyShare) TypeValue() TypeValue { return KeyShareTypeValue }

func (k *KeyShare) setContext(ctx MessageContext) { k.ctx = ctx }

// ClientShare returns the client share for group, if one was offered.
func (k *KeyShare) ClientShare(group elliptic.Curve) (KeyShareEntry, bool) {
	for _, e := range k.ClientShares {
		if e.Group == group {
			return e, true
		}
	}

	return KeyShareEntry{}, false
}

// Marshal encodes the extension.
func (k *KeyShare) Marshal() ([]byte, error) { //nolint:cyclop
	hasClientShares := k.ClientShares != nil // vector MAY be empty
	hasServerShare := k.ServerShare != nil
	hasHelloRetryRequest := k.SelectedGroup != nil

	// there must be exactly one context.
	if hasTooManyContexts(hasClientShares, hasServerShare, hasHelloRetryRequest) {
		return nil, errInvalidKeyShareFormat
	}

	if hasClientShares {
		seenGroups := map[elliptic.Curve]struct{}{}
		for _, e := range k.ClientShares {
			if _, ok := seenGroups[e.Group]; ok {
				return nil, errDuplicateKeyShare
			}
			seenGroups[e.Group] = struct{}{}

			if l := len(e.KeyExchange); l == 0 || l > 0xffff {
				return nil, errInvalidKeyShareFormat
			}
		}
	}

	if hasServerShare {
		if l := len(k.ServerShare.KeyExchange); l == 0 || l > 0xffff {
			return nil, errInvalidKeyShareFormat
		}
	}

	var builder cryptobyte.Builder
	builder.AddUint16(uint16(k.TypeValue()))
	builder.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		switch {
		case hasHelloRetryRequest:
			// KeyShareHelloRetryRequest { NamedGroup selected_group; }
			b.AddUint16(uint16(*k.SelectedGroup))

		case hasServerShare:
			// KeyShareServerHello { KeyShareEntry server_share; }
			addKeyShareEntry(b, *k.ServerShare)

		default:
			// KeyShareClientHello { KeyShareEntry client_shares<0..2^16-1>; }
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				for _, e := range k.ClientShares {
					addKeyShareEntry(b, e)
				}
			})
		}
	})

	return builder.Bytes()
}

// Unmarshal decodes the extension according to the carrying message.
func (k *KeyShare) Unmarshal(data []byte) error {
	extData, err := readBody(data, k.TypeValue())
	if err != nil {
		return err
	}

	k.ClientShares, k.ServerShare, k.SelectedGroup = nil, nil, nil

	switch k.ctx {
	case ContextHelloRetryRequest:
		var group uint16
		if !extData.ReadUint16(&group) || !extData.Empty() {
			return errInvalidKeyShareFormat
		}
		selected := elliptic.Curve(group)
		k.SelectedGroup = &selected

		return nil

	case ContextServerHello:
		entry, ok := readKeyShareEntry(&extData)
		if !ok || !extData.Empty() {
			return errInvalidKeyShareFormat
		}
		k.ServerShare = &entry

		return nil
	}

	var shares cryptobyte.String
	if !extData.ReadUint16LengthPrefixed(&shares) || !extData.Empty() {
		return errInvalidKeyShareFormat
	}

	k.ClientShares = []KeyShareEntry{}
	seenGroups := map[elliptic.Curve]struct{}{}
	for !shares.Empty() {
		entry, ok := readKeyShareEntry(&shares)
		if !ok {
			return errInvalidKeyShareFormat
		}
		if _, ok := seenGroups[entry.Group]; ok {
			return errDuplicateKeyShare
		}
		seenGroups[entry.Group] = struct{}{}
		k.ClientShares = append(k.ClientShares, entry)
	}

	return nil
}

func readKeyShareEntry(s *cryptobyte.String) (KeyShareEntry, bool) {
	var group uint16
	var raw cryptobyte.String
	if !s.ReadUint16(&group) || !s.ReadUint16LengthPrefixed(&raw) || len(raw) == 0 {
		return KeyShareEntry{}, false
	}

	return KeyShareEntry{Group: elliptic.Curve(group), KeyExchange: append([]byte(nil), raw...)}, true
}

func addKeyShareEntry(b *cryptobyte.Builder, e KeyShareEntry) {
	b.AddUint16(uint16(e.Group))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(e.KeyExchange)
	})
}

// hasTooManyContexts is used in Marshal(). It returns whether the KeyShare struct has more than exactly one context.
func hasTooManyContexts(a bool, b bool, c bool) bool {
	return (a && b) || (a && c) || (b && c)
}
