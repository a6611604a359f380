// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

// List is an ordered extension block.
type List []Extension

// Types returns the extension types in wire order.
func (l List) Types() []TypeValue {
	out := make([]TypeValue, 0, len(l))
	for _, e := range l {
		out = append(out, e.TypeValue())
	}

	return out
}

// Has reports whether an extension of type typ is present.
func (l List) Has(typ TypeValue) bool {
	return l.Get(typ) != nil
}

// Get returns the extension of type typ or nil.
func (l List) Get(typ TypeValue) Extension {
	for _, e := range l {
		if e.TypeValue() == typ {
			return e
		}
	}

	return nil
}

// Set replaces an existing extension of the same type in place or appends
// e to the list.
func (l *List) Set(e Extension) {
	for i, existing := range *l {
		if existing.TypeValue() == e.TypeValue() {
			(*l)[i] = e

			return
		}
	}
	*l = append(*l, e)
}

// NotIn returns the types present in l but absent from other, in wire
// order. It is used to find responses to extensions that were never
// requested.
func (l List) NotIn(other List) []TypeValue {
	var out []TypeValue
	for _, e := range l {
		if !other.Has(e.TypeValue()) {
			out = append(out, e.TypeValue())
		}
	}

	return out
}

// KeyShare returns the key_share extension, if present.
func (l List) KeyShare() *KeyShare {
	k, _ := l.Get(KeyShareTypeValue).(*KeyShare)

	return k
}

// SupportedVersions returns the supported_versions extension, if present.
func (l List) SupportedVersions() *SupportedVersions {
	s, _ := l.Get(SupportedVersionsTypeValue).(*SupportedVersions)

	return s
}

// SupportedGroups returns the supported_groups extension, if present.
func (l List) SupportedGroups() *SupportedGroups {
	s, _ := l.Get(SupportedGroupsTypeValue).(*SupportedGroups)

	return s
}

// SignatureAlgorithms returns the signature_algorithms extension, if present.
func (l List) SignatureAlgorithms() *SignatureAlgorithms {
	s, _ := l.Get(SignatureAlgorithmsTypeValue).(*SignatureAlgorithms)

	return s
}

// Cookie returns the cookie extension, if present.
func (l List) Cookie() *Cookie {
	c, _ := l.Get(CookieTypeValue).(*Cookie)

	return c
}

// ALPN returns the application_layer_protocol_negotiation extension, if
// present.
func (l List) ALPN() *ALPN {
	a, _ := l.Get(ALPNTypeValue).(*ALPN)

	return a
}
