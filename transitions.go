// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tls13

import (
	"sort"
	"strings"

	"github.com/pion/tls13/pkg/protocol/alert"
	"github.com/pion/tls13/pkg/protocol/handshake"
)

// handshakeTransitions holds the set of handshake message types that may
// legally arrive next.
type handshakeTransitions struct {
	expected map[handshake.Type]struct{}
}

// setExpectedNext replaces the expected set. Calling it without arguments
// means no further main-flow message is acceptable.
func (h *handshakeTransitions) setExpectedNext(types ...handshake.Type) {
	h.expected = make(map[handshake.Type]struct{}, len(types))
	for _, t := range types {
		h.expected[t] = struct{}{}
	}
}

// confirmTransitionTo fails with unexpected_message unless t is expected.
func (h *handshakeTransitions) confirmTransitionTo(t handshake.Type) error {
	if _, ok := h.expected[t]; !ok {
		return alert.Errorf(alert.UnexpectedMessage, "unexpected %s, expected %s", t, h)
	}

	return nil
}

func (h *handshakeTransitions) expectsNone() bool {
	return len(h.expected) == 0
}

func (h *handshakeTransitions) String() string {
	if h.expectsNone() {
		return "nothing"
	}

	types := make([]handshake.Type, 0, len(h.expected))
	for t := range h.expected {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	return strings.Join(names, ", ")
}
