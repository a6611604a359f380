// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package protocol

// Side identifies the endpoint a component is acting for.
type Side uint8

// Side enums.
const (
	SideClient Side = iota + 1
	SideServer
)

func (s Side) String() string {
	switch s {
	case SideClient:
		return "client"
	case SideServer:
		return "server"
	default:
		return "unknown"
	}
}

// Peer returns the opposite side.
func (s Side) Peer() Side {
	if s == SideClient {
		return SideServer
	}

	return SideClient
}
