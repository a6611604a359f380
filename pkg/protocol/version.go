// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package protocol provides the TLS wire format
package protocol

import "fmt"

// Version enums.
var (
	Version1_0 = Version{Major: 0x03, Minor: 0x01} //nolint:gochecknoglobals
	Version1_1 = Version{Major: 0x03, Minor: 0x02} //nolint:gochecknoglobals
	Version1_2 = Version{Major: 0x03, Minor: 0x03} //nolint:gochecknoglobals
	Version1_3 = Version{Major: 0x03, Minor: 0x04} //nolint:gochecknoglobals
)

// Version is the minor/major value in the RecordLayer
// and ClientHello/ServerHello
//
// https://datatracker.ietf.org/doc/html/rfc8446#appendix-B.1
type Version struct {
	Major, Minor uint8
}

// VersionFromUint16 splits a big-endian uint16 into a Version.
func VersionFromUint16(v uint16) Version {
	return Version{Major: uint8(v >> 8), Minor: uint8(v)} //nolint:gosec // G115
}

// Uint16 returns the wire encoding of the version.
func (v Version) Uint16() uint16 {
	return uint16(v.Major)<<8 | uint16(v.Minor)
}

// Equal determines if two protocol versions are equal.
func (v Version) Equal(x Version) bool {
	return v.Major == x.Major && v.Minor == x.Minor
}

func (v Version) String() string {
	switch v {
	case Version1_0:
		return "TLS 1.0"
	case Version1_1:
		return "TLS 1.1"
	case Version1_2:
		return "TLS 1.2"
	case Version1_3:
		return "TLS 1.3"
	default:
		return fmt.Sprintf("Version(%#04x)", v.Uint16())
	}
}

// IsValidVersion returns true if the version is a TLS version this module
// knows how to name. Note that this is not the same as whether it can be
// negotiated; only TLS 1.3 (and the TLS 1.2 handoff) are.
func IsValidVersion(v Version) bool {
	return v.Major == 0x03 && v.Minor >= 0x01 && v.Minor <= 0x04
}
