// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package protocol

import "fmt"

// ContentType represents the IANA Registered ContentTypes
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.1
type ContentType uint8

// ContentType enums.
const (
	ContentTypeInvalid          ContentType = 0
	ContentTypeChangeCipherSpec ContentType = 20
	ContentTypeAlert            ContentType = 21
	ContentTypeHandshake        ContentType = 22
	ContentTypeApplicationData  ContentType = 23
)

// IsValid reports whether the content type may appear in a TLS 1.3 record.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeChangeCipherSpec, ContentTypeAlert, ContentTypeHandshake, ContentTypeApplicationData:
		return true
	default:
		return false
	}
}

func (c ContentType) String() string {
	switch c {
	case ContentTypeChangeCipherSpec:
		return "ChangeCipherSpec"
	case ContentTypeAlert:
		return "Alert"
	case ContentTypeHandshake:
		return "Handshake"
	case ContentTypeApplicationData:
		return "ApplicationData"
	default:
		return fmt.Sprintf("ContentType(%d)", uint8(c))
	}
}

// Content is the top level distinguisher for a TLS Datagram.
type Content interface {
	ContentType() ContentType
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
}
