// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package alert implements TLS alert protocol https://datatracker.ietf.org/doc/html/rfc8446#section-6
package alert

import (
	"errors"
	"fmt"

	"github.com/pion/tls13/pkg/protocol"
)

var errBufferTooSmall = &protocol.TemporaryError{Err: errors.New("buffer is too small")} //nolint:err113

// Level is the level of the TLS Alert.
type Level byte

// Level enums.
const (
	Warning Level = 1
	Fatal   Level = 2
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "LevelWarning"
	case Fatal:
		return "LevelFatal"
	default:
		return "Invalid alert level"
	}
}

// Description is the extended info of the TLS Alert.
type Description byte

// Description enums.
const (
	CloseNotify                  Description = 0
	UnexpectedMessage            Description = 10
	BadRecordMac                 Description = 20
	RecordOverflow               Description = 22
	HandshakeFailure             Description = 40
	BadCertificate               Description = 42
	UnsupportedCertificate       Description = 43
	CertificateRevoked           Description = 44
	CertificateExpired           Description = 45
	CertificateUnknown           Description = 46
	IllegalParameter             Description = 47
	UnknownCA                    Description = 48
	AccessDenied                 Description = 49
	DecodeError                  Description = 50
	DecryptError                 Description = 51
	ProtocolVersion              Description = 70
	InsufficientSecurity         Description = 71
	InternalError                Description = 80
	InappropriateFallback        Description = 86
	UserCanceled                 Description = 90
	MissingExtension             Description = 109
	UnsupportedExtension         Description = 110
	UnrecognizedName             Description = 112
	BadCertificateStatusResponse Description = 113
	UnknownPSKIdentity           Description = 115
	CertificateRequired          Description = 116
	NoApplicationProtocol        Description = 120
)

func (d Description) String() string { //nolint:cyclop
	switch d {
	case CloseNotify:
		return "CloseNotify"
	case UnexpectedMessage:
		return "UnexpectedMessage"
	case BadRecordMac:
		return "BadRecordMac"
	case RecordOverflow:
		return "RecordOverflow"
	case HandshakeFailure:
		return "HandshakeFailure"
	case BadCertificate:
		return "BadCertificate"
	case UnsupportedCertificate:
		return "UnsupportedCertificate"
	case CertificateRevoked:
		return "CertificateRevoked"
	case CertificateExpired:
		return "CertificateExpired"
	case CertificateUnknown:
		return "CertificateUnknown"
	case IllegalParameter:
		return "IllegalParameter"
	case UnknownCA:
		return "UnknownCA"
	case AccessDenied:
		return "AccessDenied"
	case DecodeError:
		return "DecodeError"
	case DecryptError:
		return "DecryptError"
	case ProtocolVersion:
		return "ProtocolVersion"
	case InsufficientSecurity:
		return "InsufficientSecurity"
	case InternalError:
		return "InternalError"
	case InappropriateFallback:
		return "InappropriateFallback"
	case UserCanceled:
		return "UserCanceled"
	case MissingExtension:
		return "MissingExtension"
	case UnsupportedExtension:
		return "UnsupportedExtension"
	case UnrecognizedName:
		return "UnrecognizedName"
	case BadCertificateStatusResponse:
		return "BadCertificateStatusResponse"
	case UnknownPSKIdentity:
		return "UnknownPSKIdentity"
	case CertificateRequired:
		return "CertificateRequired"
	case NoApplicationProtocol:
		return "NoApplicationProtocol"
	default:
		return fmt.Sprintf("Description(%d)", byte(d))
	}
}

// Alert is one of the content types supported by the TLS record layer.
// In TLS 1.3 every alert except close_notify and user_canceled is fatal
// and the level field is ignored by the receiver.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-6
type Alert struct {
	Level       Level
	Description Description
}

// ContentType returns the ContentType of this Content.
func (a Alert) ContentType() protocol.ContentType {
	return protocol.ContentTypeAlert
}

// Marshal returns the encoded alert.
func (a *Alert) Marshal() ([]byte, error) {
	return []byte{byte(a.Level), byte(a.Description)}, nil
}

// Unmarshal populates the alert from binary data.
func (a *Alert) Unmarshal(data []byte) error {
	if len(data) != 2 {
		return errBufferTooSmall
	}

	a.Level = Level(data[0])
	a.Description = Description(data[1])

	return nil
}

func (a *Alert) String() string {
	return fmt.Sprintf("Alert %s: %s", a.Level, a.Description)
}

// IsClosure reports whether the alert ends the connection gracefully.
func (a *Alert) IsClosure() bool {
	return a.Description == CloseNotify || a.Description == UserCanceled
}
