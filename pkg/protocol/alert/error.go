// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package alert

import (
	"errors"
	"fmt"
)

// Error is a protocol failure: a violation of RFC 8446 by the peer or by the
// data on the wire. It carries the alert that has to be sent to the peer
// before the connection is torn down.
type Error struct {
	Description Description
	Err         error
}

// Errorf creates a protocol failure carrying the given alert description.
func Errorf(desc Description, format string, args ...any) *Error {
	return &Error{Description: desc, Err: fmt.Errorf(format, args...)} //nolint:err113
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("alert %s", e.Description)
	}

	return fmt.Sprintf("alert %s: %v", e.Description, e.Err)
}

// Unwrap implements Go1.13 error unwrapper.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any other *Error carrying the same alert description.
func (e *Error) Is(err error) bool {
	var other *Error
	if errors.As(err, &other) {
		return e.Description == other.Description
	}

	return false
}

// Alert returns the fatal alert that reports this failure to the peer.
func (e *Error) Alert() *Alert {
	return &Alert{Level: Fatal, Description: e.Description}
}

// DescriptionOf extracts the alert description from err. The second return
// value is false when err is not a protocol failure.
func DescriptionOf(err error) (Description, bool) {
	var alertErr *Error
	if errors.As(err, &alertErr) {
		return alertErr.Description, true
	}

	return 0, false
}
