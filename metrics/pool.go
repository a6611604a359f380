// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"sync"
)

const capacity = 4

// stringPool avoids allocations when passing labels to Prometheus.
var stringPool = sync.Pool{New: func() any {
	s := make([]string, 0, capacity)

	return &s
}}

func getStringSlice() *[]string {
	s := stringPool.Get().(*[]string) //nolint:forcetypeassert
	*s = (*s)[:0]

	return s
}

func putStringSlice(s *[]string) {
	if c := cap(*s); c < capacity {
		panic(fmt.Sprintf("expected a string slice with capacity %d or greater, got %d", capacity, c))
	}
	stringPool.Put(s)
}
