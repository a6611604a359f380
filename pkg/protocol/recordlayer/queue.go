// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package recordlayer

// readQueue is an append-only byte queue with cheap prefix consumption.
// Consumed bytes are reclaimed lazily once they make up at least half of
// the backing array.
type readQueue struct {
	buf []byte
	off int
}

func (q *readQueue) Len() int {
	return len(q.buf) - q.off
}

// Bytes returns the unconsumed bytes. The slice is only valid until the
// next call to push or consume.
func (q *readQueue) Bytes() []byte {
	return q.buf[q.off:]
}

func (q *readQueue) push(data []byte) {
	if q.off > 0 && q.off >= cap(q.buf)/2 {
		n := copy(q.buf, q.buf[q.off:])
		q.buf = q.buf[:n]
		q.off = 0
	}
	q.buf = append(q.buf, data...)
}

func (q *readQueue) consume(n int) {
	q.off += n
	if q.off == len(q.buf) {
		q.buf = q.buf[:0]
		q.off = 0
	}
}
