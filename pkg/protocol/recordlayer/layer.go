// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package recordlayer

import (
	"github.com/pion/tls13/pkg/protocol"
	"github.com/pion/tls13/pkg/protocol/alert"
)

// Protector seals and opens record fragments. It is implemented by the
// connection's cipher state; a nil Protector means records travel in the
// clear.
type Protector interface {
	// EncryptRecordFragment seals the TLSInnerPlaintext fragment using the
	// serialized record header as additional data.
	EncryptRecordFragment(header, fragment []byte) ([]byte, error)
	// DecryptRecordFragment opens a sealed fragment and reports the record
	// sequence number that was used.
	DecryptRecordFragment(header, sealed []byte) (uint64, []byte, error)
	// EncryptOutputLength returns the sealed size of a plaintext of the
	// given length.
	EncryptOutputLength(plaintextLen int) int
}

// Record is a single unprotected record, either received in the clear or
// recovered from a TLSCiphertext.
type Record struct {
	ContentType protocol.ContentType
	Fragment    []byte
	// SequenceNumber is only meaningful when Protected is set.
	SequenceNumber uint64
	Protected      bool
}

// Layer converts between a byte stream and a sequence of records. It is not
// safe for concurrent use; a connection owns exactly one Layer.
type Layer struct {
	side          protocol.Side
	readBuffer    readQueue
	initialRecord bool
}

// NewLayer creates a record layer acting for the given side.
func NewLayer(side protocol.Side) *Layer {
	return &Layer{side: side, initialRecord: true}
}

// AppendReceivedBytes queues bytes delivered by the transport.
func (l *Layer) AppendReceivedBytes(data []byte) {
	l.readBuffer.push(data)
}

// Buffered returns the number of received bytes not yet consumed.
func (l *Layer) Buffered() int {
	return l.readBuffer.Len()
}

// DrainBuffered returns a copy of the received bytes not yet consumed and
// empties the read buffer.
func (l *Layer) DrainBuffered() []byte {
	out := append([]byte{}, l.readBuffer.Bytes()...)
	l.readBuffer.consume(len(out))

	return out
}

// PrepareRecords splits data into records of at most MaxPlaintextSize bytes
// and serializes them. When p is non-nil every record is protected and
// framed as application data, with the real content type carried inside.
func (l *Layer) PrepareRecords(contentType protocol.ContentType, data []byte, p Protector) ([]byte, error) {
	protect := p != nil

	switch {
	case !contentType.IsValid():
		return nil, errInvalidContentType
	case !protect && contentType == protocol.ContentTypeApplicationData:
		return nil, errUnprotectedApplicationData
	case len(data) == 0 && contentType != protocol.ContentTypeApplicationData:
		return nil, errEmptyFragment
	case contentType == protocol.ContentTypeChangeCipherSpec && !protocol.IsChangeCipherSpecPayload(data):
		return nil, errInvalidChangeCipherSpec
	}

	records := max((len(data)+MaxPlaintextSize-1)/MaxPlaintextSize, 1)
	out := make([]byte, 0, records*HeaderSize+l.outputLength(len(data), records, p))

	// At least one record is written, even for zero-length application data.
	for offset := 0; offset == 0 || offset < len(data); {
		chunk := data[offset:min(offset+MaxPlaintextSize, len(data))]
		offset += max(len(chunk), 1)

		header := Header{ContentType: contentType, Version: protocol.Version1_2}
		if protect {
			header.ContentType = protocol.ContentTypeApplicationData
			header.ContentLen = uint16(p.EncryptOutputLength(len(chunk) + 1)) //nolint:gosec // G115, bounded by MaxCiphertextSize
		} else {
			header.ContentLen = uint16(len(chunk)) //nolint:gosec // G115, bounded by MaxPlaintextSize
		}

		// RFC 8446 5.1
		//    MUST be set to 0x0303 for all records generated by a TLS 1.3
		//    implementation other than an initial ClientHello [...], where
		//    it MAY also be 0x0301 for compatibility purposes.
		if l.side == protocol.SideClient && l.initialRecord {
			header.Version = protocol.Version1_0
		}
		l.initialRecord = false

		rawHeader, err := header.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, rawHeader...)

		if !protect {
			out = append(out, chunk...)

			continue
		}

		inner := make([]byte, 0, len(chunk)+1)
		inner = append(inner, chunk...)
		inner = append(inner, byte(contentType))

		sealed, err := p.EncryptRecordFragment(rawHeader, inner)
		if err != nil {
			return nil, err
		}
		if len(sealed) != int(header.ContentLen) {
			return nil, errCiphertextLengthMismatch
		}
		out = append(out, sealed...)
	}

	return out, nil
}

func (l *Layer) outputLength(dataLen, records int, p Protector) int {
	if p == nil {
		return dataLen
	}

	last := dataLen - (records-1)*MaxPlaintextSize

	return (records-1)*p.EncryptOutputLength(MaxPlaintextSize+1) + p.EncryptOutputLength(last+1)
}

// PrepareDummyChangeCipherSpec returns the unprotected middlebox
// compatibility record. It must never be the first record of a connection.
func (l *Layer) PrepareDummyChangeCipherSpec() ([]byte, error) {
	if l.initialRecord {
		return nil, errInitialChangeCipherSpec
	}

	return l.PrepareRecords(protocol.ContentTypeChangeCipherSpec, []byte{protocol.ChangeCipherSpecValue}, nil)
}

// NextRecord parses the next complete record from the read buffer. It never
// blocks: when the buffer does not hold a complete record it returns the
// number of additional bytes that are needed and a nil Record.
//
// Once a complete record has been identified its bytes are consumed, even
// if decryption or content validation fails afterwards.
func (l *Layer) NextRecord(p Protector) (*Record, int, error) {
	buffered := l.readBuffer.Bytes()
	if len(buffered) < HeaderSize {
		return nil, HeaderSize - len(buffered), nil
	}

	var header Header
	if err := header.Unmarshal(buffered[:HeaderSize]); err != nil {
		return nil, 0, err
	}
	if err := header.validate(l.side == protocol.SideServer && l.initialRecord); err != nil {
		return nil, 0, err
	}

	recordLen := HeaderSize + int(header.ContentLen)
	if len(buffered) < recordLen {
		return nil, recordLen - len(buffered), nil
	}

	fragment := buffered[HeaderSize:recordLen]

	// RFC 8446 5.
	//    An implementation may receive an unencrypted record of type
	//    change_cipher_spec consisting of the single byte value 0x01 [...].
	//    An implementation which receives any other change_cipher_spec value
	//    [...] MUST abort the handshake with an "unexpected_message" alert.
	if header.ContentType == protocol.ContentTypeChangeCipherSpec && !protocol.IsChangeCipherSpecPayload(fragment) {
		return nil, 0, alert.Errorf(alert.UnexpectedMessage, "malformed change cipher spec record received")
	}

	rawHeader := append([]byte{}, buffered[:HeaderSize]...)
	record := &Record{
		ContentType: header.ContentType,
		Fragment:    append([]byte{}, fragment...),
	}
	l.readBuffer.consume(recordLen)

	if record.ContentType == protocol.ContentTypeApplicationData {
		if p == nil {
			return nil, 0, alert.Errorf(alert.UnexpectedMessage, "premature Application Data received")
		}

		seq, plaintext, err := p.DecryptRecordFragment(rawHeader, record.Fragment)
		if err != nil {
			return nil, 0, err
		}

		innerType, content, err := parseInnerPlaintext(plaintext)
		if err != nil {
			return nil, 0, err
		}

		record.ContentType = innerType
		record.Fragment = content
		record.SequenceNumber = seq
		record.Protected = true
	}

	l.initialRecord = false

	return record, 0, nil
}

// parseInnerPlaintext recovers the content type from a TLSInnerPlaintext,
// skipping any zero padding.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.4
func parseInnerPlaintext(plaintext []byte) (protocol.ContentType, []byte, error) {
	// RFC 8446 5.4
	//    If a receiving implementation receives a record with a
	//    TLSInnerPlaintext that exceeds this length, it MUST terminate the
	//    connection with a "record_overflow" alert.
	if len(plaintext) > MaxPlaintextSize+1 {
		return 0, nil, alert.Errorf(alert.RecordOverflow, "inner plaintext of %d bytes exceeds the limit", len(plaintext))
	}

	i := len(plaintext) - 1
	for i >= 0 && plaintext[i] == 0 {
		i--
	}
	if i < 0 {
		return 0, nil, alert.Errorf(alert.UnexpectedMessage, "protected record carries no content type")
	}

	contentType := protocol.ContentType(plaintext[i])
	if !contentType.IsValid() {
		return 0, nil, alert.Errorf(alert.UnexpectedMessage, "unexpected inner record type %d", uint8(contentType))
	}

	// RFC 8446 5.
	//    An implementation [...] which receives a protected change_cipher_spec
	//    record MUST abort the handshake with an "unexpected_message" alert.
	if contentType == protocol.ContentTypeChangeCipherSpec {
		return 0, nil, alert.Errorf(alert.UnexpectedMessage, "protected change cipher spec received")
	}

	return contentType, plaintext[:i], nil
}
