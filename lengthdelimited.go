// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import "encoding/binary"

// decodeState is the per-frame state of the length-delimited decoder,
// threaded through Decode calls rather than re-derived, per spec.md §3/§9:
// stateHead is waiting for a length field; stateData is waiting for the
// payload (plus any skipped header bytes) of a frame whose length has
// already been parsed and validated.
type decodeState uint8

const (
	stateHead decodeState = iota
	stateData
)

// LengthDelimitedCodec implements Decoder and Encoder for the length-
// prefixed wire format of spec.md §4.6/§6.2. Build one with
// LengthDelimitedBuilder; the zero value is not usable.
//
// A LengthDelimitedCodec instance carries in-flight decode state and is
// therefore not safe for concurrent use, matching the single ReadPump that
// is expected to own it.
type LengthDelimitedCodec struct {
	fieldLength int // bytes in the length field; 0 in varint mode
	fieldOffset int
	adjustment  int
	numSkip     int
	numSkipSet  bool
	varint      bool
	order       binary.ByteOrder

	maxFrameLength int64

	state       decodeState
	pendingLen  int64 // payload length for the in-flight Data(n) frame
	pendingSkip int   // num_skip cached alongside pendingLen
}

// headerLen returns the fixed-width header size (offset + field length).
// Meaningless in varint mode, where the header size varies per frame.
func (c *LengthDelimitedCodec) headerLen() int {
	return c.fieldOffset + c.fieldLength
}

// MaxFrameLength reports the current per-frame payload size ceiling.
func (c *LengthDelimitedCodec) MaxFrameLength() int64 { return c.maxFrameLength }

// SetMaxFrameLength changes the payload size ceiling used by subsequent
// Decode calls. Per spec.md §4.6, a frame already validated and in flight
// (the decoder is in Data(n)) is allowed to finish even if n now exceeds
// the new limit — SetMaxFrameLength only affects the next frame that is
// parsed from Head.
func (c *LengthDelimitedCodec) SetMaxFrameLength(n int64) { c.maxFrameLength = n }

// Decode implements Decoder.
func (c *LengthDelimitedCodec) Decode(buf *Buffer) (any, error) {
	if c.state == stateHead {
		payloadLen, skip, ok, err := c.decodeHead(buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		c.state = stateData
		c.pendingLen = payloadLen
		c.pendingSkip = skip
		buf.Reserve(int(int64(skip) + payloadLen - int64(buf.Len())))
	}

	total := int64(c.pendingSkip) + c.pendingLen
	if int64(buf.Len()) < total {
		return nil, nil
	}

	buf.Advance(c.pendingSkip)
	frame := make([]byte, c.pendingLen)
	copy(frame, buf.Bytes()[:c.pendingLen])
	buf.Advance(int(c.pendingLen))

	c.state = stateHead
	c.pendingLen = 0
	c.pendingSkip = 0
	return frame, nil
}

// decodeHead attempts to parse the length field at the front of buf. ok is
// false when more bytes are needed; it leaves buf untouched in that case,
// honoring the Decoder contract.
func (c *LengthDelimitedCodec) decodeHead(buf *Buffer) (payloadLen int64, numSkip int, ok bool, err error) {
	var n uint64
	var hdrLen int

	if c.varint {
		var consumed int
		n, consumed = binary.Uvarint(buf.Bytes())
		switch {
		case consumed > 0:
			hdrLen = consumed
		case consumed == 0:
			return 0, 0, false, nil
		default: // consumed < 0: value overflowed 64 bits / more than 10 bytes
			return 0, 0, false, ErrTooLong
		}
	} else {
		if buf.Len() < c.headerLen() {
			return 0, 0, false, nil
		}
		field := buf.Bytes()[c.fieldOffset : c.fieldOffset+c.fieldLength]
		n = readUint(c.order, field)
		hdrLen = c.headerLen()
	}

	adjusted := int64(n) + int64(c.adjustment)
	if adjusted < 0 {
		return 0, 0, false, ErrInvalidData
	}
	if adjusted > c.maxFrameLength {
		return 0, 0, false, ErrTooLong
	}

	numSkip = hdrLen
	if c.numSkipSet {
		numSkip = c.numSkip
	}
	return adjusted, numSkip, true, nil
}

// Encode implements Encoder. item must be []byte or string; the serialized
// form is the configured length field (big/little-endian fixed-width, or
// LEB128 varint) followed by the payload bytes. Per spec.md §4.6, the
// encoder never emits leading context/offset bytes even when
// length_field_offset is non-zero — callers using a non-zero offset are
// expected to include those bytes in the payload themselves.
func (c *LengthDelimitedCodec) Encode(item any, buf *Buffer) error {
	var payload []byte
	switch v := item.(type) {
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		return ErrInvalidArgument
	}

	n := int64(len(payload)) - int64(c.adjustment)
	if n < 0 {
		return ErrInvalidData
	}

	if c.varint {
		var scratch [binary.MaxVarintLen64]byte
		w := binary.PutUvarint(scratch[:], uint64(n))
		buf.Append(scratch[:w])
	} else {
		if !fitsInWidth(uint64(n), c.fieldLength) {
			return ErrInvalidData
		}
		field := buf.Grow(c.fieldLength)
		writeUint(c.order, field, uint64(n), c.fieldLength)
	}

	buf.Append(payload)
	return nil
}

// readUint decodes a big- or little-endian unsigned integer of width bytes
// (1..=8) from b, following the convention encoding/binary's fixed-width
// Uint16/32/64 helpers use but generalized to an arbitrary byte count.
func readUint(order binary.ByteOrder, b []byte) uint64 {
	var v uint64
	if order == binary.BigEndian {
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// writeUint writes v into dst (exactly width bytes) using the same
// generalized big/little-endian convention as readUint.
func writeUint(order binary.ByteOrder, dst []byte, v uint64, width int) {
	if order == binary.BigEndian {
		for i := width - 1; i >= 0; i-- {
			dst[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := 0; i < width; i++ {
		dst[i] = byte(v)
		v >>= 8
	}
}

// fitsInWidth reports whether v is representable in width bytes.
func fitsInWidth(v uint64, width int) bool {
	if width >= 8 {
		return true
	}
	return v < uint64(1)<<(uint(width)*8)
}
