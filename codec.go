// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// Decoder attempts to parse one frame from the front of buf.
//
// On success it returns the frame and consumes its bytes from buf (via
// buf.Advance). If buf does not yet hold a complete frame, Decode returns
// (nil, nil) and must leave buf untouched. A malformed frame is reported by
// returning a non-nil error; once Decode errors the owning pump treats the
// stream as terminated (§7).
type Decoder interface {
	Decode(buf *Buffer) (frame any, err error)
}

// EOFDecoder is an optional capability a Decoder may implement to customize
// end-of-stream handling. A Decoder that does not implement it gets
// DefaultEOF's behavior.
type EOFDecoder interface {
	// EOF is called once after the transport has reported end of stream. It
	// may produce one final frame (e.g. a codec that treats "no trailing
	// delimiter" as implicit end-of-frame) or fail if a partial frame
	// remains in buf.
	EOF(buf *Buffer) (frame any, err error)
}

// Encoder appends the serialized form of item to buf. It must never
// partially append item's bytes and then fail: on error, buf's contents
// must be exactly what they were before the call (or document otherwise).
type Encoder interface {
	Encode(item any, buf *Buffer) error
}

// Codec is the union of Decoder and Encoder a bidirectional Framed
// requires. Most codecs, including LengthDelimitedCodec, implement both on
// the same value.
type Codec interface {
	Decoder
	Encoder
}

// DefaultEOF implements the documented default end-of-stream behavior for
// decoders that do not implement EOFDecoder themselves: fail with
// ErrUnexpectedEOF iff buf is non-empty, otherwise report clean end of
// stream.
func DefaultEOF(buf *Buffer) (frame any, err error) {
	if buf.Len() != 0 {
		return nil, ErrUnexpectedEOF
	}
	return nil, nil
}

// decodeEOF dispatches to d's EOFDecoder implementation if it has one, or
// to DefaultEOF otherwise. This is the "capability, not inheritance" switch
// §9 describes: EOF semantics are opt-in, not a method every Decoder must
// define.
func decodeEOF(d Decoder, buf *Buffer) (any, error) {
	if eofer, ok := d.(EOFDecoder); ok {
		return eofer.EOF(buf)
	}
	return DefaultEOF(buf)
}
