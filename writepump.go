// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// BackpressureBoundary is the soft high-water mark WritePump.StartSend uses
// to decide whether to proactively drain the write buffer before accepting
// another frame. 8 KiB, per spec.md §4.4's own example value.
const BackpressureBoundary = 8 * 1024

// WritePump drives an Encoder against an AsyncWriter, buffering encoded
// frames and draining them to the transport. It is the framing.FramedWrite
// of spec.md §4.4.
//
// WritePump is not safe for concurrent use.
type WritePump struct {
	w   AsyncWriter
	enc Encoder
	buf *Buffer
}

// NewWritePump returns a WritePump writing to w and encoding with enc.
func NewWritePump(w AsyncWriter, enc Encoder) *WritePump {
	return &WritePump{w: w, enc: enc, buf: NewBuffer(0)}
}

// GetRef returns the underlying AsyncWriter.
func (p *WritePump) GetRef() AsyncWriter { return p.w }

// GetMut returns the underlying AsyncWriter for mutation.
func (p *WritePump) GetMut() AsyncWriter { return p.w }

// StartSend encodes frame into the write buffer.
//
// If the buffer has already grown past BackpressureBoundary, StartSend
// first attempts one PollComplete to drain it; if that does not bring the
// buffer back under the boundary, StartSend rejects the frame (ok == false)
// so the caller can retry once PollComplete has made more room. Otherwise
// frame is encoded and accepted (ok == true).
func (p *WritePump) StartSend(frame any) (ok bool, err error) {
	if p.buf.Len() >= BackpressureBoundary {
		if _, err := p.PollComplete(); err != nil && err != ErrWouldBlock {
			return false, err
		}
		if p.buf.Len() >= BackpressureBoundary {
			return false, nil
		}
	}
	if err := p.enc.Encode(frame, p.buf); err != nil {
		return false, err
	}
	return true, nil
}

// PollComplete drains the write buffer to the transport and, once it is
// empty, flushes the transport.
//
// Return values, matching spec.md §4.4:
//   - (true, nil): the buffer is empty and the transport has been flushed.
//   - (false, ErrWouldBlock): the transport blocked before the buffer was
//     fully drained or flushed; bytes it did accept have already been
//     removed from the buffer. Retry once it is ready again.
//   - (false, err): a terminal error, including ErrWriteZero if the
//     transport accepted zero bytes from a non-empty write without
//     signaling ErrWouldBlock.
func (p *WritePump) PollComplete() (ready bool, err error) {
	for p.buf.Len() > 0 {
		n, werr := p.w.WriteBuf(p.buf)
		if werr != nil {
			return false, werr
		}
		if n == 0 {
			return false, ErrWriteZero
		}
	}
	if err := p.w.Flush(); err != nil {
		return false, err
	}
	return true, nil
}
