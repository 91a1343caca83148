// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// Forwarder relays decoded frames from a ReadPump to a WritePump,
// preserving frame boundaries across two independently configured codecs
// (they need not even be the same codec type — a Forwarder can re-frame a
// stream from one wire format into another).
//
// ForwardOnce is the non-blocking unit of work: one call advances at most
// one frame through the read-then-send pipeline, returning ErrWouldBlock
// when either side cannot currently make progress. On ErrWouldBlock the
// caller must retry ForwardOnce on the same Forwarder — the frame read but
// not yet accepted by the write side is held internally rather than
// re-read or dropped.
type Forwarder struct {
	read  *ReadPump
	write *WritePump

	pending    any
	hasPending bool
}

// NewForwarder returns a Forwarder relaying frames read from read to write.
func NewForwarder(read *ReadPump, write *WritePump) *Forwarder {
	return &Forwarder{read: read, write: write}
}

// ForwardOnce advances one frame through the pipeline.
//
//   - (frame, nil): frame was read from the source and accepted onto the
//     destination's write buffer. The caller is responsible for calling
//     Flush to push it to the transport; Forwarder does not flush after
//     every frame so callers can batch several frames into one flush.
//   - (nil, nil): the source reached clean end of stream.
//   - (nil, ErrWouldBlock): neither a new frame nor progress on the pending
//     one is currently possible; retry once the relevant side is ready.
//   - (nil, err): a terminal error from either the read or the write side.
func (f *Forwarder) ForwardOnce() (frame any, err error) {
	if !f.hasPending {
		frame, err = f.read.Poll()
		if err != nil {
			return nil, err
		}
		if frame == nil {
			return nil, nil
		}
		f.pending, f.hasPending = frame, true
	}

	ok, err := f.write.StartSend(f.pending)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWouldBlock
	}

	forwarded := f.pending
	f.pending, f.hasPending = nil, false
	return forwarded, nil
}

// Flush drains and flushes the destination's write buffer. See
// WritePump.PollComplete.
func (f *Forwarder) Flush() (ready bool, err error) { return f.write.PollComplete() }
