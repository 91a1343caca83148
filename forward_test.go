// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing_test

import (
	"testing"

	"code.hybscloud.com/framing"
)

func TestForwarderRelaysFramesAcrossCodecs(t *testing.T) {
	readCodec, _ := framing.NewLengthDelimitedBuilder(framing.WithLengthFieldLength(2)).Build()
	writeCodec, _ := framing.NewLengthDelimitedBuilder().Build()

	r := &scriptedReader{steps: []step{{b: append([]byte{0, 3}, []byte("abc")...)}}}
	w := &scriptedWriter{limit: unboundedWriteLimit}

	fwd := framing.NewForwarder(framing.NewReadPump(r, readCodec), framing.NewWritePump(w, writeCodec))

	frame, err := fwd.ForwardOnce()
	if err != nil {
		t.Fatalf("ForwardOnce() err = %v", err)
	}
	if string(frame.([]byte)) != "abc" {
		t.Fatalf("ForwardOnce() = %v, want %q", frame, "abc")
	}

	if _, err := fwd.Flush(); err != nil {
		t.Fatalf("Flush() err = %v", err)
	}
	want := []byte{0, 0, 0, 3, 'a', 'b', 'c'}
	if string(w.written) != string(want) {
		t.Fatalf("written = %v, want %v", w.written, want)
	}
}

func TestForwarderReturnsNilAtCleanEOF(t *testing.T) {
	readCodec, _ := framing.NewLengthDelimitedBuilder().Build()
	writeCodec, _ := framing.NewLengthDelimitedBuilder().Build()
	r := &scriptedReader{}
	w := &scriptedWriter{}
	fwd := framing.NewForwarder(framing.NewReadPump(r, readCodec), framing.NewWritePump(w, writeCodec))

	frame, err := fwd.ForwardOnce()
	if frame != nil || err != nil {
		t.Fatalf("ForwardOnce() = (%v, %v), want (nil, nil)", frame, err)
	}
}

func TestForwarderRetriesPendingFrameOnWriteBackpressure(t *testing.T) {
	readCodec, _ := framing.NewLengthDelimitedBuilder().Build()
	writeCodec, _ := framing.NewLengthDelimitedBuilder().Build()
	// Exactly one frame available from the source; the reader reports
	// io.EOF if Poll is invoked a second time, which would surface as a
	// (nil, nil) end of stream and mean the pending frame was dropped or
	// re-read instead of retried.
	r := &scriptedReader{steps: []step{
		{b: append([]byte{0, 0, 0, 3}, []byte("abc")...)},
	}}
	w := &scriptedWriter{limit: 0} // never accepts a byte, never drains

	write := framing.NewWritePump(w, writeCodec)
	// Pre-fill the write buffer past BackpressureBoundary so the pending
	// frame's StartSend is rejected on the very first attempt.
	for {
		ok, err := write.StartSend([]byte{'x'})
		if err != nil {
			t.Fatalf("priming StartSend() err = %v", err)
		}
		if !ok {
			break
		}
	}

	fwd := framing.NewForwarder(framing.NewReadPump(r, readCodec), write)

	frame, err := fwd.ForwardOnce()
	if frame != nil || err != framing.ErrWouldBlock {
		t.Fatalf("ForwardOnce() = (%v, %v), want (nil, ErrWouldBlock)", frame, err)
	}

	// Retried without the reader producing another frame: the pending one
	// is held internally, so a second rejection is the only possible
	// outcome here, not an EOF from re-reading an exhausted source.
	frame, err = fwd.ForwardOnce()
	if frame != nil || err != framing.ErrWouldBlock {
		t.Fatalf("retry ForwardOnce() = (%v, %v), want (nil, ErrWouldBlock)", frame, err)
	}
}
