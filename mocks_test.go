// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing_test

import (
	"io"

	"code.hybscloud.com/framing"
)

// step is one scripted result a mock transport hands back on a single call.
type step struct {
	b   []byte
	err error
}

// scriptedReader plays back a fixed sequence of Read results, the same
// technique the teacher's framer_test.go uses for its scriptedReader: each
// step is either some bytes (possibly across several Read calls) or a bare
// error once its bytes are exhausted.
type scriptedReader struct {
	steps []step
	step  int
	off   int
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	for {
		if r.step >= len(r.steps) {
			return 0, io.EOF
		}
		st := r.steps[r.step]
		if len(st.b) == 0 {
			r.step++
			r.off = 0
			return 0, st.err
		}
		if r.off >= len(st.b) {
			r.step++
			r.off = 0
			continue
		}
		n := copy(p, st.b[r.off:])
		r.off += n
		if r.off == len(st.b) && st.err != nil {
			r.step++
			r.off = 0
			return n, st.err
		}
		return n, nil
	}
}

func (r *scriptedReader) ReadBuf(buf *framing.Buffer) (int, error) {
	var scratch [4096]byte
	n, err := r.Read(scratch[:])
	if n > 0 {
		copy(buf.Grow(n), scratch[:n])
	}
	return n, err
}

// unboundedWriteLimit is a scriptedWriter.limit value no test payload here
// comes close to, for scenarios that just want every Write to fully
// succeed. There is no separate "unlimited" sentinel: limit is always the
// literal per-call cap, the same as blockingWriter in transport_test.go, so
// a limit of 0 means exactly what it says — accept nothing.
const unboundedWriteLimit = 1 << 20

// scriptedWriter records everything written and accepts only up to limit
// bytes per call, returning ErrWouldBlock for the rest — modeling a
// transport whose send buffer is momentarily full. A limit of 0 rejects
// every Write outright.
type scriptedWriter struct {
	written    []byte
	limit      int
	flushed    int
	shutdown   bool
	flushErr   error
	shutdownAt error
}

func (w *scriptedWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := w.limit
	if n > len(p) {
		n = len(p)
	}
	if n == 0 {
		return 0, framing.ErrWouldBlock
	}
	w.written = append(w.written, p[:n]...)
	if n < len(p) {
		return n, framing.ErrWouldBlock
	}
	return n, nil
}

func (w *scriptedWriter) WriteBuf(buf *framing.Buffer) (int, error) {
	n, err := w.Write(buf.Bytes())
	if n > 0 {
		buf.Advance(n)
	}
	return n, err
}

func (w *scriptedWriter) Flush() error {
	w.flushed++
	return w.flushErr
}

func (w *scriptedWriter) Shutdown() error {
	w.shutdown = true
	return w.shutdownAt
}

// pairedTransport combines a scriptedReader and scriptedWriter into one
// AsyncReadWriter for tests that need both directions on one value (Framed,
// Split).
type pairedTransport struct {
	*scriptedReader
	*scriptedWriter
}

var (
	_ framing.AsyncReader     = (*scriptedReader)(nil)
	_ framing.AsyncWriter     = (*scriptedWriter)(nil)
	_ framing.AsyncReadWriter = (*pairedTransport)(nil)
)
