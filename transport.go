// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"io"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// AsyncReader is a non-blocking byte source. Read behaves like io.Reader
// except that it may return ErrWouldBlock instead of blocking when no bytes
// are currently available; any n returned alongside ErrWouldBlock is real
// progress. ReadBuf reads directly into the unfilled tail of buf, advancing
// its filled length by the number of bytes produced, so pumps can refill a
// growable buffer without an intermediate allocation.
type AsyncReader interface {
	Read(p []byte) (n int, err error)
	ReadBuf(buf *Buffer) (n int, err error)
}

// AsyncWriter is a non-blocking byte sink. Write behaves like io.Writer
// except that it may return ErrWouldBlock. Flush pushes any internally
// buffered bytes to the underlying transport; Shutdown signals a graceful
// close. WriteBuf writes from the head of buf's unread region and advances
// its read cursor by the count written.
type AsyncWriter interface {
	Write(p []byte) (n int, err error)
	Flush() error
	Shutdown() error
	WriteBuf(buf *Buffer) (n int, err error)
}

// AsyncReadWriter groups AsyncReader and AsyncWriter for transports that
// support both directions, such as the halves Framed drives.
type AsyncReadWriter interface {
	AsyncReader
	AsyncWriter
}

// RetryDelay controls how WrapReader/WrapWriter handle ErrWouldBlock from
// the wrapped io.Reader/io.Writer.
//
//   - Negative: non-blocking. ErrWouldBlock is returned to the caller
//     immediately, unchanged. This is the only policy a pump needs, since
//     pumps are themselves designed to be re-polled.
//   - Zero (the zero value of RetryDelay): cooperative yield. runtime.Gosched is called once and the
//     operation is retried.
//   - Positive: sleep for the duration, then retry.
type RetryDelay time.Duration

// Nonblock and Cooperative name the two non-sleeping RetryDelay policies;
// any positive time.Duration is a sleep-and-retry policy.
const (
	Nonblock    RetryDelay = -1
	Cooperative RetryDelay = 0
)

// wrapped adapts a plain io.Reader and/or io.Writer into AsyncReader/
// AsyncWriter. A zero-byte, non-erroring Read on a non-empty buffer is
// reported as io.EOF rather than spun on forever; io.EOF and ErrWouldBlock are passed through unchanged to the pumps, which
// are the layer that assigns them meaning (§4.3/§4.4).
type wrapped struct {
	r     io.Reader
	w     io.Writer
	retry RetryDelay
}

// WrapReader adapts r into an AsyncReader. r must itself return
// ErrWouldBlock (not block) when no data is available; WrapReader's retry
// argument governs what happens when it does.
func WrapReader(r io.Reader, retry RetryDelay) AsyncReader {
	return &wrapped{r: r, retry: retry}
}

// WrapWriter adapts w into an AsyncWriter. w must itself return
// ErrWouldBlock (not block) when it cannot currently accept bytes.
func WrapWriter(w io.Writer, retry RetryDelay) AsyncWriter {
	return &wrapped{w: w, retry: retry}
}

// WrapReadWriter adapts r and w into one AsyncReadWriter using a single retry
// policy for both directions.
func WrapReadWriter(r io.Reader, w io.Writer, retry RetryDelay) AsyncReadWriter {
	return &wrapped{r: r, w: w, retry: retry}
}

func (w *wrapped) waitOnceOnWouldBlock() bool {
	switch {
	case w.retry < 0:
		return false
	case w.retry == 0:
		runtime.Gosched()
		return true
	default:
		time.Sleep(time.Duration(w.retry))
		return true
	}
}

func (w *wrapped) Read(p []byte) (n int, err error) {
	if w.r == nil {
		return 0, ErrInvalidArgument
	}
	for {
		n, err = w.r.Read(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.EOF
		}
		if n > 0 || err != ErrWouldBlock {
			if err != nil && err != io.EOF && err != ErrWouldBlock {
				err = errors.WithStack(err)
			}
			return n, err
		}
		if !w.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

func (w *wrapped) ReadBuf(buf *Buffer) (n int, err error) {
	if w.r == nil {
		return 0, ErrInvalidArgument
	}
	if buf.Avail() == 0 {
		buf.Reserve(minReadChunk)
	}
	n, err = w.Read(buf.tailSlice())
	if n > 0 {
		buf.commitTail(n)
	}
	return n, err
}

func (w *wrapped) Write(p []byte) (n int, err error) {
	if w.w == nil {
		return 0, ErrInvalidArgument
	}
	for {
		n, err = w.w.Write(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, ErrWriteZero
		}
		if n > 0 || err != ErrWouldBlock {
			if err != nil && err != ErrWouldBlock {
				err = errors.WithStack(err)
			}
			return n, err
		}
		if !w.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

func (w *wrapped) WriteBuf(buf *Buffer) (n int, err error) {
	if w.w == nil {
		return 0, ErrInvalidArgument
	}
	n, err = w.Write(buf.Bytes())
	if n > 0 {
		buf.Advance(n)
	}
	return n, err
}

func (w *wrapped) Flush() error {
	if f, ok := w.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (w *wrapped) Shutdown() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// minReadChunk is the minimum number of bytes Buffer.Reserve reserves when a
// ReadBuf call finds no spare capacity in the tail.
const minReadChunk = 4096
