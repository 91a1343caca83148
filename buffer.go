// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// Buffer is the growable byte buffer owned by a ReadPump or WritePump.
//
// It holds two cursors over a single backing slice: off marks the start of
// the unread region (bytes already consumed by a decoder, or already
// written to the transport, are left behind it) and len(buf) marks the end
// of the filled region. Bytes between off and len(buf) are the "unread"
// bytes a decoder/the transport still needs to see; bytes after len(buf),
// up to cap(buf), are spare capacity a ReadBuf call may fill.
//
// This is the Go analogue of spec.md's "growable buffer": since Go slices
// are always zero-initialized on allocation or growth, there is no
// uninitialized-memory hazard to guard against and therefore no
// prepare_uninitialized_buffer hook — Grow always hands back zeroed bytes.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer returns an empty Buffer with the given initial capacity hint.
func NewBuffer(capHint int) *Buffer {
	if capHint < 0 {
		capHint = 0
	}
	return &Buffer{buf: make([]byte, 0, capHint)}
}

// Bytes returns the unread region of the buffer. The slice is invalidated
// by the next call to Grow, Reserve, Advance, or Reset.
func (b *Buffer) Bytes() []byte { return b.buf[b.off:] }

// Len reports the number of unread bytes.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Avail reports the spare capacity available after the filled region
// without reallocating.
func (b *Buffer) Avail() int { return cap(b.buf) - len(b.buf) }

// Advance discards the first n unread bytes, as a decoder does when it
// consumes a frame's bytes from the front of the buffer, or a write pump
// does after writing n bytes to the transport.
func (b *Buffer) Advance(n int) {
	if n <= 0 {
		return
	}
	b.off += n
	if b.off > len(b.buf) {
		b.off = len(b.buf)
	}
	if b.off == len(b.buf) {
		b.Reset()
	} else if b.off > cap(b.buf)/2 {
		// Compact so the unread region stays near the front: bounds the
		// worst-case amount of copying any single Advance can trigger to
		// at most half the backing array, and keeps Reserve's growth
		// decisions based on real remaining headroom.
		n := copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:n]
		b.off = 0
	}
}

// Reset discards all buffered bytes without releasing capacity.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// Reserve ensures the buffer can grow to hold at least n additional unread
// bytes without a further reallocation, without changing Len. Used by the
// length-delimited decoder once a frame's total size is known, so reading
// its payload costs at most one allocation.
func (b *Buffer) Reserve(n int) {
	if n <= 0 || b.Avail() >= n {
		return
	}
	grown := make([]byte, len(b.buf), len(b.buf)+n)
	copy(grown, b.buf)
	b.buf = grown
}

// Grow extends the filled region by n zero bytes and returns a slice over
// exactly those bytes, for callers (other than ReadBuf) that want to append
// known bytes directly, such as an Encoder.
func (b *Buffer) Grow(n int) []byte {
	if n <= 0 {
		return nil
	}
	want := len(b.buf) + n
	if want > cap(b.buf) {
		grown := make([]byte, len(b.buf), growCap(cap(b.buf), want))
		copy(grown, b.buf)
		b.buf = grown
	}
	b.buf = b.buf[:want]
	tail := b.buf[want-n : want]
	clear(tail) // spare capacity may still hold bytes from before a Reset or compaction
	return tail
}

// Append appends p to the filled region, growing as needed. This is the
// primitive Encoder implementations use.
func (b *Buffer) Append(p []byte) {
	copy(b.Grow(len(p)), p)
}

// tailSlice exposes the unfilled tail of the backing array, sized to Avail,
// for AsyncReader.ReadBuf implementations to read directly into.
func (b *Buffer) tailSlice() []byte {
	return b.buf[len(b.buf):cap(b.buf)]
}

// commitTail advances the filled length by n after a ReadBuf call copied n
// bytes into tailSlice.
func (b *Buffer) commitTail(n int) {
	b.buf = b.buf[:len(b.buf)+n]
}

func growCap(have, want int) int {
	if have == 0 {
		have = 64
	}
	for have < want {
		have *= 2
	}
	return have
}
