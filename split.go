// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import "sync"

// Split turns one AsyncReadWriter into independent ReadHalf/WriteHalf
// values sharing ownership of rw, per spec.md §4.7. The two halves may be
// driven from different cooperative tasks; a shared mutex guards rw so one
// half's read is never interleaved with the other's write on the same
// underlying call.
//
// Splitting has overhead (a mutex acquisition per call) that unsplit use of
// an AsyncReadWriter does not pay — use it only when the two directions
// genuinely need independent owners.
func Split(rw AsyncReadWriter) (*ReadHalf, *WriteHalf) {
	shared := &splitState{rw: rw}
	return &ReadHalf{s: shared}, &WriteHalf{s: shared}
}

type splitState struct {
	mu sync.Mutex
	rw AsyncReadWriter
}

// ReadHalf is the read-only capability produced by Split.
type ReadHalf struct{ s *splitState }

// Read implements AsyncReader.
func (h *ReadHalf) Read(p []byte) (int, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.rw.Read(p)
}

// ReadBuf implements AsyncReader.
func (h *ReadHalf) ReadBuf(buf *Buffer) (int, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.rw.ReadBuf(buf)
}

// WriteHalf is the write-only capability produced by Split.
type WriteHalf struct{ s *splitState }

// Write implements AsyncWriter.
func (h *WriteHalf) Write(p []byte) (int, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.rw.Write(p)
}

// WriteBuf implements AsyncWriter.
func (h *WriteHalf) WriteBuf(buf *Buffer) (int, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.rw.WriteBuf(buf)
}

// Flush implements AsyncWriter.
func (h *WriteHalf) Flush() error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.rw.Flush()
}

// Shutdown implements AsyncWriter.
func (h *WriteHalf) Shutdown() error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.rw.Shutdown()
}

var (
	_ AsyncReader = (*ReadHalf)(nil)
	_ AsyncWriter = (*WriteHalf)(nil)
)
