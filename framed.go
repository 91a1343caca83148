// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// Framed fuses a ReadPump and a WritePump over one bidirectional transport
// and a single Codec value that satisfies both Decoder and Encoder, per
// spec.md §4.5. The single codec instance is shared — never cloned or
// split — because the read and write sides never run concurrently within
// one Framed (§5's single-threaded-cooperative-per-instance model).
type Framed struct {
	rw    AsyncReadWriter
	read  *ReadPump
	write *WritePump
}

// NewFramed returns a Framed driving codec over rw.
func NewFramed(rw AsyncReadWriter, codec Codec) *Framed {
	return &Framed{
		rw:    rw,
		read:  NewReadPump(rw, codec),
		write: NewWritePump(rw, codec),
	}
}

// GetRef returns the underlying transport.
func (f *Framed) GetRef() AsyncReadWriter { return f.rw }

// GetMut returns the underlying transport for mutation. Exposed uniformly
// alongside GetRef on Framed, ReadPump, and WritePump, resolving the §9
// open question about asymmetric get_mut exposure in favor of symmetry.
func (f *Framed) GetMut() AsyncReadWriter { return f.rw }

// Poll produces the next inbound frame. See ReadPump.Poll.
func (f *Framed) Poll() (frame any, err error) { return f.read.Poll() }

// StartSend queues an outbound frame. See WritePump.StartSend.
func (f *Framed) StartSend(frame any) (ok bool, err error) { return f.write.StartSend(frame) }

// PollComplete drains and flushes outbound bytes. See WritePump.PollComplete.
func (f *Framed) PollComplete() (ready bool, err error) { return f.write.PollComplete() }
