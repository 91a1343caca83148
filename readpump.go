// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"io"

	"github.com/pkg/errors"
)

// ReadPump drives a Decoder against an AsyncReader, producing a lazy
// sequence of decoded frames. It is the framing.FramedRead of spec.md §4.3.
//
// ReadPump is not safe for concurrent use: a single instance is meant to be
// owned by one cooperative task, the same way the teacher's framer state
// machine is.
type ReadPump struct {
	r       AsyncReader
	dec     Decoder
	buf     *Buffer
	eofSeen bool
}

// NewReadPump returns a ReadPump reading from r and decoding with dec.
func NewReadPump(r AsyncReader, dec Decoder) *ReadPump {
	return &ReadPump{r: r, dec: dec, buf: NewBuffer(0)}
}

// GetRef returns the underlying AsyncReader.
func (p *ReadPump) GetRef() AsyncReader { return p.r }

// GetMut returns the underlying AsyncReader for mutation (e.g. adjusting
// deadlines on a concrete transport type via a type assertion).
func (p *ReadPump) GetMut() AsyncReader { return p.r }

// Poll attempts to produce the next frame.
//
// Return values, matching spec.md §4.3 exactly:
//   - (frame, nil): a frame was decoded. Poll performs no further read
//     before returning once a frame is available (the "fairness" rule).
//   - (nil, nil): clean end of stream. No more frames will ever be produced
//     by this ReadPump.
//   - (nil, ErrWouldBlock): the transport made no progress; the caller
//     should retry once it becomes ready again.
//   - (nil, err): a terminal error (malformed frame, truncated stream,
//     transport failure). Once returned, further Poll calls may continue to
//     error but are not required to recover.
func (p *ReadPump) Poll() (frame any, err error) {
	for {
		if !p.eofSeen {
			frame, err = p.dec.Decode(p.buf)
			if err != nil {
				return nil, err
			}
			if frame != nil {
				return frame, nil
			}

			n, rerr := p.r.ReadBuf(p.buf)
			if rerr != nil {
				switch {
				case rerr == ErrWouldBlock:
					return nil, ErrWouldBlock
				case errors.Cause(rerr) == io.EOF:
					p.eofSeen = true
				default:
					return nil, rerr
				}
				continue
			}
			if n == 0 {
				p.eofSeen = true
			}
			continue
		}

		frame, err = decodeEOF(p.dec, p.buf)
		if err != nil {
			return nil, err
		}
		return frame, nil
	}
}
