// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"errors"
	"io"
)

var (
	// ErrWouldBlock is returned by an AsyncReader/AsyncWriter (or a pump built
	// on top of one) when the operation cannot make progress right now and
	// the caller should retry once the transport is ready again.
	//
	// It is the control-flow sentinel this package uses in place of a
	// poll-based NotReady value: any byte count returned alongside it is
	// still real progress and must not be discarded.
	ErrWouldBlock = errors.New("framing: would block")

	// ErrInvalidArgument reports a nil transport or an invalid configuration.
	ErrInvalidArgument = errors.New("framing: invalid argument")

	// ErrTooLong reports that a frame's payload length exceeds the
	// configured max_frame_length, or that a varint length field did not
	// terminate within its maximum width.
	ErrTooLong = errors.New("framing: frame too large")

	// ErrInvalidData reports a structurally malformed frame: a decoded
	// length whose post-adjustment value is negative, or (on encode) a
	// payload whose adjusted length does not fit the configured length
	// field.
	ErrInvalidData = errors.New("framing: invalid frame data")

	// ErrWriteZero reports that the transport accepted zero bytes from a
	// non-empty write without signaling ErrWouldBlock — a protocol
	// violation on the transport's part.
	ErrWriteZero = errors.New("framing: transport wrote zero bytes without blocking")

	// ErrUnexpectedEOF reports that the transport reached EOF while a
	// partial frame (header or payload) remained buffered.
	ErrUnexpectedEOF = io.ErrUnexpectedEOF
)
