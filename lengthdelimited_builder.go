// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"encoding/binary"

	"code.hybscloud.com/framing/internal/byteorder"
	"github.com/imdario/mergo"
)

// defaultMaxFrameLength is the builder's default max_frame_length: 8 MiB,
// per spec.md §6.3.
const defaultMaxFrameLength = 8 * 1024 * 1024

// LengthDelimitedConfig is the configuration surface of spec.md §6.3. The
// zero value is not a usable configuration on its own — pass a partial
// value to NewLengthDelimitedBuilderFromConfig to merge it over the
// package defaults, or build up a LengthDelimitedBuilder with the With*
// option functions instead.
type LengthDelimitedConfig struct {
	LengthFieldLength int // 1..8; ignored when Varint is set
	LengthFieldOffset int
	LengthAdjustment  int
	NumSkip           int
	NumSkipSet        bool // distinguishes "explicitly 0" from "use the default"
	MaxFrameLength    int64
	Endianness        binary.ByteOrder
	Varint            bool
}

func defaultLengthDelimitedConfig() LengthDelimitedConfig {
	return LengthDelimitedConfig{
		LengthFieldLength: 4,
		MaxFrameLength:    defaultMaxFrameLength,
		Endianness:        binary.BigEndian,
	}
}

// LengthDelimitedOption configures a LengthDelimitedBuilder.
type LengthDelimitedOption func(*LengthDelimitedConfig)

// WithLengthFieldLength sets the fixed-width length field's size in bytes
// (1..8). Ignored if WithVarint is also applied.
func WithLengthFieldLength(n int) LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.LengthFieldLength = n }
}

// WithLengthFieldOffset sets the number of header bytes preceding the
// length field.
func WithLengthFieldOffset(n int) LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.LengthFieldOffset = n }
}

// WithLengthAdjustment sets the signed value added to the decoded length
// to produce the payload length.
func WithLengthAdjustment(n int) LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.LengthAdjustment = n }
}

// WithNumSkip overrides the number of leading header bytes discarded before
// a frame is yielded. Without this option it defaults to
// length_field_offset + length_field_length (or, in varint mode, the
// number of bytes the varint itself occupied).
func WithNumSkip(n int) LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.NumSkip, c.NumSkipSet = n, true }
}

// WithMaxFrameLength sets the upper bound on a decoded frame's payload
// length.
func WithMaxFrameLength(n int64) LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.MaxFrameLength = n }
}

// WithBigEndian selects big-endian (network byte order) fixed-width length
// fields. This is the default.
func WithBigEndian() LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.Endianness = binary.BigEndian }
}

// WithLittleEndian selects little-endian fixed-width length fields.
func WithLittleEndian() LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.Endianness = binary.LittleEndian }
}

// WithNativeEndian selects the local machine's native byte order, for
// same-machine transports (pipes, shared memory) where network byte order
// serves no purpose.
func WithNativeEndian() LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.Endianness = byteorder.NativeEndian() }
}

// WithVarint selects a LEB128 variable-length integer length field in
// place of a fixed-width one. Combining WithVarint with a non-zero
// WithLengthFieldOffset or an explicit WithNumSkip is rejected by Build:
// spec.md documents that combination as unspecified upstream.
func WithVarint() LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.Varint = true }
}

// LengthDelimitedBuilder builds LengthDelimitedCodec values, and the
// ReadPump/WritePump/Framed values that use one, from a single
// configuration.
type LengthDelimitedBuilder struct {
	cfg LengthDelimitedConfig
}

// NewLengthDelimitedBuilder returns a builder starting from the package
// defaults (4-byte big-endian length field, zero offset/adjustment, 8 MiB
// max frame length), with opts applied in order.
func NewLengthDelimitedBuilder(opts ...LengthDelimitedOption) *LengthDelimitedBuilder {
	cfg := defaultLengthDelimitedConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LengthDelimitedBuilder{cfg: cfg}
}

// NewLengthDelimitedBuilderFromConfig merges partial over the package
// defaults — any non-zero field in partial overrides the default, and
// fields left at their zero value keep the default — then returns a
// builder over the result. This lets a caller configure the codec with a
// single struct literal instead of a chain of option calls.
func NewLengthDelimitedBuilderFromConfig(partial LengthDelimitedConfig) (*LengthDelimitedBuilder, error) {
	cfg := defaultLengthDelimitedConfig()
	if err := mergo.Merge(&cfg, partial, mergo.WithOverride); err != nil {
		return nil, err
	}
	return &LengthDelimitedBuilder{cfg: cfg}, nil
}

// Build validates the accumulated configuration and returns a fresh
// LengthDelimitedCodec. Each call returns an independent codec with its own
// decode state.
func (b *LengthDelimitedBuilder) Build() (*LengthDelimitedCodec, error) {
	cfg := b.cfg

	if cfg.MaxFrameLength <= 0 {
		return nil, ErrInvalidArgument
	}
	if cfg.LengthFieldOffset < 0 {
		return nil, ErrInvalidArgument
	}

	if cfg.Varint {
		if cfg.LengthFieldOffset != 0 || cfg.NumSkipSet {
			// Unspecified upstream combination; spec.md §9 resolves this
			// open question in favor of rejecting it outright.
			return nil, ErrInvalidArgument
		}
	} else if cfg.LengthFieldLength < 1 || cfg.LengthFieldLength > 8 {
		return nil, ErrInvalidArgument
	}

	order := cfg.Endianness
	if order == nil {
		order = binary.BigEndian
	}

	return &LengthDelimitedCodec{
		fieldLength:    cfg.LengthFieldLength,
		fieldOffset:    cfg.LengthFieldOffset,
		adjustment:     cfg.LengthAdjustment,
		numSkip:        cfg.NumSkip,
		numSkipSet:     cfg.NumSkipSet,
		varint:         cfg.Varint,
		order:          order,
		maxFrameLength: cfg.MaxFrameLength,
		state:          stateHead,
	}, nil
}

// NewRead builds a codec and returns a ReadPump driving it over r.
func (b *LengthDelimitedBuilder) NewRead(r AsyncReader) (*ReadPump, error) {
	codec, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewReadPump(r, codec), nil
}

// NewWrite builds a codec and returns a WritePump driving it over w.
func (b *LengthDelimitedBuilder) NewWrite(w AsyncWriter) (*WritePump, error) {
	codec, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewWritePump(w, codec), nil
}

// NewFramed builds a codec and returns a Framed driving it over rw.
func (b *LengthDelimitedBuilder) NewFramed(rw AsyncReadWriter) (*Framed, error) {
	codec, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewFramed(rw, codec), nil
}
