// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import "code.hybscloud.com/framing/internal/byteorder"

// Transport presets bundle the length-field byte order convention a
// transport is normally paired with, so callers configuring a
// LengthDelimitedBuilder for a known transport don't have to restate it.
//
// Byte-order policy:
//   - Network-named presets (TCP, Unix) use BigEndian (network byte order).
//   - Local uses the machine's native byte order, since same-machine
//     transports (pipes, shared memory) have no wire to be network-neutral
//     over and native order skips a byte-swap on every frame.
//
// These presets only set byte order; they leave length field width, offset,
// adjustment, and max frame length at the builder's current values, so they
// compose with the other With* options in any order.

// WithTCP configures big-endian length fields, the conventional choice for
// framing over a TCP stream.
func WithTCP() LengthDelimitedOption { return WithBigEndian() }

// WithUnix configures big-endian length fields, for Unix domain stream
// sockets.
func WithUnix() LengthDelimitedOption { return WithBigEndian() }

// WithLocal configures native-byte-order length fields, for same-machine
// transports such as pipes where no other process on the wire needs a
// network-neutral encoding.
func WithLocal() LengthDelimitedOption {
	return func(c *LengthDelimitedConfig) { c.Endianness = byteorder.NativeEndian() }
}
