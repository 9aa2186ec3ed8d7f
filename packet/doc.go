// SPDX-License-Identifier: EPL-2.0

// Package packet implements the binary wire format for a single timestamped
// PCM audio packet.
//
// # Wire Layout
//
// All integers are little-endian and booleans take one byte (0 or 1):
//
//	offset  width  field
//	0x00    4      version (always 1)
//	0x04    8      timestamp, nanoseconds (signed)
//	0x0C    4      channel count
//	0x10    4      sample rate
//	0x14    4      sample format ordinal
//	0x18    1      planar
//	0x19    4      frame count
//	0x1D    1      silence
//	0x1E    1      discontinuity
//	0x1F    4      audio data size
//	0x23    n      audio data
//
// The 35-byte header is followed by exactly "audio data size" bytes. There is
// no magic number, checksum or padding.
//
// # Encoding and Decoding
//
//	b := packet.Encode(p)
//	q, err := packet.Decode(b)
//
// Encode never fails and never modifies its argument; the size field is
// always derived from len(p.AudioData). Decode checks structure only:
//   - ErrTruncatedHeader: fewer than HeaderSize bytes
//   - ErrUnsupportedVersion: version field is not Version
//   - ErrTruncatedPayload: fewer payload bytes than the header declares
//
// Field values are not validated. An unknown sample format ordinal, a zero
// channel count or a payload size that does not match FrameCount*FrameSize
// all decode successfully; it is up to the consumer to reject them.
//
// # Sample Formats
//
// SampleFormat is an open enumeration. SampleSize returns 1, 2, 4 and 4 bytes
// for Unsigned8, Signed16, Signed32 and Float, and 0 for anything else.
//
// # go-audio Interop
//
// IntBuffer and FromIntBuffer convert between packets and
// github.com/go-audio/audio buffers, honouring the planar flag.
//
// All functions are safe for concurrent use on distinct values.
package packet
