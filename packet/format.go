// SPDX-License-Identifier: EPL-2.0

package packet

import "strconv"

// SampleFormat is the wire ordinal of a PCM sample encoding.
//
// It is an open set: values outside the known constants survive a decode
// unchanged and report a Size of 0.
type SampleFormat uint32

const (
	Unsigned8 SampleFormat = iota
	Signed16
	Signed32
	Float
)

// SampleSize returns the byte width of one sample in format f, or 0 when f
// is not a known format.
func SampleSize(f SampleFormat) int {
	switch f {
	case Unsigned8:
		return 1
	case Signed16:
		return 2
	case Signed32, Float:
		return 4
	default:
		return 0
	}
}

func (f SampleFormat) Size() int   { return SampleSize(f) }
func (f SampleFormat) Known() bool { return SampleSize(f) != 0 }

func (f SampleFormat) String() string {
	switch f {
	case Unsigned8:
		return "u8"
	case Signed16:
		return "s16"
	case Signed32:
		return "s32"
	case Float:
		return "f32"
	default:
		return "unknown(" + strconv.FormatUint(uint64(f), 10) + ")"
	}
}
