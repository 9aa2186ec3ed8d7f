// SPDX-License-Identifier: EPL-2.0

package packet

import (
	"encoding/binary"
	"fmt"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpkt/utils"
)

// FormatForBitDepth picks the wire format that holds integer PCM of the
// given bit depth. 24-bit samples are carried left-justified in Signed32.
func FormatForBitDepth(bits int) (SampleFormat, bool) {
	switch bits {
	case 8:
		return Unsigned8, true
	case 16:
		return Signed16, true
	case 24, 32:
		return Signed32, true
	default:
		return 0, false
	}
}

// PutIntSamples packs integer samples of srcBitDepth into dst using format f
// and returns the number of bytes written. Unsigned8 expects values already
// in the 0..255 range.
func PutIntSamples(dst []byte, f SampleFormat, samples []int, srcBitDepth int) int {
	size := f.Size()
	if size == 0 {
		return 0
	}
	if srcBitDepth <= 0 {
		srcBitDepth = 16
	}

	n := min(len(samples), len(dst)/size)
	for i := range n {
		v := samples[i]
		b := dst[i*size:]

		switch f {
		case Unsigned8:
			b[0] = byte(v)
		case Signed16:
			binary.LittleEndian.PutUint16(b, uint16(int16(v)))
		case Signed32:
			if srcBitDepth == 24 {
				v <<= 8
			}
			binary.LittleEndian.PutUint32(b, uint32(int32(v)))
		case Float:
			var x float32
			if srcBitDepth == 16 {
				x = utils.Int16ToFloat32(int16(v))
			} else {
				x = float32(v) / float32(int64(1)<<(srcBitDepth-1))
			}
			binary.LittleEndian.PutUint32(b, math.Float32bits(x))
		}
	}

	return n * size
}

func sampleAt(b []byte, f SampleFormat) int {
	switch f {
	case Unsigned8:
		return int(b[0])
	case Signed16:
		return int(int16(binary.LittleEndian.Uint16(b)))
	case Signed32:
		return int(int32(binary.LittleEndian.Uint32(b)))
	default:
		return int(utils.Float32ToInt16(math.Float32frombits(binary.LittleEndian.Uint32(b))))
	}
}

// IntBuffer converts the payload to an interleaved go-audio buffer.
//
// Planar payloads are interleaved. Float samples are scaled to 16-bit.
// Trailing bytes that do not form a whole frame are dropped.
func (p AudioPacket) IntBuffer() (*goaudio.IntBuffer, error) {
	size := p.SampleFormat.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSampleFormat, p.SampleFormat)
	}

	frameSize := p.FrameSize()
	if frameSize == 0 {
		return nil, ErrZeroFrameSize
	}

	channels := int(p.ChannelCount)
	frames := len(p.AudioData) / frameSize
	data := make([]int, frames*channels)

	for f := range frames {
		for c := range channels {
			var off int
			if p.IsPlanar {
				off = (c*frames + f) * size
			} else {
				off = (f*channels + c) * size
			}
			data[f*channels+c] = sampleAt(p.AudioData[off:], p.SampleFormat)
		}
	}

	bitDepth := size * 8
	if p.SampleFormat == Float {
		bitDepth = 16
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  int(p.SampleRate),
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}

// FromIntBuffer builds an interleaved packet from a go-audio buffer. A zero
// SourceBitDepth is treated as 16-bit.
func FromIntBuffer(buf *goaudio.IntBuffer, timestampNanos int64) (AudioPacket, error) {
	if buf == nil || buf.Format == nil {
		return AudioPacket{}, ErrMissingFormat
	}

	bits := buf.SourceBitDepth
	if bits == 0 {
		bits = 16
	}

	f, ok := FormatForBitDepth(bits)
	if !ok {
		return AudioPacket{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return AudioPacket{}, ErrZeroFrameSize
	}

	frames := len(buf.Data) / channels
	data := make([]byte, frames*channels*f.Size())
	PutIntSamples(data, f, buf.Data[:frames*channels], bits)

	return AudioPacket{
		Version:        Version,
		TimestampNanos: timestampNanos,
		ChannelCount:   uint32(channels),
		SampleRate:     uint32(buf.Format.SampleRate),
		SampleFormat:   f,
		FrameCount:     uint32(frames),
		Silence:        IsSilent(f, data),
		AudioDataSize:  uint32(len(data)),
		AudioData:      data,
	}, nil
}

// IsSilent reports whether every sample in data sits at the zero level of
// format f: 0x80 for Unsigned8, all-zero bytes otherwise. Unknown formats
// are never silent.
func IsSilent(f SampleFormat, data []byte) bool {
	if !f.Known() {
		return false
	}

	var zero byte
	if f == Unsigned8 {
		zero = 0x80
	}

	for _, b := range data {
		if b != zero {
			return false
		}
	}
	return true
}
