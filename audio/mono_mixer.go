// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audpkt/packet"
)

// MonoMixer averages the channels of every frame, keeping the source's
// sample format and rate.
type MonoMixer struct {
	src Source
	tmp []byte
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]byte, 4096),
	}
}

func (m *MonoMixer) SampleRate() int                   { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int                     { return 1 }
func (m *MonoMixer) SampleFormat() packet.SampleFormat { return m.src.SampleFormat() }

func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.Read(dst)
	}

	format := m.src.SampleFormat()
	size := packet.SampleSize(format)
	if size == 0 || channels <= 0 {
		return 0, fmt.Errorf("%w: %d channels of %s", ErrInvalidFrameSize, channels, format)
	}

	frames := len(dst) / size
	needed := frames * channels * size

	// Grow only, never shrink
	if cap(m.tmp) < needed {
		m.tmp = make([]byte, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.Read(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / (channels * size)

	for f := range frames {
		frame := m.tmp[f*channels*size:]
		out := dst[f*size:]

		switch format {
		case packet.Unsigned8:
			sum := 0
			for c := range channels {
				sum += int(frame[c])
			}
			out[0] = byte(sum / channels)
		case packet.Signed16:
			sum := 0
			for c := range channels {
				sum += int(int16(binary.LittleEndian.Uint16(frame[c*2:])))
			}
			binary.LittleEndian.PutUint16(out, uint16(int16(sum/channels)))
		case packet.Signed32:
			var sum int64
			for c := range channels {
				sum += int64(int32(binary.LittleEndian.Uint32(frame[c*4:])))
			}
			binary.LittleEndian.PutUint32(out, uint32(int32(sum/int64(channels))))
		case packet.Float:
			var sum float64
			for c := range channels {
				sum += float64(math.Float32frombits(binary.LittleEndian.Uint32(frame[c*4:])))
			}
			binary.LittleEndian.PutUint32(out, math.Float32bits(float32(sum/float64(channels))))
		}
	}

	return frames * size, err
}
