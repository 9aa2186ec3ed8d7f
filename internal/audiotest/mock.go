// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/audpkt/packet"
	"github.com/ik5/audpkt/utils"
)

// MockSource is a test helper that generates PCM bytes in a chosen sample format.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	format      packet.SampleFormat
	totalFrames int
	generated   int // frames generated so far
	closed      bool
	waveform    func(frame int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// waveform returns a value in [-1,1] for a frame index and channel; it is
// encoded into format on the way out.
func NewMockSource(sampleRate, channels int, format packet.SampleFormat, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		format:      format,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels int, format packet.SampleFormat, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, format, totalFrames, func(int, int) float32 {
		return 0
	})
}

// NewSineSource creates a mock Signed16 source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, packet.Signed16, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels int, format packet.SampleFormat, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, format, totalFrames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int                   { return m.sampleRate }
func (m *MockSource) Channels() int                     { return m.channels }
func (m *MockSource) SampleFormat() packet.SampleFormat { return m.format }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated frame counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) Read(dst []byte) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	size := packet.SampleSize(m.format)
	frameSize := size * m.channels
	if frameSize == 0 {
		return 0, io.EOF
	}
	if len(dst) < frameSize {
		return 0, io.ErrShortBuffer
	}

	framesToWrite := min(len(dst)/frameSize, m.totalFrames-m.generated)

	for frame := range framesToWrite {
		index := m.generated + frame
		for ch := range m.channels {
			off := (frame*m.channels + ch) * size
			PutSample(dst[off:], m.format, m.waveform(index, ch))
		}
	}

	m.generated += framesToWrite
	n := framesToWrite * frameSize

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}

	return n, nil
}

// PutSample encodes a normalized value into b using format f.
func PutSample(b []byte, f packet.SampleFormat, v float32) {
	v = max(-1, min(1, v))

	switch f {
	case packet.Unsigned8:
		b[0] = byte(int(math.Round(float64(v)*127)) + 128)
	case packet.Signed16:
		binary.LittleEndian.PutUint16(b, uint16(utils.Float32ToInt16(v)))
	case packet.Signed32:
		binary.LittleEndian.PutUint32(b, uint32(int32(float64(v)*math.MaxInt32)))
	case packet.Float:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	}
}
