// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ik5/audpkt/audio"
	"github.com/ik5/audpkt/packet"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing. Like the
// real reader it returns a count of values, always a multiple of channels.
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisReader) Channels() int {
	return m.channels
}

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	framesToRead := min(len(buf)/m.channels, (len(m.samples)-m.offset)/m.channels)
	valuesToRead := framesToRead * m.channels
	copy(buf, m.samples[m.offset:m.offset+valuesToRead])
	m.offset += valuesToRead

	if m.offset >= len(m.samples) {
		return valuesToRead, io.EOF
	}

	return valuesToRead, nil
}

func newTestSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func floats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func readAll(t *testing.T, src audio.Source, chunk int) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, chunk)
	for {
		n, err := src.Read(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not OGG Vorbis data")))
	if !errors.Is(err, ErrNotOggVorbis) {
		t.Errorf("Decode() error = %v, want ErrNotOggVorbis", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	if !errors.Is(err, ErrNotOggVorbis) {
		t.Errorf("Decode() error = %v, want ErrNotOggVorbis", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 48000, channels: 6})

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 6 {
		t.Errorf("Channels() = %d, want 6", src.Channels())
	}
	if src.SampleFormat() != packet.Float {
		t.Errorf("SampleFormat() = %v, want f32", src.SampleFormat())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_FloatBytes(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25, 1.5, -2}
	src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})

	got := floats(readAll(t, src, 1024))
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_ValueCountNotFrames(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 3*50)
	for i := range samples {
		samples[i] = float32(i) / 1000
	}
	src := newTestSource(&mockOggVorbisReader{sampleRate: 8000, channels: 3, samples: samples})

	// 10 frames per call
	buf := make([]byte, 10*3*4)
	n, err := src.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(buf) {
		t.Errorf("Read() n = %d, want %d", n, len(buf))
	}

	all := append(buf[:n:n], readAll(t, src, len(buf))...)
	if diff := cmp.Diff(samples, floats(all)); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_BufferGrows(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2*5000)
	src := newTestSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: samples})

	n, err := src.Read(make([]byte, len(samples)*4))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(samples)*4 {
		t.Errorf("Read() n = %d, want %d", n, len(samples)*4)
	}
}

func TestSource_EmptyAndShortBuffers(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: make([]float32, 4)})

	if n, err := src.Read(nil); n != 0 || err != nil {
		t.Errorf("Read(nil) = %d, %v, want 0, nil", n, err)
	}
	if _, err := src.Read(make([]byte, 7)); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Read() error = %v, want io.ErrShortBuffer", err)
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: []float32{0.1, 0.2}})
	buf := make([]byte, 64)

	if n, err := src.Read(buf); n != 8 || err != nil {
		t.Errorf("Read() = %d, %v, want 8, nil", n, err)
	}
	for range 2 {
		if n, err := src.Read(buf); n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("Read() = %d, %v, want 0, io.EOF", n, err)
		}
	}
}

func TestSource_DecoderError(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, returnErrors: true})

	if _, err := src.Read(make([]byte, 16)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Read() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_Packetize(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2*1000)
	samples[1500] = 0.1
	src := newTestSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2, samples: samples})

	pz, err := audio.NewPacketizer(src, 480, 0)
	if err != nil {
		t.Fatalf("NewPacketizer() error = %v", err)
	}

	var silence []bool
	for {
		p, err := pz.ReadPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		if p.SampleFormat != packet.Float {
			t.Errorf("SampleFormat = %v, want f32", p.SampleFormat)
		}
		silence = append(silence, p.Silence)
	}

	// Frame 750 sits in the second packet
	if diff := cmp.Diff([]bool{true, false, true}, silence); diff != "" {
		t.Errorf("silence flags mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkSource_Read(b *testing.B) {
	samples := make([]float32, 1<<16)
	buf := make([]byte, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
		for {
			if _, err := src.Read(buf); err != nil {
				break
			}
		}
	}
}
