// SPDX-License-Identifier: EPL-2.0

package packet

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/audpkt/internal/bytestream"
)

// Version is the only wire layout revision this package reads or writes.
const Version = 1

const (
	widthUint32 = 4
	widthInt64  = 8
	widthBool   = 1
)

// HeaderSize is the fixed part of an encoded packet:
// version(4) + timestamp(8) + channels(4) + rate(4) + format(4) + planar(1) +
// frames(4) + silence(1) + discontinuity(1) + dataSize(4) = 35
const HeaderSize = widthUint32 + widthInt64 + 3*widthUint32 + widthBool +
	widthUint32 + 2*widthBool + widthUint32

// Fails to compile unless HeaderSize == 0x23.
const (
	_ uint = HeaderSize - 0x23
	_ uint = 0x23 - HeaderSize
)

// AudioPacket is one timestamped block of PCM audio plus its format.
type AudioPacket struct {
	Version        uint32
	TimestampNanos int64

	ChannelCount uint32
	SampleRate   uint32
	SampleFormat SampleFormat
	IsPlanar     bool

	FrameCount    uint32
	Silence       bool
	Discontinuity bool

	// AudioDataSize is filled by Decode. Encode ignores it and writes
	// len(AudioData) instead.
	AudioDataSize uint32

	// AudioData is always the last field on the wire.
	AudioData []byte
}

// FrameSize is the byte width of one frame (one sample per channel). It is 0
// for unknown sample formats or a zero channel count.
func (p AudioPacket) FrameSize() int {
	return SampleSize(p.SampleFormat) * int(p.ChannelCount)
}

// Timestamp is TimestampNanos as a time.Duration. The zero point is chosen by
// the producer and carries no meaning on the wire.
func (p AudioPacket) Timestamp() time.Duration {
	return time.Duration(p.TimestampNanos)
}

// Duration is the play time covered by FrameCount, or 0 when SampleRate is 0.
func (p AudioPacket) Duration() time.Duration {
	if p.SampleRate == 0 {
		return 0
	}
	return time.Duration(uint64(p.FrameCount) * uint64(time.Second) / uint64(p.SampleRate))
}

func (p AudioPacket) String() string {
	return fmt.Sprintf("packet v%d ts=%s %dch %dHz %s planar=%t frames=%d silence=%t discontinuity=%t bytes=%d",
		p.Version, p.Timestamp(), p.ChannelCount, p.SampleRate, p.SampleFormat,
		p.IsPlanar, p.FrameCount, p.Silence, p.Discontinuity, len(p.AudioData))
}

type field struct {
	name  string
	width int
	put   func(w *bytestream.Writer, p *AudioPacket)
	get   func(r *bytestream.Reader, p *AudioPacket)
}

// layout is the wire order of the fixed header. Offsets are derived from the
// widths; the version field must stay first.
var layout = [...]field{
	{"version", widthUint32,
		func(w *bytestream.Writer, _ *AudioPacket) { w.PutUint32(Version) },
		func(r *bytestream.Reader, p *AudioPacket) { p.Version = r.Uint32() }},
	{"timestamp", widthInt64,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutInt64(p.TimestampNanos) },
		func(r *bytestream.Reader, p *AudioPacket) { p.TimestampNanos = r.Int64() }},
	{"channelCount", widthUint32,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutUint32(p.ChannelCount) },
		func(r *bytestream.Reader, p *AudioPacket) { p.ChannelCount = r.Uint32() }},
	{"sampleRate", widthUint32,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutUint32(p.SampleRate) },
		func(r *bytestream.Reader, p *AudioPacket) { p.SampleRate = r.Uint32() }},
	{"sampleFormat", widthUint32,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutUint32(uint32(p.SampleFormat)) },
		func(r *bytestream.Reader, p *AudioPacket) { p.SampleFormat = SampleFormat(r.Uint32()) }},
	{"isPlanar", widthBool,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutBool(p.IsPlanar) },
		func(r *bytestream.Reader, p *AudioPacket) { p.IsPlanar = r.Bool() }},
	{"frameCount", widthUint32,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutUint32(p.FrameCount) },
		func(r *bytestream.Reader, p *AudioPacket) { p.FrameCount = r.Uint32() }},
	{"silence", widthBool,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutBool(p.Silence) },
		func(r *bytestream.Reader, p *AudioPacket) { p.Silence = r.Bool() }},
	{"discontinuity", widthBool,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutBool(p.Discontinuity) },
		func(r *bytestream.Reader, p *AudioPacket) { p.Discontinuity = r.Bool() }},
	{"audioDataSize", widthUint32,
		func(w *bytestream.Writer, p *AudioPacket) { w.PutUint32(p.AudioDataSize) },
		func(r *bytestream.Reader, p *AudioPacket) { p.AudioDataSize = r.Uint32() }},
}

var offsets = func() map[string]int {
	m := make(map[string]int, len(layout)+1)
	off := 0
	for _, f := range layout {
		m[f.name] = off
		off += f.width
	}
	m["audioData"] = off
	return m
}()

// Offset reports the byte offset of a named wire field.
func Offset(name string) (int, bool) {
	off, ok := offsets[name]
	return off, ok
}

// Encode returns the wire form of p in a freshly allocated buffer.
// p itself is not modified; the size field is taken from len(p.AudioData).
//
// AudioData must be shorter than 4 GiB, the limit of the 32-bit size field.
// Encode returns nil for a larger payload.
func Encode(p AudioPacket) []byte {
	if _, err := payloadSize(len(p.AudioData)); err != nil {
		return nil
	}

	b, _ := p.AppendBinary(make([]byte, 0, HeaderSize+len(p.AudioData)))
	return b
}

func payloadSize(n int) (uint32, error) {
	if uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, n)
	}
	return uint32(n), nil
}

// AppendBinary appends the wire form of p to b. It fails only with
// ErrPayloadTooLarge, leaving b untouched.
func (p AudioPacket) AppendBinary(b []byte) ([]byte, error) {
	size, err := payloadSize(len(p.AudioData))
	if err != nil {
		return b, err
	}
	p.AudioDataSize = size

	w := bytestream.NewAppendWriter(b)
	for _, f := range layout {
		f.put(w, &p)
	}
	w.PutBytes(p.AudioData)

	return w.Bytes(), nil
}

// MarshalBinary returns the same bytes as Encode, as a fresh buffer. It fails
// only with ErrPayloadTooLarge.
func (p AudioPacket) MarshalBinary() ([]byte, error) {
	if _, err := payloadSize(len(p.AudioData)); err != nil {
		return nil, err
	}
	return Encode(p), nil
}

// Decode parses one packet from b.
//
// Only structure is checked: the header length, the version and that the
// payload is fully present. Bytes after the payload are ignored.
func Decode(b []byte) (AudioPacket, error) {
	if len(b) < HeaderSize {
		return AudioPacket{}, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedHeader, len(b), HeaderSize)
	}

	var p AudioPacket
	r := bytestream.NewReader(b)

	layout[0].get(r, &p)
	if p.Version != Version {
		return AudioPacket{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, p.Version)
	}

	for _, f := range layout[1:] {
		f.get(r, &p)
	}

	if uint64(r.Remaining()) < uint64(p.AudioDataSize) {
		return AudioPacket{}, fmt.Errorf("%w: header declares %d bytes, %d present",
			ErrTruncatedPayload, p.AudioDataSize, r.Remaining())
	}

	p.AudioData = r.Bytes(int(p.AudioDataSize))
	if err := r.Err(); err != nil {
		return AudioPacket{}, err
	}

	return p, nil
}

// UnmarshalBinary decodes b into p. On error p is left unchanged.
func (p *AudioPacket) UnmarshalBinary(b []byte) error {
	decoded, err := Decode(b)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
