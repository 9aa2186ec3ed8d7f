// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audpkt/audio"
	"github.com/ik5/audpkt/packet"
	"github.com/jfreymuth/oggvorbis"
)

const sampleSize = 4

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	values     []float32 // interleaved decoder output
}

func (s *source) SampleRate() int                   { return s.sampleRate }
func (s *source) Channels() int                     { return s.channels }
func (s *source) SampleFormat() packet.SampleFormat { return packet.Float }
func (s *source) Close() error                      { return nil }

func (s *source) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.channels <= 0 {
		return 0, io.EOF
	}

	// oggvorbis.Reader.Read() counts values (frames * channels), not frames
	want := len(dst) / (sampleSize * s.channels) * s.channels
	if want == 0 {
		return 0, io.ErrShortBuffer
	}

	if cap(s.values) < want {
		s.values = make([]float32, want)
	}
	s.values = s.values[:want]

	n, err := s.dec.Read(s.values)
	n -= n % s.channels

	for i, v := range s.values[:n] {
		binary.LittleEndian.PutUint32(dst[i*sampleSize:], math.Float32bits(v))
	}

	switch {
	case err == nil:
		return n * sampleSize, nil
	case errors.Is(err, io.EOF):
		if n == 0 {
			return 0, io.EOF
		}
		return n * sampleSize, nil
	default:
		return n * sampleSize, fmt.Errorf("decoding vorbis: %w", err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbis, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		values:     make([]float32, 4096),
	}, nil
}
