// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audpkt/audio"
	"github.com/ik5/audpkt/packet"
)

const (
	// go-mp3 always decodes to interleaved stereo 16-bit little-endian
	channels  = 2
	frameSize = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
}

func (s *source) SampleRate() int                   { return s.sampleRate }
func (s *source) Channels() int                     { return channels }
func (s *source) SampleFormat() packet.SampleFormat { return packet.Signed16 }
func (s *source) Close() error                      { return nil }

func (s *source) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) / frameSize * frameSize
	if want == 0 {
		return 0, io.ErrShortBuffer
	}

	// The decoder output is already in wire layout, only frame alignment
	// needs care.
	n, err := io.ReadFull(s.dec, dst[:want])
	n -= n % frameSize

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	default:
		return n, fmt.Errorf("decoding mp3: %w", err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}, nil
}
