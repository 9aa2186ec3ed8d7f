// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/audpkt/audio"
	"github.com/ik5/audpkt/internal/goaudiosrc"
	"github.com/ik5/audpkt/packet"
)

const formatPCM = 1

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := goaudiosrc.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	bits := int(dec.BitDepth)
	if _, ok := packet.FormatForBitDepth(bits); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	// 8-bit WAV is already unsigned
	src, err := goaudiosrc.New(dec, bits, 0)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return src, nil
}
