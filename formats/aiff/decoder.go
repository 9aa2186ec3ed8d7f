// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audpkt/audio"
	"github.com/ik5/audpkt/internal/goaudiosrc"
	"github.com/ik5/audpkt/packet"
)

// AIFF 8-bit samples are signed; the wire format's 8-bit samples are not.
const unsigned8Bias = 128

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := goaudiosrc.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	return newSource(dec, int(dec.BitDepth))
}

func newSource(dec goaudiosrc.PCMReader, bits int) (audio.Source, error) {
	if _, ok := packet.FormatForBitDepth(bits); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	bias := 0
	if bits == 8 {
		bias = unsigned8Bias
	}

	src, err := goaudiosrc.New(dec, bits, bias)
	if errors.Is(err, packet.ErrMissingFormat) {
		return nil, ErrUnsupportedAiffLayout
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return src, nil
}
