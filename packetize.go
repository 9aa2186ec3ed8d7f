// SPDX-License-Identifier: EPL-2.0

package audpkt

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audpkt/audio"
	"github.com/ik5/audpkt/formats/aiff"
	"github.com/ik5/audpkt/formats/mp3"
	"github.com/ik5/audpkt/formats/vorbis"
	"github.com/ik5/audpkt/formats/wav"
	"github.com/ik5/audpkt/packet"
)

// NewRegistry returns a registry keyed by file extension with all bundled
// decoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// PacketizeSource reads src to the end and returns one encoded packet per
// framesPerPacket frames. The first packet is stamped at zero.
//
// The source is not closed.
func PacketizeSource(src audio.Source, framesPerPacket int) ([][]byte, error) {
	pz, err := audio.NewPacketizer(src, framesPerPacket, 0)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var frames [][]byte
	for {
		p, err := pz.ReadPacket()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", len(frames), err)
		}

		frames = append(frames, packet.Encode(p))
	}
}

// PacketizeSourceAt is PacketizeSource with src first resampled to
// sampleRate. A source already at sampleRate is not altered.
//
// The source is not closed.
func PacketizeSourceAt(src audio.Source, sampleRate, framesPerPacket int) ([][]byte, error) {
	r, err := audio.NewResampler(src, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return PacketizeSource(r, framesPerPacket)
}

// DecodePackets decodes every frame or none. The error of the first
// malformed frame is returned together with its index.
func DecodePackets(frames [][]byte) ([]packet.AudioPacket, error) {
	packets := make([]packet.AudioPacket, 0, len(frames))
	for i, b := range frames {
		p, err := packet.Decode(b)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		packets = append(packets, p)
	}

	return packets, nil
}
