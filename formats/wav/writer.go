// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/audpkt/packet"
)

// PacketWriter writes the payloads of consecutive packets into a single WAV
// file. The first packet fixes the channel count, sample rate and sample
// format; Float payloads are stored as 16-bit PCM. Planar packets are
// interleaved on the way in.
type PacketWriter struct {
	w   io.WriteSeeker
	enc *wav.Encoder

	channels   uint32
	sampleRate uint32
	format     packet.SampleFormat
	frames     int
}

func NewPacketWriter(w io.WriteSeeker) *PacketWriter {
	return &PacketWriter{w: w}
}

func (pw *PacketWriter) WritePacket(p packet.AudioPacket) error {
	buf, err := p.IntBuffer()
	if err != nil {
		return fmt.Errorf("converting packet: %w", err)
	}

	if pw.enc == nil {
		pw.enc = wav.NewEncoder(pw.w, int(p.SampleRate), buf.SourceBitDepth, int(p.ChannelCount), formatPCM)
		pw.channels = p.ChannelCount
		pw.sampleRate = p.SampleRate
		pw.format = p.SampleFormat
	} else if p.ChannelCount != pw.channels || p.SampleRate != pw.sampleRate || p.SampleFormat != pw.format {
		return fmt.Errorf("%w: got %dch %dHz %s, writing %dch %dHz %s", ErrFormatChanged,
			p.ChannelCount, p.SampleRate, p.SampleFormat, pw.channels, pw.sampleRate, pw.format)
	}

	if err := pw.enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	pw.frames += buf.NumFrames()

	return nil
}

// Frames reports how many frames were written.
func (pw *PacketWriter) Frames() int { return pw.frames }

// Close patches the WAV headers. The underlying writer is not closed. If no
// packet was written nothing is written at all.
func (pw *PacketWriter) Close() error {
	if pw.enc == nil {
		return nil
	}

	if err := pw.enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}
