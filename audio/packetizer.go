// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ik5/audpkt/packet"
)

// Packetizer cuts a Source into packets of a fixed number of frames.
//
// Timestamps advance by the play time of the frames already emitted, starting
// at startNanos. Only the first packet is marked as a discontinuity. The last
// packet may be short; a trailing partial frame is dropped.
type Packetizer struct {
	src             Source
	framesPerPacket int
	frameSize       int
	sampleRate      uint64
	startNanos      int64

	frames uint64 // frames emitted so far
	buf    []byte
	done   bool
	err    error // source error held back until buffered frames are out
}

// NewPacketizer reads src in packets of framesPerPacket frames, stamping the
// first one at startNanos. The payload of a full packet must fit the 32-bit
// size field.
func NewPacketizer(src Source, framesPerPacket int, startNanos int64) (*Packetizer, error) {
	if framesPerPacket <= 0 {
		return nil, ErrInvalidPacketSize
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, src.SampleRate())
	}

	frameSize := packet.SampleSize(src.SampleFormat()) * src.Channels()
	if frameSize <= 0 {
		return nil, fmt.Errorf("%w: %d channels of %s", ErrInvalidFrameSize, src.Channels(), src.SampleFormat())
	}

	if uint64(framesPerPacket) > math.MaxUint32/uint64(frameSize) {
		return nil, fmt.Errorf("%w: %d frames of %d bytes", ErrInvalidPacketSize, framesPerPacket, frameSize)
	}

	return &Packetizer{
		src:             src,
		framesPerPacket: framesPerPacket,
		frameSize:       frameSize,
		sampleRate:      uint64(src.SampleRate()),
		startNanos:      startNanos,
		buf:             make([]byte, framesPerPacket*frameSize),
	}, nil
}

// offset converts a frame count to nanoseconds without overflowing on long streams.
func (p *Packetizer) offset(frames uint64) int64 {
	secs := frames / p.sampleRate
	rem := frames % p.sampleRate
	return int64(secs*uint64(time.Second) + rem*uint64(time.Second)/p.sampleRate)
}

// ReadPacket returns the next packet, or io.EOF once the source is drained.
//
// A source error is returned after the whole frames read before it have been
// delivered, and on every call after that.
func (p *Packetizer) ReadPacket() (packet.AudioPacket, error) {
	if p.err != nil {
		return packet.AudioPacket{}, p.err
	}
	if p.done {
		return packet.AudioPacket{}, io.EOF
	}

	n, err := io.ReadFull(p.src, p.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		p.done = true
	default:
		p.err = fmt.Errorf("reading source: %w", err)
	}

	frames := n / p.frameSize
	if frames == 0 {
		if p.err != nil {
			return packet.AudioPacket{}, p.err
		}
		p.done = true
		return packet.AudioPacket{}, io.EOF
	}

	data := make([]byte, frames*p.frameSize)
	copy(data, p.buf)

	format := p.src.SampleFormat()
	pkt := packet.AudioPacket{
		Version:        packet.Version,
		TimestampNanos: p.startNanos + p.offset(p.frames),
		ChannelCount:   uint32(p.src.Channels()),
		SampleRate:     uint32(p.sampleRate),
		SampleFormat:   format,
		FrameCount:     uint32(frames),
		Silence:        packet.IsSilent(format, data),
		Discontinuity:  p.frames == 0,
		AudioDataSize:  uint32(len(data)),
		AudioData:      data,
	}

	p.frames += uint64(frames)

	return pkt, nil
}

// Close closes the source.
func (p *Packetizer) Close() error {
	err := p.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Copy moves packets from src to dst until src returns io.EOF and reports
// how many packets were written.
func Copy(dst PacketWriter, src PacketReader) (int, error) {
	count := 0
	for {
		p, err := src.ReadPacket()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		if err := dst.WritePacket(p); err != nil {
			return count, fmt.Errorf("writing packet %d: %w", count, err)
		}
		count++
	}
}
