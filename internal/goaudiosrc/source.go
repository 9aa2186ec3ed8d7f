// SPDX-License-Identifier: EPL-2.0

// Package goaudiosrc adapts the go-audio wav and aiff decoders to raw PCM
// sources.
package goaudiosrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpkt/packet"
)

// PCMReader is the part of the go-audio wav and aiff decoders a Source needs.
type PCMReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source packs integer samples from a PCMReader into little-endian bytes.
type Source struct {
	dec        PCMReader
	sampleRate int
	channels   int
	bitDepth   int
	bias       int // added to every sample before packing
	format     packet.SampleFormat
	intBuf     *goaudio.IntBuffer
}

// New wraps dec. bias is added to each decoded sample, which lets signed
// 8-bit sources land on the unsigned Unsigned8 scale.
func New(dec PCMReader, bitDepth, bias int) (*Source, error) {
	f := dec.Format()
	if f == nil {
		return nil, packet.ErrMissingFormat
	}

	format, ok := packet.FormatForBitDepth(bitDepth)
	if !ok {
		return nil, fmt.Errorf("%w: %d", packet.ErrUnsupportedBitDepth, bitDepth)
	}

	return &Source{
		dec:        dec,
		sampleRate: f.SampleRate,
		channels:   f.NumChannels,
		bitDepth:   bitDepth,
		bias:       bias,
		format:     format,
	}, nil
}

func (s *Source) SampleRate() int                   { return s.sampleRate }
func (s *Source) Channels() int                     { return s.channels }
func (s *Source) SampleFormat() packet.SampleFormat { return s.format }
func (s *Source) Close() error                      { return nil }

func (s *Source) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	frameSize := s.format.Size() * s.channels
	if frameSize == 0 {
		return 0, io.EOF
	}

	samples := len(dst) / frameSize * s.channels
	if samples == 0 {
		return 0, io.ErrShortBuffer
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < samples {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, samples),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:samples]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	n -= n % s.channels
	if n <= 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("reading PCM: %w", err)
		}
		return 0, io.EOF
	}

	data := s.intBuf.Data[:n]
	if s.bias != 0 {
		for i := range data {
			data[i] += s.bias
		}
	}

	written := packet.PutIntSamples(dst, s.format, data, s.bitDepth)

	if err != nil && !errors.Is(err, io.EOF) {
		return written, fmt.Errorf("reading PCM: %w", err)
	}

	return written, nil
}

// ReadSeeker returns r itself when it can seek, otherwise an in-memory copy.
// The go-audio decoders need to seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
