// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audpkt/packet"
	"github.com/ik5/audpkt/utils"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated from the source.
const maxEmptyReads = 100

// Resampler streams from src to a target sample rate using cubic
// interpolation. Channel count and sample format are preserved.
// A one-pole low-pass filter runs on the input when downsampling.
//
// When both rates are equal Read passes the source bytes through unchanged.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int
	format   packet.SampleFormat
	size     int // bytes per sample

	// Four frames around the read position:
	// frames[0] = t-1, frames[1] = t, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	primed bool

	pos    float64 // fractional position between frames[1] and frames[2]
	loaded int     // source frames decoded so far
	index  int     // source frame held in frames[1]

	srcBuf []byte
	bufOff int
	bufLen int
	eof    bool
	err    error

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, src.SampleRate())
	}
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetRate, dstRate)
	}

	channels := src.Channels()
	format := src.SampleFormat()
	size := packet.SampleSize(format)
	if size == 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels of %s", ErrInvalidFrameSize, channels, format)
	}

	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		format:      format,
		size:        size,
		srcBuf:      make([]byte, 1024*channels*size),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int                   { return r.dstRate }
func (r *Resampler) Channels() int                     { return r.channels }
func (r *Resampler) SampleFormat() packet.SampleFormat { return r.format }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame decodes the next source frame into dst. It reports false once
// the source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	frameSize := r.channels * r.size

	for empty := 0; r.bufOff >= r.bufLen; empty++ {
		if r.eof {
			return false, nil
		}
		if empty >= maxEmptyReads {
			return false, io.ErrNoProgress
		}

		n, err := r.src.Read(r.srcBuf)
		n -= n % frameSize
		r.bufOff, r.bufLen = 0, n

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			r.eof = true
		default:
			return false, fmt.Errorf("reading source: %w", err)
		}
	}

	frame := r.srcBuf[r.bufOff : r.bufOff+frameSize]
	for c := range r.channels {
		dst[c] = decodeSample(frame[c*r.size:], r.format)
	}
	r.bufOff += frameSize

	if r.useFilter {
		if r.loaded == 0 {
			// Start from the first frame to avoid a warm-up transient
			copy(r.filterState, dst)
		}
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	r.loaded++
	return true, nil
}

// load fills slot i with the next source frame, or repeats slot i-1 at the
// end of the stream.
func (r *Resampler) load(i int) error {
	ok, err := r.nextFrame(r.frames[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[i], r.frames[i-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.frames[1])
	if err != nil || !ok {
		return err
	}
	copy(r.frames[0], r.frames[1])

	if err := r.load(2); err != nil {
		return err
	}
	if err := r.load(3); err != nil {
		return err
	}

	r.primed = true
	return nil
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.index++
	return r.load(3)
}

// Read produces frames at the target rate in the source's sample format.
func (r *Resampler) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if r.ratio == 1 {
		return r.src.Read(dst)
	}

	frameSize := r.channels * r.size
	framesNeeded := len(dst) / frameSize
	if framesNeeded == 0 {
		return 0, io.ErrShortBuffer
	}
	if r.err != nil {
		return 0, r.err
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.err = err
			return 0, err
		}
		if !r.primed {
			return 0, io.EOF
		}
	}

	written := 0
	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				r.err = err
				return written * frameSize, err
			}
		}

		// Past the last source frame
		if r.index >= r.loaded {
			break
		}

		alpha := float32(r.pos)
		out := dst[written*frameSize:]
		for c := range r.channels {
			v := utils.CubicInterpolate(r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
			encodeSample(out[c*r.size:], r.format, v)
		}

		written++
		r.pos += r.ratio
	}

	if written == 0 {
		return 0, io.EOF
	}
	return written * frameSize, nil
}

// decodeSample reads one sample of format f as a value in [-1, 1].
func decodeSample(b []byte, f packet.SampleFormat) float32 {
	switch f {
	case packet.Unsigned8:
		return float32(int(b[0])-128) / 128
	case packet.Signed16:
		return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
	case packet.Signed32:
		return float32(float64(int32(binary.LittleEndian.Uint32(b))) / (math.MaxInt32 + 1))
	default:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
}

// encodeSample writes v into b using format f. Integer formats clamp to [-1, 1].
func encodeSample(b []byte, f packet.SampleFormat, v float32) {
	switch f {
	case packet.Unsigned8:
		b[0] = byte(max(0, min(255, int(math.Round(float64(v)*128))+128)))
	case packet.Signed16:
		binary.LittleEndian.PutUint16(b, uint16(utils.Float32ToInt16(v)))
	case packet.Signed32:
		x := max(-1, min(1, float64(v)))
		binary.LittleEndian.PutUint32(b, uint32(int32(math.Round(x*math.MaxInt32))))
	default:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	}
}
