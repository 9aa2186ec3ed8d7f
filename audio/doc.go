// SPDX-License-Identifier: EPL-2.0

// Package audio turns decoded PCM streams into wire packets.
//
// This package contains the building blocks between a file decoder and the
// packet codec:
//   - Source interface for raw PCM input
//   - Format registry for decoder registration
//   - Packetizer for cutting a Source into packet.AudioPacket values
//   - Resampler for sample rate conversion
//   - MonoMixer for channel downmixing
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    SampleFormat() packet.SampleFormat
//	    Read(dst []byte) (int, error)
//	    Close() error
//	}
//
// Read returns interleaved little-endian samples in SampleFormat, whole
// frames at a time, with io.Reader semantics. The bytes can be copied
// straight into a packet payload.
//
// # Packetizing
//
//	pz, err := audio.NewPacketizer(src, 480, 0)
//	for {
//	    p, err := pz.ReadPacket()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    b := packet.Encode(p)
//	    // send b
//	}
//
// Every packet holds framesPerPacket frames except possibly the last.
// Timestamps advance by the play time of the frames already emitted; the
// first packet is flagged as a discontinuity and silent payloads are
// flagged as silence.
//
// Copy drains any PacketReader into a PacketWriter such as the WAV sink in
// formats/wav.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Resampling
//
//	res, err := audio.NewResampler(src, 48000)
//
// Resampler uses cubic interpolation and keeps the channel count and sample
// format. Downsampling runs a simple low-pass filter first. A source already
// at the target rate is passed through byte for byte.
//
// # Channel Mixing
//
// MonoMixer averages all channels of a frame without changing the sample
// format, so a stereo Signed16 source becomes a mono Signed16 source.
package audio
