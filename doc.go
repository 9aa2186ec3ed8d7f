// SPDX-License-Identifier: EPL-2.0

// Package audpkt moves PCM audio through a fixed binary packet format.
//
// The wire format itself lives in the packet subpackage. This package ties
// it to the decoders and the packetizer for the common whole-stream cases.
//
// # Supported Formats
//
// NewRegistry returns a registry with every bundled decoder:
//   - WAV (8/16/24/32-bit PCM) via formats/wav
//   - AIFF (8/16/24/32-bit PCM) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Quick Start
//
//	file, _ := os.Open("audio.wav")
//	src, _ := wav.Decoder{}.Decode(file)
//
//	// 10ms packets at 48kHz, each one encoded
//	frames, err := audpkt.PacketizeSource(src, 480)
//
//	// ... send frames, then on the other side:
//	packets, err := audpkt.DecodePackets(frames)
//
// DecodePackets is all-or-nothing: the first malformed frame fails the call
// and the error names its index.
//
// # Building Blocks
//
// For streaming use the pieces directly:
//
//	pz, _ := audio.NewPacketizer(src, 480, startNanos)
//	p, err := pz.ReadPacket()
//	b := packet.Encode(p)
//	q, err := packet.Decode(b)
package audpkt
