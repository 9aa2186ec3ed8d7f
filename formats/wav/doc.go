// SPDX-License-Identifier: EPL-2.0

// Package wav reads WAV files into packet-ready PCM and writes packets back
// out as WAV.
//
// Both directions use github.com/go-audio/wav.
//
// # Decoding
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//
// Integer PCM of 8, 16, 24 and 32 bits is supported. The source reports
// the matching packet sample format:
//   - 8-bit: packet.Unsigned8 (WAV 8-bit is unsigned already)
//   - 16-bit: packet.Signed16
//   - 24-bit: packet.Signed32, left-justified
//   - 32-bit: packet.Signed32
//
// Inputs that cannot seek are buffered in memory first.
//
// # Writing Packets
//
//	out, _ := os.Create("out.wav")
//	pw := wav.NewPacketWriter(out)
//	for _, p := range packets {
//	    if err := pw.WritePacket(p); err != nil {
//	        return err
//	    }
//	}
//	err := pw.Close()
//
// The first packet decides the file's layout. A later packet with another
// channel count, sample rate or sample format is rejected with
// ErrFormatChanged. Float packets are written as 16-bit PCM.
//
// # Error Handling
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedWavLayout: not integer PCM, or no data chunk
//   - ErrUnsupportedBitDepth: bit depth other than 8, 16, 24 or 32
//   - ErrFormatChanged: packet layout differs from the file being written
package wav
