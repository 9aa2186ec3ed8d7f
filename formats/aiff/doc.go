// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096)
//	n, err := source.Read(buf)
//
// AIFF stores samples big-endian; the source hands them out little-endian
// so they can be used as packet payloads without conversion.
//
// # Sample Formats
//   - 8-bit: packet.Unsigned8. AIFF 8-bit is signed and is shifted by 128.
//   - 16-bit: packet.Signed16
//   - 24-bit: packet.Signed32, left-justified
//   - 32-bit: packet.Signed32
//
// # Error Handling
//   - ErrNotAiffFile: the input is not an AIFF file
//   - ErrUnsupportedBitDepth: sample size other than 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: the decoder could not report a format
package aiff
