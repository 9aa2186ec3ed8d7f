// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
//
// # Decoding
//
//	file, _ := os.Open("audio.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// Vorbis decodes to floating point, so the source reports packet.Float
// and Read returns IEEE-754 single precision values, little-endian and
// interleaved. Values are not clamped.
//
// The channel count and sample rate come from the stream's identification
// header. Any number of channels is supported.
//
// # Error Handling
//
// Decode wraps the oggvorbis error in ErrNotOggVorbis when the stream
// headers cannot be read.
package vorbis
