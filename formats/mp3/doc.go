// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
// go-mp3 always produces 16-bit little-endian stereo, even for mono files,
// so the source reports:
//   - Sample format: packet.Signed16
//   - Channels: 2
//   - Sample rate: taken from the first MP3 frame
//
// The decoder output is passed through untouched; Read only makes sure
// every call returns whole frames. Wrap the source in audio.NewMonoMixer
// to get a single channel.
//
// # Error Handling
//
// Decode wraps the go-mp3 error in ErrNotMP3File when no valid frame
// header can be found.
package mp3
