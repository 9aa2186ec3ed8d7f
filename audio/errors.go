// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidPacketSize = errors.New("frames per packet out of range")
	ErrInvalidFrameSize  = errors.New("source frame size is zero")
	ErrInvalidSampleRate = errors.New("source sample rate must be positive")
	ErrInvalidTargetRate = errors.New("target sample rate must be positive")
)
