// SPDX-License-Identifier: EPL-2.0

package packet

import "errors"

var (
	ErrTruncatedHeader    = errors.New("truncated packet header")
	ErrUnsupportedVersion = errors.New("unsupported packet version")
	ErrTruncatedPayload   = errors.New("truncated packet payload")
	ErrPayloadTooLarge    = errors.New("packet payload exceeds 32-bit size field")

	ErrUnknownSampleFormat = errors.New("unknown sample format")
	ErrZeroFrameSize       = errors.New("packet frame size is zero")
	ErrMissingFormat       = errors.New("buffer has no format")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)
