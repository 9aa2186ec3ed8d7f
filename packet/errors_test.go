package packet

import (
	"errors"
	"testing"
)

func allErrors() map[string]error {
	return map[string]error{
		"ErrTruncatedHeader":     ErrTruncatedHeader,
		"ErrUnsupportedVersion":  ErrUnsupportedVersion,
		"ErrTruncatedPayload":    ErrTruncatedPayload,
		"ErrPayloadTooLarge":     ErrPayloadTooLarge,
		"ErrUnknownSampleFormat": ErrUnknownSampleFormat,
		"ErrZeroFrameSize":       ErrZeroFrameSize,
		"ErrMissingFormat":       ErrMissingFormat,
		"ErrUnsupportedBitDepth": ErrUnsupportedBitDepth,
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrTruncatedHeader, "truncated packet header"},
		{ErrUnsupportedVersion, "unsupported packet version"},
		{ErrTruncatedPayload, "truncated packet payload"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestErrors_Uniqueness(t *testing.T) {
	t.Parallel()

	messages := make(map[string]string)
	for name, err := range allErrors() {
		if err == nil {
			t.Fatalf("%s is nil", name)
		}
		if existing, found := messages[err.Error()]; found {
			t.Errorf("%s has same message as %s: %q", name, existing, err.Error())
		}
		messages[err.Error()] = name
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	for name, err := range allErrors() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			wrapped := errors.Join(err, errors.New("additional context"))
			if !errors.Is(wrapped, err) {
				t.Errorf("errors.Is(wrapped, %s) = false, want true", name)
			}

			if errors.Is(errors.New("some other error"), err) {
				t.Errorf("errors.Is(otherErr, %s) = true, want false", name)
			}
		})
	}
}

func TestDecode_ErrorsCarryDetail(t *testing.T) {
	t.Parallel()

	_, err := Decode(make([]byte, 10))
	if err == nil || err.Error() != "truncated packet header: got 10 bytes, need 35" {
		t.Errorf("Decode() error = %v", err)
	}
}
