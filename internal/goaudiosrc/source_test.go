// SPDX-License-Identifier: EPL-2.0

package goaudiosrc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audpkt/packet"
)

// mockPCM hands out fixed integer samples the way go-audio decoders do:
// (0, nil) once the data is exhausted.
type mockPCM struct {
	format *goaudio.Format
	data   []int
	offset int
	err    error
}

func (m *mockPCM) Format() *goaudio.Format { return m.format }

func (m *mockPCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.data[m.offset:])
	m.offset += n
	return n, nil
}

func readAll(t *testing.T, s *Source, chunk int) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, chunk)
	for {
		n, err := s.Read(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
}

func TestSource_Signed16(t *testing.T) {
	t.Parallel()

	dec := &mockPCM{
		format: &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		data:   []int{1, -1, 256, -256},
	}

	s, err := New(dec, 16, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.SampleRate() != 44100 || s.Channels() != 2 || s.SampleFormat() != packet.Signed16 {
		t.Errorf("metadata = %d Hz %d ch %v", s.SampleRate(), s.Channels(), s.SampleFormat())
	}

	got := readAll(t, s, 4)
	want := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x01, 0x00, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}
}

func TestSource_Bias(t *testing.T) {
	t.Parallel()

	dec := &mockPCM{
		format: &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		data:   []int{-128, 0, 127},
	}

	s, err := New(dec, 8, 128)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := readAll(t, s, 16)
	if !bytes.Equal(got, []byte{0x00, 0x80, 0xFF}) {
		t.Errorf("bytes = % x, want 00 80 ff", got)
	}
}

func TestSource_24BitIsLeftJustified(t *testing.T) {
	t.Parallel()

	dec := &mockPCM{
		format: &goaudio.Format{NumChannels: 1, SampleRate: 96000},
		data:   []int{0x7FFFFF},
	}

	s, err := New(dec, 24, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.SampleFormat() != packet.Signed32 {
		t.Fatalf("SampleFormat() = %v, want s32", s.SampleFormat())
	}

	got := readAll(t, s, 8)
	if !bytes.Equal(got, []byte{0x00, 0xFF, 0xFF, 0x7F}) {
		t.Errorf("bytes = % x, want 00 ff ff 7f", got)
	}
}

func TestSource_DropsPartialFrame(t *testing.T) {
	t.Parallel()

	dec := &mockPCM{
		format: &goaudio.Format{NumChannels: 2, SampleRate: 8000},
		data:   []int{1, 2, 3},
	}

	s, err := New(dec, 16, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := readAll(t, s, 64); len(got) != 4 {
		t.Errorf("read %d bytes, want 4", len(got))
	}
}

func TestSource_ReadErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s, err := New(&mockPCM{format: &goaudio.Format{NumChannels: 1}, err: boom}, 16, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := s.Read(make([]byte, 8)); !errors.Is(err, boom) {
		t.Errorf("Read() error = %v, want %v", err, boom)
	}
	if _, err := s.Read(make([]byte, 1)); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Read() error = %v, want io.ErrShortBuffer", err)
	}
	if n, err := s.Read(nil); n != 0 || err != nil {
		t.Errorf("Read(nil) = %d, %v", n, err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(&mockPCM{}, 16, 0); !errors.Is(err, packet.ErrMissingFormat) {
		t.Errorf("New() error = %v, want ErrMissingFormat", err)
	}
	if _, err := New(&mockPCM{format: &goaudio.Format{NumChannels: 1}}, 12, 0); !errors.Is(err, packet.ErrUnsupportedBitDepth) {
		t.Errorf("New() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("abc"))
	rs, err := ReadSeeker(br)
	if err != nil {
		t.Fatalf("ReadSeeker() error = %v", err)
	}
	if rs != io.ReadSeeker(br) {
		t.Error("ReadSeeker() did not return the seekable reader as-is")
	}

	rs, err = ReadSeeker(io.MultiReader(strings.NewReader("ab"), strings.NewReader("c")))
	if err != nil {
		t.Fatalf("ReadSeeker() error = %v", err)
	}
	if _, err := rs.Seek(1, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "bc" {
		t.Errorf("after Seek(1) read %q, want %q", rest, "bc")
	}
}
