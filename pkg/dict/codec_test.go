package dict

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteToGolden(t *testing.T) {
	d := build(t, false, "ab")

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	want := []byte{
		0x00, 0x00, 0x00, 0x02,
		0x80, 0x00, 0x01, 0x61,
		0xc0, 0x00, 0x00, 0x62,
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo() = %d, want %d", n, len(want))
	}
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Errorf("serialized mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, collapse := range []bool{false, true} {
		d := build(t, collapse, sampleWords...)

		var buf bytes.Buffer
		if _, err := d.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo() error = %v", err)
		}
		if got, want := buf.Len(), 4+4*d.Len(); got != want {
			t.Errorf("serialized %d bytes, want %d", got, want)
		}

		back, err := Read(&buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if diff := cmp.Diff(d.edges, back.edges); diff != "" {
			t.Errorf("collapse=%v edges mismatch (-want +got):\n%s", collapse, diff)
		}

		probes := append(slices.Clone(sampleWords), "par", "kni", "zz", "parkingx", "")
		for _, p := range probes {
			if a, b := d.Lookup(p), back.Lookup(p); a != b {
				t.Errorf("Lookup(%q) before = %v after = %v", p, a, b)
			}
		}
	}
}

func TestRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	if _, err := build(t, false).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	d, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{
			name: "empty",
			want: io.ErrUnexpectedEOF,
		},
		{
			name:  "short count",
			input: []byte{0x00, 0x00},
			want:  io.ErrUnexpectedEOF,
		},
		{
			name:  "missing records",
			input: []byte{0x00, 0x00, 0x00, 0x02, 0x80, 0x00, 0x01, 0x61},
			want:  io.ErrUnexpectedEOF,
		},
		{
			name:  "partial record",
			input: []byte{0x00, 0x00, 0x00, 0x01, 0x80, 0x00},
			want:  io.ErrUnexpectedEOF,
		},
		{
			name:  "offset out of range",
			input: []byte{0x00, 0x00, 0x00, 0x01, 0x80, 0x00, 0x05, 0x61},
			want:  ErrMalformed,
		},
		{
			name:  "unterminated run",
			input: []byte{0x00, 0x00, 0x00, 0x01, 0x40, 0x00, 0x00, 0x61},
			want:  ErrMalformed,
		},
		{
			name: "cyclic offsets",
			// a -> run at 1, b -> run at 1, and run 1 is b -> run at 1
			input: []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x01, 0x61, 0x80, 0x00, 0x01, 0x62},
			want:  ErrMalformed,
		},
		{
			name: "cycle through two runs",
			// root a -> 1; run 1: b -> 2; run 2: c -> 1
			input: []byte{0x00, 0x00, 0x00, 0x03, 0x80, 0x00, 0x01, 0x61, 0x80, 0x00, 0x02, 0x62, 0x80, 0x00, 0x01, 0x63},
			want:  ErrMalformed,
		},
		{
			name:  "count too large",
			input: []byte{0xff, 0xff, 0xff, 0xff},
			want:  ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(bytes.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Read() error = %v, want %v", err, tt.want)
			}
			if d != nil {
				t.Errorf("Read() = %v, want nil dictionary", d)
			}
		})
	}
}

func TestReadSharedRuns(t *testing.T) {
	// root: a -> 2, b -> 2 (shared); run 2: c, a word with no children
	input := []byte{0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x02, 0x61, 0x80, 0x00, 0x02, 0x62, 0xc0, 0x00, 0x00, 0x63}
	d, err := Read(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	got := slices.Collect(d.Words())
	if diff := cmp.Diff([]string{"ac", "bc"}, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteToError(t *testing.T) {
	boom := errors.New("boom")
	_, err := build(t, false, sampleWords...).WriteTo(failingWriter{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("WriteTo() error = %v, want %v", err, boom)
	}
}
