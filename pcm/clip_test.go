// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"
)

func TestNewClip_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []float32
		rate     float64
		channels int
		wantErr  error
	}{
		{"ZeroRate", make([]float32, 4), 0, 1, ErrInvalidSampleRate},
		{"NegativeRate", make([]float32, 4), -8000, 1, ErrInvalidSampleRate},
		{"ZeroChannels", make([]float32, 4), 8000, 0, ErrInvalidChannels},
		{"Misaligned", make([]float32, 5), 8000, 2, ErrInvalidDataSize},
		{"Valid", make([]float32, 4), 8000, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewClip(tt.data, tt.rate, tt.channels)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewClip() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClip_Info(t *testing.T) {
	t.Parallel()

	clip, err := NewClip(make([]float32, 16), 8000, 2)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	info := clip.Info()
	if info.SampleRate != 8000 {
		t.Errorf("SampleRate = %v, want 8000", info.SampleRate)
	}
	if info.Channels != 2 {
		t.Errorf("Channels = %d, want 2", info.Channels)
	}
	if info.TotalFrames != 8 {
		t.Errorf("TotalFrames = %d, want 8", info.TotalFrames)
	}
	if info.Duration() != 0.001 {
		t.Errorf("Duration() = %v, want 0.001", info.Duration())
	}
}

func TestClip_ReadFrames(t *testing.T) {
	t.Parallel()

	data := []float32{0, 1, 2, 3, 4, 5, 6, 7}
	clip, err := NewClip(data, 8000, 2)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	dst := make([]float32, 4)

	n, err := clip.ReadFrames(1, dst)
	if err != nil {
		t.Fatalf("ReadFrames(1) error = %v", err)
	}
	if n != 2 {
		t.Errorf("ReadFrames(1) = %d frames, want 2", n)
	}
	for i, want := range []float32{2, 3, 4, 5} {
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}

	// Short read near the end.
	n, err = clip.ReadFrames(3, dst)
	if err != nil {
		t.Fatalf("ReadFrames(3) error = %v", err)
	}
	if n != 1 {
		t.Errorf("ReadFrames(3) = %d frames, want 1", n)
	}

	// Past the end.
	if _, err := clip.ReadFrames(4, dst); err != io.EOF {
		t.Errorf("ReadFrames(4) error = %v, want io.EOF", err)
	}

	// Misaligned destination.
	if _, err := clip.ReadFrames(0, make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("misaligned dst error = %v, want ErrInvalidDstSize", err)
	}
}

func TestDownmixMono(t *testing.T) {
	t.Parallel()

	stereo, err := NewClip([]float32{0.2, 0.4, -0.2, -0.4, 1, 0}, 8000, 2)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	mono := DownmixMono(stereo)

	info := mono.Info()
	if info.Channels != 1 {
		t.Fatalf("Channels = %d, want 1", info.Channels)
	}
	if info.TotalFrames != 3 {
		t.Fatalf("TotalFrames = %d, want 3", info.TotalFrames)
	}

	dst := make([]float32, 3)
	if _, err := mono.ReadFrames(0, dst); err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}

	for i, want := range []float32{0.3, -0.3, 0.5} {
		if diff := dst[i] - want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("frame %d = %v, want %v", i, dst[i], want)
		}
	}
}

func TestDownmixMono_MonoPassthrough(t *testing.T) {
	t.Parallel()

	mono, err := NewClip([]float32{0.1, 0.2}, 8000, 1)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	if got := DownmixMono(mono); got != mono {
		t.Error("DownmixMono() on mono clip must return the same clip")
	}
}

func TestDownmixMono_MultiChannel(t *testing.T) {
	t.Parallel()

	// One 4-channel frame averaging to 0.25.
	quad, err := NewClip([]float32{1, 0, 0, 0}, 8000, 4)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	dst := make([]float32, 1)
	if _, err := DownmixMono(quad).ReadFrames(0, dst); err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}

	if dst[0] != 0.25 {
		t.Errorf("downmixed sample = %v, want 0.25", dst[0])
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	if _, ok := reg.Get("wav"); ok {
		t.Error("empty registry Get(\"wav\") = ok, want missing")
	}

	reg.Register("wav", nopDecoder{})

	if _, ok := reg.Get("wav"); !ok {
		t.Error("Get(\"wav\") after Register = missing, want ok")
	}
}

type nopDecoder struct{}

func (nopDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	return NewClip(nil, 8000, 1)
}
