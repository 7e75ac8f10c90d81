// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}

	if _, err := decoder.Decode(strings.NewReader("This is not Ogg Vorbis data")); err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}

	if _, err := decoder.Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecoder_TruncatedOggHeader(t *testing.T) {
	t.Parallel()

	// A bare Ogg capture pattern with no Vorbis headers behind it.
	decoder := Decoder{}

	if _, err := decoder.Decode(bytes.NewReader([]byte("OggS\x00\x00\x00\x00"))); err == nil {
		t.Error("Decode() error = nil, want error for truncated stream")
	}
}
