// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audplay/formats/vorbis"
)

// Example demonstrates decoding an Ogg Vorbis file into a clip.
func Example() {
	f, err := os.Open("testdata/sample.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	clip, err := vorbis.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	info := clip.Info()
	fmt.Printf("Sample rate: %.0f Hz\n", info.SampleRate)
	fmt.Printf("Channels: %d\n", info.Channels)
	fmt.Printf("Duration: %.1fs\n", info.Duration())
}
