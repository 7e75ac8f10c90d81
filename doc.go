// SPDX-License-Identifier: EPL-2.0

// Package audplay plays audio files into a real-time render path while
// keeping an external transport in sync.
//
// A file is decoded fully into memory, resampled to the host's output
// rate and streamed through a lock-free ring buffer that the host's
// render callback drains without ever blocking. Playback loops
// seamlessly, position is published atomically, and an optional
// transport bridge either answers pull-style timebase queries or
// broadcasts state over UDP.
//
// # Supported Formats
//
// Decoding by file extension:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Quick Start
//
//	eng, err := audplay.Open("song.wav", audplay.Options{OutputRate: 48000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	if err := eng.Start(); err != nil { // pre-fill the 3 s buffer
//	    log.Fatal(err)
//	}
//	eng.Play()
//
//	// From the audio backend's render callback:
//	eng.ProcessBlock(pcm.Interleaved{Data: buf, Frames: n, Channels: 2})
//
// For finer control build the pieces directly: pcm decoders,
// stream.Streamer, clock.Clock, bridge and engine.
//
// # Offline Conversion
//
// LoadMono16 runs the same decode and resample machinery offline:
//
//	pcm16, _ := audplay.LoadMono16("song.mp3", 8000)
//	wav.WriteWAV16(out, 8000, 1, pcm16)
package audplay
