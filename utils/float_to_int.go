// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to 16-bit PCM, clamping
// to [-1, 1] first.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float32ToPCM16Bytes converts normalized samples into little-endian
// 16-bit PCM bytes, the layout playback devices and WAV data chunks
// expect. dst must hold at least len(src)*2 bytes; the number of bytes
// written is returned.
func Float32ToPCM16Bytes(dst []byte, src []float32) int {
	for i, s := range src {
		v := uint16(Float32ToInt16(s))
		dst[2*i] = byte(v)
		dst[2*i+1] = byte(v >> 8)
	}
	return len(src) * 2
}
