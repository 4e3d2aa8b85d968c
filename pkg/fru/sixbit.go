// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

// 6-bit ASCII covers the characters 0x20 (space) to 0x5f (underscore).
const (
	sixBitFirst = 0x20
	sixBitLast  = 0x5f
)

func sixBit(c byte) byte {
	return (c - sixBitFirst) & 0x3f
}

// IsSixBitASCII reports whether every byte of s has a 6-bit ASCII code.
// Other characters are still packed but do not survive a round trip.
func IsSixBitASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < sixBitFirst || s[i] > sixBitLast {
			return false
		}
	}
	return true
}

// SixBitPackedLen returns the number of bytes n characters occupy once
// packed.
func SixBitPackedLen(n int) int {
	return (n*6 + 7) / 8
}

// PackSixBitASCII packs s four characters into three bytes. Character 0
// occupies bits 0-5 of byte 0, character 1 continues in bits 6-7 of byte 0
// and bits 0-3 of byte 1, and so on.
func PackSixBitASCII(s string) []byte {
	out := make([]byte, SixBitPackedLen(len(s)))
	var acc uint32
	var bits uint
	j := 0
	for i := 0; i < len(s); i++ {
		acc |= uint32(sixBit(s[i])) << bits
		bits += 6
		for bits >= 8 {
			out[j] = byte(acc)
			j++
			acc >>= 8
			bits -= 8
		}
	}
	if bits > 0 {
		out[j] = byte(acc)
	}
	return out
}

// UnpackSixBitASCII is the inverse of PackSixBitASCII: it decodes the
// first n characters stored in data.
func UnpackSixBitASCII(data []byte, n int) string {
	if max := len(data) * 8 / 6; n > max {
		n = max
	}
	out := make([]byte, n)
	var acc uint32
	var bits uint
	j := 0
	for i := range out {
		for bits < 6 {
			acc |= uint32(data[j]) << bits
			j++
			bits += 8
		}
		out[i] = byte(acc&0x3f) + sixBitFirst
		acc >>= 6
		bits -= 6
	}
	return string(out)
}
