// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

// UnitSize is the granularity of common header offsets and area lengths.
const UnitSize = 8

// Checksum8 does a 8 bit checksum of the slice passed in.
func Checksum8(buf []byte) uint8 {
	var sum uint8
	for _, val := range buf {
		sum += val
	}
	return sum
}

// ZeroChecksum returns the byte that, appended to buf, makes the 8 bit sum
// of the whole sequence zero.
func ZeroChecksum(buf []byte) uint8 {
	return -Checksum8(buf)
}

// AlignedSize rounds size up to the next multiple of align, which must be a
// power of two.
func AlignedSize(size, align int) int {
	return (size + align - 1) &^ (align - 1)
}
