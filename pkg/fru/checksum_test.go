// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"testing"
)

var (
	emptyBuf  = []byte{}
	sampleBuf = []byte{1, 2, 3, 4}
	overBuf   = []byte{0x1, 0x2, 0xFF, 0xFF}
	zeroBuf   = []byte{0, 0, 0, 0}
	headerBuf = []byte{0x01, 0x00, 0x01, 0x05, 0x0c, 0x00, 0x00}
)

func TestChecksum8(t *testing.T) {
	var tests = []struct {
		name string
		buf  []byte
		res  uint8
	}{
		{"emptyBuf", emptyBuf, 0},
		{"sampleBuf", sampleBuf, 10},
		{"overBuf", overBuf, 0x1},
		{"zeroBuf", zeroBuf, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if res := Checksum8(test.buf); res != test.res {
				t.Errorf("Checksum8 wrong result!, input was %#x, wanted %#x, got %#x", test.buf, test.res, res)
			}
		})
	}
}

func TestZeroChecksum(t *testing.T) {
	var tests = []struct {
		name string
		buf  []byte
		res  uint8
	}{
		{"emptyBuf", emptyBuf, 0},
		{"sampleBuf", sampleBuf, 0xf6},
		{"overBuf", overBuf, 0xff},
		{"zeroBuf", zeroBuf, 0},
		{"headerBuf", headerBuf, 0xed},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := ZeroChecksum(test.buf)
			if res != test.res {
				t.Errorf("ZeroChecksum(%#x) = %#x, want %#x", test.buf, res, test.res)
			}
			if sum := Checksum8(append(append([]byte{}, test.buf...), res)); sum != 0 {
				t.Errorf("sum with checksum appended is %#x, want 0", sum)
			}
		})
	}
}

func TestAlignedSize(t *testing.T) {
	for size := 0; size < 300; size++ {
		got := AlignedSize(size, UnitSize)
		if got%UnitSize != 0 || got < size || got-size >= UnitSize {
			t.Fatalf("AlignedSize(%d, 8) = %d, not the smallest multiple of 8", size, got)
		}
		if again := AlignedSize(got, UnitSize); again != got {
			t.Fatalf("AlignedSize not idempotent: %d -> %d", got, again)
		}
	}
}
