// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyField(t *testing.T) {
	f := Empty()
	require.True(t, f.IsEmpty())
	require.Equal(t, []byte{0xc0}, f.Bytes())
	require.Equal(t, 1, f.Len())
}

func TestEncode(t *testing.T) {
	var tests = []struct {
		name  string
		value string
		code  TypeCode
		want  []byte
	}{
		{"ascii8", "Acme", TypeEightBitASCII, []byte{0xc4, 'A', 'c', 'm', 'e'}},
		{"ascii8Raw", "café", TypeEightBitASCII, []byte{0xc5, 'c', 'a', 'f', 0xc3, 0xa9}},
		{"ascii8NotUTF8", "B\xe4r", TypeEightBitASCII, []byte{0xc3, 'B', 0xe4, 'r'}},
		{"ascii6OneChar", "A", TypeSixBitASCII, []byte{0x81, 0x21}},
		{"ascii6Group", "IPMI", TypeSixBitASCII, []byte{0x83, 0x29, 0xdc, 0xa6}},
		{"ascii6TwoGroups", "IPMIIPMI", TypeSixBitASCII, []byte{0x86, 0x29, 0xdc, 0xa6, 0x29, 0xdc, 0xa6}},
		{"ascii6Space", " ", TypeSixBitASCII, []byte{0x81, 0x00}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Encode(test.value, test.code)
			require.NoError(t, err)
			require.Equal(t, test.code, f.Type)
			require.Equal(t, test.want, f.Bytes())
		})
	}
}

func TestEncodeLengthExceeded(t *testing.T) {
	_, err := Encode(strings.Repeat("x", 63), TypeEightBitASCII)
	require.NoError(t, err)

	_, err = Encode(strings.Repeat("x", 64), TypeEightBitASCII)
	var lenErr *ErrLengthExceeded
	require.True(t, errors.As(err, &lenErr))
	require.Equal(t, 64, lenErr.Length)
	require.Equal(t, MaxFieldLength, lenErr.Max)

	// The length counts bytes, not characters.
	_, err = Encode(strings.Repeat("é", 32), TypeEightBitASCII)
	require.True(t, errors.As(err, &lenErr))
	require.Equal(t, 64, lenErr.Length)
	_, err = Encode(strings.Repeat("é", 40), TypeEightBitASCII)
	require.True(t, errors.As(err, &lenErr))
	require.Equal(t, 80, lenErr.Length)

	// 84 characters pack into exactly 63 bytes.
	_, err = Encode(strings.Repeat("X", 84), TypeSixBitASCII)
	require.NoError(t, err)
	_, err = Encode(strings.Repeat("X", 85), TypeSixBitASCII)
	require.True(t, errors.As(err, &lenErr))
}

func TestEncodeUnsupported(t *testing.T) {
	for _, code := range []TypeCode{TypeBinary, TypeBCDPlus} {
		_, err := Encode("1234", code)
		require.ErrorIs(t, err, ErrEncodingUnsupported)
	}
}

func TestLatin1(t *testing.T) {
	var tests = []struct {
		value string
		want  string
	}{
		{"Acme", "Acme"},
		{"Bär", "B\xe4r"},
		{"café", "caf\xe9"},
	}
	for _, test := range tests {
		got, err := Latin1(test.value)
		require.NoError(t, err)
		require.Equal(t, test.want, got)
	}

	for _, value := range []string{"温度", "€uro"} {
		_, err := Latin1(value)
		require.ErrorIs(t, err, ErrCharacterInvalid, value)
	}
}

func TestEncodeFixedCountsBytes(t *testing.T) {
	f, err := EncodeFixed("€", 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc4, 0xe2, 0x82, 0xac, ' '}, f.Bytes())

	var lenErr *ErrLengthExceeded
	_, err = EncodeFixed("€", 2)
	require.True(t, errors.As(err, &lenErr))
	require.Equal(t, 3, lenErr.Length)
}

func TestEncodeFixed(t *testing.T) {
	f, err := EncodeFixed("AB", 5)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc5, 'A', 'B', ' ', ' ', ' '}, f.Bytes())

	f, err = EncodeFixed("ABCDE", 5)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc5, 'A', 'B', 'C', 'D', 'E'}, f.Bytes())

	var lenErr *ErrLengthExceeded
	_, err = EncodeFixed("ABCDEF", 5)
	require.True(t, errors.As(err, &lenErr))
	require.Equal(t, 6, lenErr.Length)
	require.Equal(t, 5, lenErr.Max)

	_, err = EncodeFixed("A", 64)
	require.True(t, errors.As(err, &lenErr))
	_, err = EncodeFixed("A", 0)
	require.True(t, errors.As(err, &lenErr))
}
