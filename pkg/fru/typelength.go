// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// TypeCode is the encoding stored in the top two bits of a type/length byte.
type TypeCode uint8

// Type codes defined by the FRU format. Binary and BCD plus are reserved;
// the encoder never produces them.
const (
	TypeBinary        TypeCode = 0x00
	TypeBCDPlus       TypeCode = 0x40
	TypeSixBitASCII   TypeCode = 0x80
	TypeEightBitASCII TypeCode = 0xc0
)

const (
	typeMask   = 0xc0
	lengthMask = 0x3f

	// MaxFieldLength is the largest payload a type/length byte can describe.
	MaxFieldLength = lengthMask

	// EmptyField is the type/length byte of an absent field.
	EmptyField = byte(TypeEightBitASCII)
	// EndOfFields terminates the field list of an info area.
	EndOfFields = 0xc1
)

func (c TypeCode) String() string {
	switch c {
	case TypeBinary:
		return "binary"
	case TypeBCDPlus:
		return "BCD plus"
	case TypeSixBitASCII:
		return "6-bit ASCII"
	case TypeEightBitASCII:
		return "8-bit ASCII"
	}
	return fmt.Sprintf("TypeCode(%#02x)", uint8(c))
}

// TypedField is a type/length tagged byte sequence.
type TypedField struct {
	Type TypeCode
	Data []byte
}

// Len returns the number of bytes the field occupies once serialized.
func (f TypedField) Len() int {
	return 1 + len(f.Data)
}

// IsEmpty reports whether f is the absent field marker.
func (f TypedField) IsEmpty() bool {
	return f.Type == TypeEightBitASCII && len(f.Data) == 0
}

// Bytes serializes the field: the type/length byte followed by the payload.
func (f TypedField) Bytes() []byte {
	b := make([]byte, 0, f.Len())
	b = append(b, byte(f.Type)|byte(len(f.Data))&lengthMask)
	return append(b, f.Data...)
}

// Empty returns the absent field marker.
func Empty() TypedField {
	return TypedField{Type: TypeEightBitASCII}
}

// Encode encodes value with the given encoding. The payload length is
// derived from the value. 8-bit ASCII payloads are the bytes of value as
// they are; see Latin1 for transcoding UTF-8 input first.
func Encode(value string, code TypeCode) (TypedField, error) {
	switch code {
	case TypeSixBitASCII:
		data := PackSixBitASCII(value)
		if len(data) > MaxFieldLength {
			return TypedField{}, &ErrLengthExceeded{Length: len(data), Max: MaxFieldLength}
		}
		return TypedField{Type: TypeSixBitASCII, Data: data}, nil
	case TypeEightBitASCII:
		data := []byte(value)
		if len(data) > MaxFieldLength {
			return TypedField{}, &ErrLengthExceeded{Length: len(data), Max: MaxFieldLength}
		}
		return TypedField{Type: TypeEightBitASCII, Data: data}, nil
	}
	return TypedField{}, fmt.Errorf("%w: %v", ErrEncodingUnsupported, code)
}

// EncodeFixed encodes value as 8-bit ASCII in a field of exactly length
// bytes. Unused bytes are filled with spaces.
func EncodeFixed(value string, length int) (TypedField, error) {
	if length < 1 || length > MaxFieldLength {
		return TypedField{}, &ErrLengthExceeded{Length: length, Max: MaxFieldLength}
	}
	data := []byte(value)
	if len(data) > length {
		return TypedField{}, &ErrLengthExceeded{Length: len(data), Max: length}
	}
	field := make([]byte, length)
	for i := range field {
		field[i] = ' '
	}
	copy(field, data)
	return TypedField{Type: TypeEightBitASCII, Data: field}, nil
}

// Latin1 converts UTF-8 input into ISO 8859-1, one byte per character.
func Latin1(value string) (string, error) {
	out, err := charmap.ISO8859_1.NewEncoder().String(value)
	if err != nil {
		return "", fmt.Errorf("%q: %w", value, ErrCharacterInvalid)
	}
	return out, nil
}
