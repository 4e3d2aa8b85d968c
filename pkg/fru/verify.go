// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrChecksumMismatch means the bytes of a region do not sum to zero.
type ErrChecksumMismatch struct {
	Region string
	Offset int
	Sum    uint8
}

func (err *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("%s at %#x: checksum mismatch, bytes sum to %#02x", err.Region, err.Offset, err.Sum)
}

// ErrOutOfBounds means a region extends past the end of the image.
type ErrOutOfBounds struct {
	Region string
	Offset int
	Length int
	Size   int
}

func (err *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("%s at %#x: %d bytes do not fit in an image of %d bytes", err.Region, err.Offset, err.Length, err.Size)
}

// ErrFormatVersion means a header carries an unknown format version.
type ErrFormatVersion struct {
	Region  string
	Offset  int
	Version uint8
}

func (err *ErrFormatVersion) Error() string {
	return fmt.Sprintf("%s at %#x: unsupported format version %#02x", err.Region, err.Offset, err.Version)
}

// Verify checks the structure of an image: header and area checksums, area
// bounds and the multi-record chain. It does not decode field values. Every
// problem found is reported.
func Verify(image []byte) error {
	hdr, err := ParseCommonHeader(image)
	if err != nil {
		return err
	}
	var result *multierror.Error
	if hdr.FormatVersion != areaFormatVersion {
		result = multierror.Append(result, &ErrFormatVersion{Region: "common header", Version: hdr.FormatVersion})
	}
	if sum := Checksum8(image[:CommonHeaderSize]); sum != 0 {
		result = multierror.Append(result, &ErrChecksumMismatch{Region: "common header", Sum: sum})
	}

	areas := []struct {
		name   string
		offset uint8
	}{
		{"internal use area", hdr.InternalUseOffset},
		{"chassis info area", hdr.ChassisInfoOffset},
		{"board info area", hdr.BoardInfoOffset},
		{"product info area", hdr.ProductInfoOffset},
	}
	for _, a := range areas {
		if a.offset == 0 {
			continue
		}
		if err := verifyArea(image, a.name, int(a.offset)*UnitSize); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if hdr.MultiRecordInfoOffset != 0 {
		if err := verifyRecords(image, int(hdr.MultiRecordInfoOffset)*UnitSize); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func verifyArea(image []byte, name string, start int) error {
	if start+areaPrologSize > len(image) {
		return &ErrOutOfBounds{Region: name, Offset: start, Length: areaPrologSize, Size: len(image)}
	}
	var result *multierror.Error
	if v := image[start]; v != areaFormatVersion {
		result = multierror.Append(result, &ErrFormatVersion{Region: name, Offset: start, Version: v})
	}
	length := int(image[start+1]) * UnitSize
	if length == 0 || start+length > len(image) {
		return multierror.Append(result, &ErrOutOfBounds{Region: name, Offset: start, Length: length, Size: len(image)})
	}
	if sum := Checksum8(image[start : start+length]); sum != 0 {
		result = multierror.Append(result, &ErrChecksumMismatch{Region: name, Offset: start, Sum: sum})
	}
	return result.ErrorOrNil()
}

func verifyRecords(image []byte, pos int) error {
	var result *multierror.Error
	for pos < len(image) {
		if pos+RecordHeaderSize > len(image) {
			return multierror.Append(result, &ErrOutOfBounds{Region: "multi-record header", Offset: pos, Length: RecordHeaderSize, Size: len(image)})
		}
		hdr, _ := ParseRecordHeader(image[pos:])
		name := fmt.Sprintf("multi-record %#02x", hdr.TypeID)
		if sum := Checksum8(image[pos : pos+RecordHeaderSize]); sum != 0 {
			// The length cannot be trusted, stop walking the chain.
			return multierror.Append(result, &ErrChecksumMismatch{Region: name + " header", Offset: pos, Sum: sum})
		}
		body := pos + RecordHeaderSize
		end := body + int(hdr.RecordLength)
		if end > len(image) {
			return multierror.Append(result, &ErrOutOfBounds{Region: name, Offset: body, Length: int(hdr.RecordLength), Size: len(image)})
		}
		if sum := Checksum8(image[body:end]) + hdr.RecordChecksum; sum != 0 {
			result = multierror.Append(result, &ErrChecksumMismatch{Region: name, Offset: body, Sum: sum})
		}
		if hdr.EndOfList() {
			break
		}
		pos = end
	}
	return result.ErrorOrNil()
}
