// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleValues describes an image with every area and two records. The
// sections are deliberately out of placement order.
func sampleValues() *Values {
	v := NewValues()
	withSection(v, SectionFanSpeedControl, KeyMaxFanSpeed, "100")
	withSection(v, SectionProduct, KeyLanguageCode, "0")
	withSection(v, SectionOEMVersion, KeyOEMMajorVersion, "1")
	withSection(v, SectionBoard, KeyLanguageCode, "0", KeyMfgDateTime, "0")
	withSection(v, SectionChassis, KeyChassisType, "1")
	withSection(v, SectionInternalUse)
	return v
}

func TestBuildImage(t *testing.T) {
	img, err := (&Builder{}).Build(sampleValues())
	require.NoError(t, err)

	data := img.Bytes()
	require.Len(t, data, 112)
	require.Equal(t, 112, img.Len())
	require.Equal(t, []byte{0x01, 0x01, 0x06, 0x08, 0x0a, 0x0c, 0x00, 0xda}, data[:CommonHeaderSize])
	require.Zero(t, Checksum8(data[:CommonHeaderSize]))
	require.Equal(t, uint8(0x0c), img.Header.MultiRecordInfoOffset)

	var tests = []struct {
		name   string
		offset int
		length int
	}{
		{"Internal Use", 8, 40},
		{ChassisInfo.Name, 48, 16},
		{BoardInfo.Name, 64, 16},
		{ProductInfo.Name, 80, 16},
		{OEMVersion.Name, 96, 8},
		{FanSpeedControl.Name, 104, 8},
	}
	require.Len(t, img.Regions, len(tests))
	for i, test := range tests {
		r := img.Regions[i]
		require.Equal(t, test.name, r.Name)
		require.Equal(t, test.offset, r.Offset, r.Name)
		require.Equal(t, test.length, r.Length, r.Name)
	}
	for _, r := range img.Regions[:4] {
		requireAreaValid(t, data[r.Offset:r.Offset+r.Length])
		require.Equal(t, data[r.Offset+r.Length-1], r.Checksum)
	}
	requireRecordValid(t, data[96:104], OEMVersion)
	requireRecordValid(t, data[104:112], FanSpeedControl)
	require.Equal(t, byte(RecordOEMVersion), data[96])
	require.Equal(t, byte(RecordFanSpeedControl), data[104])
	require.Equal(t, byte(defaultRecordFormatVersion), data[105])

	require.NoError(t, Verify(data))
}

func TestBuildAbsentSections(t *testing.T) {
	v := withSection(NewValues(), SectionOEMVersion)
	img, err := (&Builder{}).Build(v)
	require.NoError(t, err)
	require.Equal(t, CommonHeader{
		FormatVersion:         1,
		MultiRecordInfoOffset: 1,
		Checksum:              0xfe,
	}, img.Header)
	require.Equal(t, 16, img.Len())

	img, err = (&Builder{}).Build(NewValues())
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0xff}, img.Bytes())
	require.Empty(t, img.Regions)
}

func TestBuildInvalidChassisType(t *testing.T) {
	v := sampleValues()
	v.Set(SectionChassis, KeyChassisType, "0")
	img, err := (&Builder{}).Build(v)
	require.Nil(t, img)
	require.ErrorIs(t, err, ErrChassisTypeInvalid)
}

func TestBuildRecordError(t *testing.T) {
	v := sampleValues()
	withSection(v, SectionMACAddress, KeyHostBaseMAC, "0011223344A")
	img, err := (&Builder{}).Build(v)
	require.Nil(t, img)
	require.ErrorIs(t, err, ErrMACAddressInvalid)
}

// oversized is 600 bytes: header, internal use area and a 552 byte product
// area.
func oversized() *Values {
	v := withSection(NewValues(), SectionInternalUse)
	withSection(v, SectionProduct, KeyLanguageCode, "0")
	for i := 0; i < 8; i++ {
		v.Set(SectionProduct, fmt.Sprintf("extra%d", i), strings.Repeat("X", MaxFieldLength))
	}
	v.Set(SectionProduct, "extra8", strings.Repeat("Y", 20))
	return v
}

func TestBuildSizeExceeded(t *testing.T) {
	b := &Builder{Encoding: TypeEightBitASCII}
	img, err := b.Build(oversized())
	require.NoError(t, err)
	require.Equal(t, 600, img.Len())
	require.NoError(t, Verify(img.Bytes()))

	b.MaxSize = 512
	img, err = b.Build(oversized())
	require.Nil(t, img)
	var sizeErr *ErrSizeExceeded
	require.True(t, errors.As(err, &sizeErr))
	require.Equal(t, 600, sizeErr.Size)
	require.Equal(t, 512, sizeErr.Max)
	require.Equal(t, "FRU data length (600 bytes) exceeds maximum size (512 bytes)", err.Error())

	b.MaxSize = 600
	_, err = b.Build(oversized())
	require.NoError(t, err)
}

func TestBuildEndOfList(t *testing.T) {
	img, err := (&Builder{EndOfList: true}).Build(sampleValues())
	require.NoError(t, err)
	data := img.Bytes()
	require.Equal(t, byte(defaultRecordFormatVersion), data[97])
	require.Equal(t, byte(EndOfListFlag|defaultRecordFormatVersion), data[105])
	requireRecordValid(t, data[104:112], FanSpeedControl)
	require.NoError(t, Verify(data))

	// Without records there is nothing to flag.
	_, err = (&Builder{EndOfList: true}).Build(withSection(NewValues(), SectionInternalUse))
	require.NoError(t, err)
}

func TestImageBytesIsCopy(t *testing.T) {
	img, err := (&Builder{}).Build(sampleValues())
	require.NoError(t, err)
	data := img.Bytes()
	data[0] = 0xff
	require.Equal(t, byte(1), img.Bytes()[0])

	var buf bytes.Buffer
	n, err := img.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(img.Len()), n)
	require.Equal(t, img.Bytes(), buf.Bytes())
}

func TestImageLayout(t *testing.T) {
	img, err := (&Builder{}).Build(sampleValues())
	require.NoError(t, err)
	var buf bytes.Buffer
	img.Layout(&buf)
	out := buf.String()
	require.Contains(t, out, "112 B")
	for _, r := range img.Regions {
		require.Contains(t, out, r.Name)
		require.Contains(t, out, fmt.Sprintf("%#04x", r.Offset))
	}
}

func TestParseCommonHeader(t *testing.T) {
	hdr, err := ParseCommonHeader([]byte{1, 1, 6, 8, 10, 12, 0, 0xda, 0xff})
	require.NoError(t, err)
	require.Equal(t, uint8(6), hdr.ChassisInfoOffset)
	require.Equal(t, uint8(0xda), hdr.Checksum)
	require.Equal(t, []byte{1, 1, 6, 8, 10, 12, 0, 0xda}, hdr.Bytes())

	_, err = ParseCommonHeader([]byte{1, 2, 3})
	require.Error(t, err)
}
