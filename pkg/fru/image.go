// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fru builds IPMI FRU inventory images.
//
// See "Platform Management FRU Information Storage Definition" v1.0:
// * https://www.intel.com/content/dam/www/public/us/en/documents/product-briefs/platform-management-fru-document-rev-1-2-feb-2013.pdf
//
// An image is a common header followed by the info areas (internal use,
// chassis, board, product), each a multiple of 8 bytes long, and by a chain
// of multi-records packed back to back.
package fru

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/linuxboot/frugen/pkg/log"
)

// CommonHeaderSize is the size of the common header.
const CommonHeaderSize = 8

const maxHeaderOffset = 0xff

// CommonHeader is the first 8 bytes of an image. Offsets are in units of
// 8 bytes from the start of the image, 0 meaning the area is absent.
type CommonHeader struct {
	FormatVersion         uint8
	InternalUseOffset     uint8
	ChassisInfoOffset     uint8
	BoardInfoOffset       uint8
	ProductInfoOffset     uint8
	MultiRecordInfoOffset uint8
	Pad                   uint8
	Checksum              uint8
}

// Bytes serializes the header.
func (h CommonHeader) Bytes() []byte {
	return []byte{
		h.FormatVersion,
		h.InternalUseOffset,
		h.ChassisInfoOffset,
		h.BoardInfoOffset,
		h.ProductInfoOffset,
		h.MultiRecordInfoOffset,
		h.Pad,
		h.Checksum,
	}
}

// ParseCommonHeader reads a header from the start of b.
func ParseCommonHeader(b []byte) (CommonHeader, error) {
	if len(b) < CommonHeaderSize {
		return CommonHeader{}, fmt.Errorf("common header needs %d bytes, got %d", CommonHeaderSize, len(b))
	}
	return CommonHeader{
		FormatVersion:         b[0],
		InternalUseOffset:     b[1],
		ChassisInfoOffset:     b[2],
		BoardInfoOffset:       b[3],
		ProductInfoOffset:     b[4],
		MultiRecordInfoOffset: b[5],
		Pad:                   b[6],
		Checksum:              b[7],
	}, nil
}

// Region is the location of one area or record inside an image.
type Region struct {
	Name    string
	Section string
	Offset  int
	Length  int
	// Checksum is the area checksum, or the payload checksum of a record.
	Checksum uint8
}

// Image is an assembled FRU image. It is never modified after Build.
type Image struct {
	Header  CommonHeader
	Regions []Region

	data []byte
}

// Len returns the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Bytes returns a copy of the image.
func (img *Image) Bytes() []byte {
	return append([]byte{}, img.data...)
}

// WriteTo implements io.WriterTo.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(img.data)
	return int64(n), err
}

// Layout renders the regions of the image as a table.
func (img *Image) Layout(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("FRU image (%s)", humanize.IBytes(uint64(img.Len())))
	t.AppendHeader(table.Row{"Region", "Section", "Offset", "Length", "Checksum"})
	for _, r := range img.Regions {
		t.AppendRow(table.Row{
			r.Name,
			r.Section,
			fmt.Sprintf("%#04x", r.Offset),
			r.Length,
			fmt.Sprintf("%#02x", r.Checksum),
		})
	}
	t.Render()
}

// Builder assembles images. The zero value builds with 6-bit ASCII extra
// fields, the current time as default manufacturing date and no size limit.
type Builder struct {
	// Encoding of the fields that are not predefined by an area. Zero
	// selects TypeSixBitASCII.
	Encoding TypeCode
	// Now supplies the default board manufacturing date.
	Now func() time.Time
	// MaxSize, if non-zero, is the largest image accepted.
	MaxSize int
	// Latin1 transcodes UTF-8 field values to ISO 8859-1 before they are
	// encoded. Otherwise the bytes of the values are copied as they are.
	Latin1 bool
	// EndOfList sets the end-of-list flag on the last multi-record.
	EndOfList bool
}

func (b *Builder) encoding() TypeCode {
	if b.Encoding == TypeBinary {
		return TypeSixBitASCII
	}
	return b.Encoding
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

type block struct {
	Region
	data []byte
}

// Build assembles the image from every section present in p. On error no
// image is returned.
func (b *Builder) Build(p Provider) (*Image, error) {
	hdr := CommonHeader{FormatVersion: areaFormatVersion}
	var blocks []block

	cursor := CommonHeaderSize / UnitSize
	areas := []struct {
		section string
		name    string
		offset  *uint8
		build   func() ([]byte, error)
	}{
		{SectionInternalUse, "Internal Use", &hdr.InternalUseOffset, func() ([]byte, error) { return b.InternalUse(p) }},
		{SectionChassis, ChassisInfo.Name, &hdr.ChassisInfoOffset, func() ([]byte, error) { return b.Area(p, ChassisInfo) }},
		{SectionBoard, BoardInfo.Name, &hdr.BoardInfoOffset, func() ([]byte, error) { return b.Area(p, BoardInfo) }},
		{SectionProduct, ProductInfo.Name, &hdr.ProductInfoOffset, func() ([]byte, error) { return b.Area(p, ProductInfo) }},
	}
	for _, a := range areas {
		if !p.HasSection(a.section) {
			continue
		}
		data, err := a.build()
		if err != nil {
			return nil, err
		}
		if cursor > maxHeaderOffset {
			return nil, fmt.Errorf("%s area offset: %w", a.name, &ErrSizeExceeded{Size: cursor * UnitSize, Max: maxHeaderOffset * UnitSize})
		}
		*a.offset = uint8(cursor)
		blocks = append(blocks, block{Region{a.name, a.section, cursor * UnitSize, len(data), data[len(data)-1]}, data})
		log.Debugf("%s area at %#x, %d bytes", a.name, cursor*UnitSize, len(data))
		cursor += len(data) / UnitSize
	}

	// From here on the cursor counts bytes: records are not aligned.
	offset := cursor * UnitSize
	var records []block
	for _, s := range Records {
		if !p.HasSection(s.Section) {
			continue
		}
		data, err := b.Record(p, s)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			if cursor > maxHeaderOffset {
				return nil, fmt.Errorf("multi-record offset: %w", &ErrSizeExceeded{Size: offset, Max: maxHeaderOffset * UnitSize})
			}
			hdr.MultiRecordInfoOffset = uint8(cursor)
		}
		records = append(records, block{Region{s.Name, s.Section, offset, len(data), data[3]}, data})
		log.Debugf("%s record at %#x, %d bytes", s.Name, offset, len(data))
		offset += len(data)
	}
	if b.EndOfList && len(records) > 0 {
		markEndOfList(records[len(records)-1].data)
	}
	blocks = append(blocks, records...)

	raw := hdr.Bytes()
	hdr.Checksum = ZeroChecksum(raw[:CommonHeaderSize-1])

	if b.MaxSize != 0 && offset > b.MaxSize {
		return nil, &ErrSizeExceeded{Size: offset, Max: b.MaxSize}
	}

	img := &Image{Header: hdr, data: make([]byte, offset)}
	copy(img.data, hdr.Bytes())
	for _, blk := range blocks {
		copy(img.data[blk.Offset:], blk.data)
		img.Regions = append(img.Regions, blk.Region)
	}
	return img, nil
}
