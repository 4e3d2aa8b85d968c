// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"

	"github.com/linuxboot/frugen/pkg/fru"
	"github.com/linuxboot/frugen/pkg/fru/config"
	"github.com/linuxboot/frugen/pkg/log"
)

// Format is the on-disk representation of an image.
type Format int

// Image formats understood by the build and verify verbs.
const (
	FormatUndefined = Format(iota)
	FormatRaw
	FormatHex
)

// hexLineLength is the number of data bytes per Intel HEX record.
const hexLineLength = 16

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatHex:
		return "hex"
	}
	return "undefined"
}

// ParseFormat converts a --format value.
func ParseFormat(s string) Format {
	switch strings.Trim(strings.ToLower(s), " ") {
	case "raw", "bin":
		return FormatRaw
	case "hex", "ihex":
		return FormatHex
	}
	return FormatUndefined
}

// FormatOfPath guesses the image format from its file name.
func FormatOfPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihex":
		return FormatHex
	}
	return FormatRaw
}

// ImageOptions are the options of the verbs that assemble an image.
type ImageOptions struct {
	ConfigPath string `short:"c" long:"config" description:"path to the INI or YAML description of the FRU" required:"true"`
	ASCII      bool   `short:"a" long:"ascii" description:"encode custom fields as 8-bit ASCII instead of 6-bit ASCII"`
	Latin1     bool   `long:"latin1" description:"transcode UTF-8 values to ISO 8859-1 instead of copying their bytes"`
	EndOfList  bool   `long:"end-of-list" description:"flag the last multi-record as the end of the list"`
}

// BuildImage loads the configuration and assembles the image. A non-zero
// maxSize limits the image size.
func (opts ImageOptions) BuildImage(maxSize int) (*fru.Image, error) {
	values, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	b := &fru.Builder{
		Encoding:  fru.TypeSixBitASCII,
		MaxSize:   maxSize,
		Latin1:    opts.Latin1,
		EndOfList: opts.EndOfList,
	}
	if opts.ASCII {
		b.Encoding = fru.TypeEightBitASCII
	}
	img, err := b.Build(values)
	if err != nil {
		return nil, fmt.Errorf("unable to build the FRU image from '%s': %w", opts.ConfigPath, err)
	}
	log.Debugf("built a %d bytes image with %d regions", img.Len(), len(img.Regions))
	return img, nil
}

// WriteImage serializes img to w in the given format.
func WriteImage(w io.Writer, img *fru.Image, format Format) error {
	switch format {
	case FormatRaw:
		_, err := img.WriteTo(w)
		return err
	case FormatHex:
		mem := gohex.NewMemory()
		if err := mem.AddBinary(0, img.Bytes()); err != nil {
			return fmt.Errorf("unable to add the image to the HEX memory: %w", err)
		}
		return mem.DumpIntelHex(w, hexLineLength)
	}
	return fmt.Errorf("unknown format %v", format)
}

// ReadImage reads an image file written by WriteImage.
func ReadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the image file '%s': %w", path, err)
	}
	if FormatOfPath(path) != FormatHex {
		return data, nil
	}

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("unable to parse the HEX file '%s': %w", path, err)
	}
	segments := mem.GetDataSegments()
	if len(segments) != 1 || segments[0].Address != 0 {
		return nil, fmt.Errorf("'%s' must hold one data segment starting at address 0, found %d", path, len(segments))
	}
	return segments[0].Data, nil
}
