// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/linuxboot/frugen/pkg/log"
)

// Section names of the fixed-layout areas.
const (
	SectionInternalUse = "iua"
	SectionChassis     = "cia"
	SectionBoard       = "bia"
	SectionProduct     = "pia"
)

// Keys read by the area builders.
const (
	KeyChassisType  = "chassis_type"
	KeyLanguageCode = "language_code"
	KeyMfgDateTime  = "mfg_datetime"
	KeyData         = "data"

	KeyPartNumber    = "part_number"
	KeySerialNumber  = "serial_number"
	KeyManufacturer  = "manufacturer"
	KeyVersion       = "version"
	KeyAssetTag      = "asset_tag"
	KeySKUID         = "sku_id"
	KeyFRUFileID     = "fru_file_id"
	KeyProductName   = "product_name"
	KeyProductFamily = "product_family"
)

const (
	areaFormatVersion = 0x01
	// format version and area length
	areaPrologSize = 2
	// end marker and checksum
	areaEpilogSize = 2
	maxAreaUnits   = 0xff

	internalUseSize     = 40
	internalUseDataSize = internalUseSize - areaPrologSize - areaEpilogSize

	maxMfgMinutes = 0xffffff
)

// MfgEpoch is the reference point of the board manufacturing date.
var MfgEpoch = time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)

// MfgMinutes converts t to minutes since MfgEpoch.
func MfgMinutes(t time.Time) int64 {
	return int64(t.Sub(MfgEpoch) / time.Minute)
}

// FieldDescriptor names a predefined field of an info area.
type FieldDescriptor struct {
	// Key holds the value.
	Key string
	// SizeKey optionally holds an explicit field length, in which case the
	// value is space padded to that length.
	SizeKey string
}

func field(key string) FieldDescriptor {
	return FieldDescriptor{Key: key, SizeKey: key + "_size"}
}

// AreaSchema describes the layout of one info area.
type AreaSchema struct {
	Name    string
	Section string
	// Fields are the predefined fields in the order they are written.
	Fields []FieldDescriptor
	// HeaderKeys are consumed by the area header.
	HeaderKeys []string

	header func(b *Builder, p Provider, section string) ([]byte, error)
}

// KnownKeys returns every key of the section that is not an extra field.
func (s *AreaSchema) KnownKeys() []string {
	keys := append([]string{}, s.HeaderKeys...)
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
		if f.SizeKey != "" {
			keys = append(keys, f.SizeKey)
		}
	}
	return keys
}

// Schemas of the info areas.
var (
	ChassisInfo = &AreaSchema{
		Name:    "Chassis Info",
		Section: SectionChassis,
		Fields: []FieldDescriptor{
			field(KeyPartNumber),
			field(KeySerialNumber),
			field(KeyProductName),
			field(KeySKUID),
			field(KeyManufacturer),
			field(KeyVersion),
			field(KeyAssetTag),
		},
		HeaderKeys: []string{KeyChassisType},
		header:     chassisHeader,
	}

	BoardInfo = &AreaSchema{
		Name:    "Board Info",
		Section: SectionBoard,
		Fields: []FieldDescriptor{
			field(KeyManufacturer),
			field(KeyProductName),
			field(KeySerialNumber),
			field(KeyPartNumber),
			field(KeyFRUFileID),
			field(KeyVersion),
			field(KeyAssetTag),
		},
		HeaderKeys: []string{KeyLanguageCode, KeyMfgDateTime},
		header:     boardHeader,
	}

	ProductInfo = &AreaSchema{
		Name:    "Product Info",
		Section: SectionProduct,
		Fields: []FieldDescriptor{
			field(KeyManufacturer),
			field(KeyProductName),
			field(KeyPartNumber),
			field(KeyVersion),
			field(KeySerialNumber),
			field(KeyAssetTag),
			field(KeyFRUFileID),
			{Key: KeyProductFamily, SizeKey: "family_size"},
			field(KeySKUID),
		},
		HeaderKeys: []string{KeyLanguageCode},
		header:     productHeader,
	}
)

func chassisHeader(b *Builder, p Provider, section string) ([]byte, error) {
	chassisType, ok, err := optInt(p, section, KeyChassisType)
	if err != nil || !ok || chassisType < 1 || chassisType > 0xff {
		return nil, configErr(section, KeyChassisType, ErrChassisTypeInvalid)
	}
	return []byte{byte(chassisType)}, nil
}

func languageCode(p Provider, section, area string) (byte, error) {
	code, ok, err := optInt(p, section, KeyLanguageCode)
	if err != nil {
		return 0, err
	}
	if !ok {
		log.Infof("%s language code not specified, defaulting to English", area)
		return 0, nil
	}
	if code < 0 || code > 0xff {
		return 0, configErr(section, KeyLanguageCode, ErrValueOutOfRange)
	}
	return byte(code), nil
}

func boardHeader(b *Builder, p Provider, section string) ([]byte, error) {
	lang, err := languageCode(p, section, "Board")
	if err != nil {
		return nil, err
	}
	minutes, ok, err := optInt(p, section, KeyMfgDateTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		now := b.now()
		minutes = MfgMinutes(now)
		log.Infof("Manufacturing time not specified, defaulting to %s (%d minutes)", now.UTC().Format(time.RFC3339), minutes)
	}
	if minutes < 0 || minutes > maxMfgMinutes {
		return nil, configErr(section, KeyMfgDateTime, ErrValueOutOfRange)
	}
	return []byte{lang, byte(minutes), byte(minutes >> 8), byte(minutes >> 16)}, nil
}

func productHeader(b *Builder, p Provider, section string) ([]byte, error) {
	lang, err := languageCode(p, section, "Product")
	if err != nil {
		return nil, err
	}
	return []byte{lang}, nil
}

// Area builds the info area described by s from the values of its section.
// The result is zero padded to a multiple of 8 bytes and its last byte is
// the area checksum.
func (b *Builder) Area(p Provider, s *AreaSchema) ([]byte, error) {
	hdr, err := s.header(b, p, s.Section)
	if err != nil {
		return nil, err
	}

	fields := make([]TypedField, 0, len(s.Fields))
	for _, fd := range s.Fields {
		f, err := b.predefinedField(p, s.Section, fd)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	enc := b.encoding()
	for _, key := range p.ExtraKeys(s.Section, s.KnownKeys()) {
		value, _ := p.String(s.Section, key)
		if value == "" {
			continue
		}
		value, err := b.text(s.Section, key, value)
		if err != nil {
			return nil, err
		}
		if enc == TypeSixBitASCII && !IsSixBitASCII(value) {
			log.Warnf("%s:%s: %q has characters without a 6-bit ASCII code", s.Section, key, value)
		}
		f, err := Encode(value, enc)
		if err != nil {
			return nil, fieldErr(s.Section, key, err)
		}
		fields = append(fields, f)
	}

	size := areaPrologSize + len(hdr) + areaEpilogSize
	for _, f := range fields {
		size += f.Len()
	}
	size = AlignedSize(size, UnitSize)
	if size/UnitSize > maxAreaUnits {
		return nil, fmt.Errorf("%s area: %w", s.Name, &ErrLengthExceeded{Length: size, Max: maxAreaUnits * UnitSize})
	}

	buf := make([]byte, 0, size)
	buf = append(buf, areaFormatVersion, byte(size/UnitSize))
	buf = append(buf, hdr...)
	for _, f := range fields {
		buf = append(buf, f.Bytes()...)
	}
	buf = append(buf, EndOfFields)
	buf = append(buf, make([]byte, size-len(buf))...)
	buf[size-1] = ZeroChecksum(buf[:size-1])
	return buf, nil
}

// text applies the configured character set conversion to a field value.
func (b *Builder) text(section, key, value string) (string, error) {
	if !b.Latin1 {
		return value, nil
	}
	out, err := Latin1(value)
	if err != nil {
		return "", configErr(section, key, err)
	}
	return out, nil
}

func (b *Builder) predefinedField(p Provider, section string, fd FieldDescriptor) (TypedField, error) {
	value, ok := p.String(section, fd.Key)
	if !ok || value == "" {
		return Empty(), nil
	}
	value, err := b.text(section, fd.Key, value)
	if err != nil {
		return TypedField{}, err
	}
	var length int64
	if fd.SizeKey != "" {
		if length, _, err = optInt(p, section, fd.SizeKey); err != nil {
			return TypedField{}, err
		}
	}
	var f TypedField
	switch {
	case length == 0:
		f, err = Encode(value, TypeEightBitASCII)
	case length < 0 || length > MaxFieldLength:
		err = &ErrLengthExceeded{Length: int(length), Max: MaxFieldLength}
	default:
		f, err = EncodeFixed(value, int(length))
	}
	if err != nil {
		return TypedField{}, fieldErr(section, fd.Key, err)
	}
	return f, nil
}

// InternalUse builds the fixed size internal use area. The optional "data"
// key holds hex encoded bytes for its reserved space.
func (b *Builder) InternalUse(p Provider) ([]byte, error) {
	buf := make([]byte, internalUseSize)
	buf[0] = areaFormatVersion
	buf[1] = internalUseSize / UnitSize
	if str, ok := p.String(SectionInternalUse, KeyData); ok && str != "" {
		data, err := hex.DecodeString(strings.Join(strings.Fields(str), ""))
		if err != nil {
			return nil, configErr(SectionInternalUse, KeyData, ErrHexInvalid)
		}
		if len(data) > internalUseDataSize {
			return nil, fieldErr(SectionInternalUse, KeyData, &ErrLengthExceeded{Length: len(data), Max: internalUseDataSize})
		}
		copy(buf[areaPrologSize:], data)
	}
	buf[internalUseSize-2] = EndOfFields
	buf[internalUseSize-1] = ZeroChecksum(buf[:internalUseSize-1])
	return buf, nil
}

// optInt returns section:key as an integer; ok is false if the key is
// absent or empty. A value that is present but not a number is an error.
func optInt(p Provider, section, key string) (n int64, ok bool, err error) {
	if n, ok = p.Int(section, key); ok {
		return n, true, nil
	}
	if str, present := p.String(section, key); present && strings.TrimSpace(str) != "" {
		return 0, false, configErr(section, key, fmt.Errorf("%q: %w", str, ErrNotInteger))
	}
	return 0, false, nil
}

// intInRange returns section:key, or def when absent, checked against
// [min, max].
func intInRange(p Provider, section, key string, def, min, max int64) (int64, error) {
	n, ok, err := optInt(p, section, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	if n < min || n > max {
		return 0, configErr(section, key, fmt.Errorf("%d not in [%d, %d]: %w", n, min, max, ErrValueOutOfRange))
	}
	return n, nil
}

func fieldErr(section, key string, err error) error {
	return fmt.Errorf("%s:%s: %w", section, key, err)
}
