// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// RecordType is the type ID of a multi-record.
type RecordType uint8

// Record types produced by frugen. Types 0xc0-0xff are OEM records.
const (
	RecordManagementAccess    RecordType = 0x03
	RecordOEMVersion          RecordType = 0xc0
	RecordMACAddress          RecordType = 0xc1
	RecordFanSpeedControl     RecordType = 0xc2
	RecordBoardControllerInfo RecordType = 0xc3
	RecordSystemConfiguration RecordType = 0xc4
)

// Section names of the multi-records.
const (
	SectionManagementAccess    = "mia_mar"
	SectionOEMVersion          = "mia_ver"
	SectionMACAddress          = "mia_mac"
	SectionFanSpeedControl     = "mia_fan"
	SectionBoardControllerInfo = "mia_bci"
	SectionSystemConfiguration = "mia_sc"
)

// Keys read by the multi-record builders.
const (
	KeyTypeID        = "type_id"
	KeyFormatVersion = "format_version"

	KeySubType    = "sub_type"
	KeyRecordData = "record_data"

	KeyOEMMajorVersion = "oem_vpd_major_version"
	KeyOEMMinorVersion = "oem_vpd_minor_version"

	KeyHostMACCount   = "host_mac_address_count"
	KeyHostBaseMAC    = "host_base_mac_address"
	KeyBMCMACCount    = "bmc_mac_address_count"
	KeyBMCBaseMAC     = "bmc_base_mac_address"
	KeySwitchMACCount = "switch_mac_address_count"
	KeySwitchBaseMAC  = "switch_base_mac_address"

	KeyMaxFanSpeed = "max_fan_speed"
	KeyFanAirflow  = "fan_airflow"

	KeyVendorID       = "vendor_id"
	KeyFamily         = "family"
	KeyControllerType = "controller_type"

	KeyCustomerID = "customer_id"
)

const (
	// RecordHeaderSize is the size of the common multi-record header.
	RecordHeaderSize = 5

	// EndOfListFlag is set in the format version of the last record.
	EndOfListFlag = 0x80

	defaultRecordFormatVersion = 0x02
	maxRecordFormatVersion     = 0x0f

	uuidStringLength = 36
	macStringLength  = 12
	macLength        = 6
	controllerIDSize = 16
)

// RecordHeader is the common header in front of every multi-record.
type RecordHeader struct {
	TypeID         uint8
	FormatVersion  uint8
	RecordLength   uint8
	RecordChecksum uint8
	HeaderChecksum uint8
}

// Bytes serializes the header.
func (h RecordHeader) Bytes() []byte {
	return []byte{h.TypeID, h.FormatVersion, h.RecordLength, h.RecordChecksum, h.HeaderChecksum}
}

// EndOfList reports whether the record is flagged as the last one.
func (h RecordHeader) EndOfList() bool {
	return h.FormatVersion&EndOfListFlag != 0
}

// ParseRecordHeader reads a header from the start of b.
func ParseRecordHeader(b []byte) (RecordHeader, error) {
	if len(b) < RecordHeaderSize {
		return RecordHeader{}, fmt.Errorf("multi-record header needs %d bytes, got %d", RecordHeaderSize, len(b))
	}
	return RecordHeader{
		TypeID:         b[0],
		FormatVersion:  b[1],
		RecordLength:   b[2],
		RecordChecksum: b[3],
		HeaderChecksum: b[4],
	}, nil
}

// RecordSchema describes one multi-record type.
type RecordSchema struct {
	Name          string
	Section       string
	Type          RecordType
	PayloadLength int

	payload func(p Provider, section string, buf []byte) error
}

// Size returns the full record size, header included.
func (s *RecordSchema) Size() int {
	return RecordHeaderSize + s.PayloadLength
}

// Schemas of the multi-records.
var (
	ManagementAccess = &RecordSchema{
		Name:          "Management Access",
		Section:       SectionManagementAccess,
		Type:          RecordManagementAccess,
		PayloadLength: 19,
		payload:       managementAccessPayload,
	}

	OEMVersion = &RecordSchema{
		Name:          "OEM VPD Version",
		Section:       SectionOEMVersion,
		Type:          RecordOEMVersion,
		PayloadLength: 3,
		payload:       oemVersionPayload,
	}

	MACAddress = &RecordSchema{
		Name:          "MAC Address",
		Section:       SectionMACAddress,
		Type:          RecordMACAddress,
		PayloadLength: 27,
		payload:       macAddressPayload,
	}

	FanSpeedControl = &RecordSchema{
		Name:          "Fan Speed Control",
		Section:       SectionFanSpeedControl,
		Type:          RecordFanSpeedControl,
		PayloadLength: 3,
		payload:       fanSpeedControlPayload,
	}

	BoardControllerInfo = &RecordSchema{
		Name:          "Board Controller Info",
		Section:       SectionBoardControllerInfo,
		Type:          RecordBoardControllerInfo,
		PayloadLength: 51,
		payload:       boardControllerInfoPayload,
	}

	SystemConfiguration = &RecordSchema{
		Name:          "System Configuration",
		Section:       SectionSystemConfiguration,
		Type:          RecordSystemConfiguration,
		PayloadLength: 11,
		payload:       systemConfigurationPayload,
	}

	// Records lists the multi-records in the order they are placed.
	Records = []*RecordSchema{
		ManagementAccess,
		OEMVersion,
		MACAddress,
		FanSpeedControl,
		BoardControllerInfo,
		SystemConfiguration,
	}
)

// Record builds the multi-record described by s, header included.
func (b *Builder) Record(p Provider, s *RecordSchema) ([]byte, error) {
	typeID, err := intInRange(p, s.Section, KeyTypeID, int64(s.Type), 0, 0xff)
	if err != nil {
		return nil, err
	}
	version, err := intInRange(p, s.Section, KeyFormatVersion, defaultRecordFormatVersion, 0, maxRecordFormatVersion)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, s.Size())
	payload := buf[RecordHeaderSize:]
	if err := s.payload(p, s.Section, payload); err != nil {
		return nil, err
	}

	hdr := RecordHeader{
		TypeID:         uint8(typeID),
		FormatVersion:  uint8(version),
		RecordLength:   uint8(len(payload)),
		RecordChecksum: ZeroChecksum(payload),
	}
	copy(buf, hdr.Bytes())
	buf[RecordHeaderSize-1] = ZeroChecksum(buf[:RecordHeaderSize-1])
	return buf, nil
}

// markEndOfList flags rec as the last record and fixes its header checksum.
func markEndOfList(rec []byte) {
	rec[1] |= EndOfListFlag
	rec[RecordHeaderSize-1] = ZeroChecksum(rec[:RecordHeaderSize-1])
}

func managementAccessPayload(p Provider, section string, buf []byte) error {
	subType, err := intInRange(p, section, KeySubType, 0, 0, 0xff)
	if err != nil {
		return err
	}
	str, _ := p.String(section, KeyRecordData)
	u, err := parseUUID(str)
	if err != nil {
		return configErr(section, KeyRecordData, err)
	}
	buf[0] = byte(subType)
	copy(buf[1:], u[:])
	return nil
}

// parseUUID accepts only the canonical hyphenated form; bytes keep the order
// they have in the string.
func parseUUID(s string) (uuid.UUID, error) {
	if len(s) != uuidStringLength || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid.UUID{}, fmt.Errorf("%q: %w", s, ErrUUIDInvalid)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%q: %w", s, ErrUUIDInvalid)
	}
	return u, nil
}

func oemVersionPayload(p Provider, section string, buf []byte) error {
	major, err := intInRange(p, section, KeyOEMMajorVersion, 0, 0, 0xff)
	if err != nil {
		return err
	}
	minor, err := intInRange(p, section, KeyOEMMinorVersion, 0, 0, 0xff)
	if err != nil {
		return err
	}
	buf[0] = byte(major)
	buf[1] = byte(minor)
	return nil
}

func macAddressPayload(p Provider, section string, buf []byte) error {
	hostCount, err := intInRange(p, section, KeyHostMACCount, 0, 0, 0xff)
	if err != nil {
		return err
	}
	bmcCount, err := intInRange(p, section, KeyBMCMACCount, 0, 0, 0xff)
	if err != nil {
		return err
	}
	switchCount, err := intInRange(p, section, KeySwitchMACCount, 0, 0, 0xffff)
	if err != nil {
		return err
	}
	host, err := parseMAC(p, section, KeyHostBaseMAC)
	if err != nil {
		return err
	}
	bmc, err := parseMAC(p, section, KeyBMCBaseMAC)
	if err != nil {
		return err
	}
	sw, err := parseMAC(p, section, KeySwitchBaseMAC)
	if err != nil {
		return err
	}

	buf[0] = byte(hostCount)
	copy(buf[1:7], host)
	buf[7] = byte(bmcCount)
	copy(buf[8:14], bmc)
	binary.LittleEndian.PutUint16(buf[14:16], uint16(switchCount))
	copy(buf[16:22], sw)
	return nil
}

// parseMAC decodes a base MAC address written as 12 hex digits without
// separators, e.g. "0011223344AA".
func parseMAC(p Provider, section, key string) ([]byte, error) {
	str, _ := p.String(section, key)
	if len(str) != macStringLength {
		return nil, configErr(section, key, fmt.Errorf("%q: %w", str, ErrMACAddressInvalid))
	}
	mac, err := hex.DecodeString(str)
	if err != nil || len(mac) != macLength {
		return nil, configErr(section, key, fmt.Errorf("%q: %w", str, ErrMACAddressInvalid))
	}
	return mac, nil
}

func fanSpeedControlPayload(p Provider, section string, buf []byte) error {
	speed, err := intInRange(p, section, KeyMaxFanSpeed, 0, 0, 0xffff)
	if err != nil {
		return err
	}
	airflow, err := intInRange(p, section, KeyFanAirflow, 0, 0, 0xff)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(buf[0:2], uint16(speed))
	buf[2] = byte(airflow)
	return nil
}

func boardControllerInfoPayload(p Provider, section string, buf []byte) error {
	for i, key := range []string{KeyVendorID, KeyFamily, KeyControllerType} {
		str, ok := p.String(section, key)
		if !ok {
			return configErr(section, key, ErrFieldMissing)
		}
		if len(str) > controllerIDSize {
			return configErr(section, key, fmt.Errorf("%q is %d bytes, at most %d fit: %w", str, len(str), controllerIDSize, ErrFieldTooLong))
		}
		copy(buf[i*controllerIDSize:(i+1)*controllerIDSize], str)
	}
	return nil
}

func systemConfigurationPayload(p Provider, section string, buf []byte) error {
	id, err := intInRange(p, section, KeyCustomerID, 0, 0, 0xffffffff)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(id))
	return nil
}
