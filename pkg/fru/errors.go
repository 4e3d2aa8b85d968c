// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"errors"
	"fmt"
)

// Reasons carried by ErrConfiguration.
var (
	ErrChassisTypeInvalid = errors.New("chassis type must be a non-zero value")
	ErrUUIDInvalid        = errors.New("UUID must be in the xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form")
	ErrMACAddressInvalid  = errors.New("MAC address must be exactly 12 hex characters")
	ErrFieldTooLong       = errors.New("value does not fit the fixed field width")
	ErrFieldMissing       = errors.New("required value is missing")
	ErrValueOutOfRange    = errors.New("value is out of range")
	ErrNotInteger         = errors.New("value is not an integer")
	ErrCharacterInvalid   = errors.New("value contains characters that cannot be encoded")
	ErrHexInvalid         = errors.New("value is not a valid hex string")
)

// ErrEncodingUnsupported is returned when a field is requested in one of the
// reserved encodings (binary, BCD plus) which are never produced.
var ErrEncodingUnsupported = errors.New("unsupported field encoding")

// ErrConfiguration means a required value in the field-value provider is
// missing or invalid.
type ErrConfiguration struct {
	Section string
	Key     string
	Reason  error
}

func (err *ErrConfiguration) Error() string {
	if err.Key == "" {
		return fmt.Sprintf("invalid configuration in [%s]: %v", err.Section, err.Reason)
	}
	return fmt.Sprintf("invalid configuration %s:%s: %v", err.Section, err.Key, err.Reason)
}

func (err *ErrConfiguration) Unwrap() error {
	return err.Reason
}

// ErrLengthExceeded means a value does not fit in its declared or available
// width.
type ErrLengthExceeded struct {
	Length int
	Max    int
}

func (err *ErrLengthExceeded) Error() string {
	return fmt.Sprintf("length exceeded: %d > %d", err.Length, err.Max)
}

// ErrSizeExceeded means the assembled image is larger than allowed.
type ErrSizeExceeded struct {
	Size int
	Max  int
}

func (err *ErrSizeExceeded) Error() string {
	return fmt.Sprintf("FRU data length (%d bytes) exceeds maximum size (%d bytes)", err.Size, err.Max)
}

func configErr(section, key string, reason error) error {
	return &ErrConfiguration{Section: section, Key: key, Reason: reason}
}
