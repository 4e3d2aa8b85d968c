// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"strconv"
	"strings"
)

// Provider supplies the field values an image is built from. Sections and
// keys are named after the FRU areas and records, e.g. "bia" and
// "manufacturer". Implementations are only read during a build.
type Provider interface {
	// String returns the raw value of section:key.
	String(section, key string) (string, bool)
	// Int returns the value of section:key parsed as an integer.
	Int(section, key string) (int64, bool)
	// HasSection reports whether the section exists, even if empty.
	HasSection(section string) bool
	// ExtraKeys returns the keys of section not listed in known, in a
	// stable order.
	ExtraKeys(section string, known []string) []string
}

type entry struct {
	key   string
	value string
}

type section struct {
	name    string
	entries []entry
}

// Values is an ordered in-memory Provider. Section and key names are case
// insensitive; iteration follows insertion order.
type Values struct {
	sections []*section
}

var _ Provider = (*Values)(nil)

// NewValues returns an empty Values.
func NewValues() *Values {
	return &Values{}
}

func (v *Values) find(name string) *section {
	name = strings.ToLower(name)
	for _, s := range v.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// AddSection declares a section, which makes it present even without keys.
func (v *Values) AddSection(name string) {
	if v.find(name) == nil {
		v.sections = append(v.sections, &section{name: strings.ToLower(name)})
	}
}

// Set stores value under section:key, replacing any previous value while
// keeping the key's original position.
func (v *Values) Set(sectionName, key, value string) {
	v.AddSection(sectionName)
	s := v.find(sectionName)
	key = strings.ToLower(key)
	for i := range s.entries {
		if s.entries[i].key == key {
			s.entries[i].value = value
			return
		}
	}
	s.entries = append(s.entries, entry{key: key, value: value})
}

// Sections returns the section names in insertion order.
func (v *Values) Sections() []string {
	names := make([]string, 0, len(v.sections))
	for _, s := range v.sections {
		names = append(names, s.name)
	}
	return names
}

// String implements Provider.
func (v *Values) String(sectionName, key string) (string, bool) {
	s := v.find(sectionName)
	if s == nil {
		return "", false
	}
	key = strings.ToLower(key)
	for _, e := range s.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Int implements Provider. Values are parsed with base prefix detection, so
// "0x17", "027" and "23" are all accepted.
func (v *Values) Int(sectionName, key string) (int64, bool) {
	str, ok := v.String(sectionName, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(str), 0, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasSection implements Provider.
func (v *Values) HasSection(sectionName string) bool {
	return v.find(sectionName) != nil
}

// ExtraKeys implements Provider.
func (v *Values) ExtraKeys(sectionName string, known []string) []string {
	s := v.find(sectionName)
	if s == nil {
		return nil
	}
	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[strings.ToLower(k)] = true
	}
	var keys []string
	for _, e := range s.entries {
		if !skip[e.key] {
			keys = append(keys, e.key)
		}
	}
	return keys
}
