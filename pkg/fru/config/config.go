// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads frugen configuration files into fru.Values.
//
// Two formats are understood. INI files have one section per area or record:
//
//	[bia]
//	manufacturer = Acme
//	mfg_datetime = 0x123456
//
// YAML files use a mapping of sections to mappings of scalars:
//
//	bia:
//	  manufacturer: Acme
//	  mfg_datetime: 0x123456
//
// Section and key names are case insensitive and the order of keys is kept,
// so custom fields are written in the order they appear in the file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/linuxboot/frugen/pkg/fru"
	"github.com/linuxboot/frugen/pkg/log"
)

// Format is a configuration file syntax.
type Format int

// Supported formats.
const (
	FormatINI Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatINI:
		return "INI"
	case FormatYAML:
		return "YAML"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf guesses the format from the file extension. Anything other than
// .yaml or .yml is read as INI.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatINI
}

// Load reads the configuration file at path.
func Load(path string) (*fru.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration: %w", err)
	}
	format := FormatOf(path)
	log.Debugf("reading %s as %s", path, format)
	v, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse decodes a configuration held in memory.
func Parse(data []byte, format Format) (*fru.Values, error) {
	switch format {
	case FormatINI:
		return LoadINI(bytes.NewReader(data))
	case FormatYAML:
		return LoadYAML(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unknown configuration format %v", format)
}

// LoadINI reads an INI configuration. Keys outside of any section are
// ignored.
func LoadINI(r io.Reader) (*fru.Values, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse INI: %w", err)
	}
	v := fru.NewValues()
	for _, s := range f.Sections() {
		if strings.EqualFold(s.Name(), ini.DefaultSection) {
			if len(s.Keys()) != 0 {
				log.Warnf("ignoring %d keys outside of any section", len(s.Keys()))
			}
			continue
		}
		v.AddSection(s.Name())
		for _, k := range s.Keys() {
			v.Set(s.Name(), k.Name(), k.Value())
		}
	}
	return v, nil
}

// LoadYAML reads a YAML configuration. The document must be a mapping of
// section names to mappings of scalar values; a section may be left empty.
func LoadYAML(r io.Reader) (*fru.Values, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return fru.NewValues(), nil
		}
		return nil, fmt.Errorf("unable to parse YAML: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of sections", root.Line)
	}

	v := fru.NewValues()
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, body := root.Content[i], root.Content[i+1]
		v.AddSection(name.Value)
		switch {
		case body.Kind == yaml.ScalarNode && body.Tag == "!!null":
			continue
		case body.Kind != yaml.MappingNode:
			return nil, fmt.Errorf("line %d: section %q must be a mapping", body.Line, name.Value)
		}
		for j := 0; j+1 < len(body.Content); j += 2 {
			key, value := body.Content[j], body.Content[j+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: %s:%s must be a scalar", value.Line, name.Value, key.Value)
			}
			if value.Tag == "!!null" {
				v.Set(name.Value, key.Value, "")
				continue
			}
			v.Set(name.Value, key.Value, value.Value)
		}
	}
	return v, nil
}
