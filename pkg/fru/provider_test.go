// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuesOrder(t *testing.T) {
	v := NewValues()
	v.Set("PIA", "zeta", "1")
	v.Set("cia", "alpha", "2")
	v.Set("pia", "Beta", "3")
	v.AddSection("mia_ver")
	v.Set("pia", "ZETA", "4")

	require.Equal(t, []string{"pia", "cia", "mia_ver"}, v.Sections())
	require.Equal(t, []string{"zeta", "beta"}, v.ExtraKeys("pia", nil))

	s, ok := v.String("Pia", "zeta")
	require.True(t, ok)
	require.Equal(t, "4", s)

	require.True(t, v.HasSection("MIA_VER"))
	require.False(t, v.HasSection("bia"))
	require.Nil(t, v.ExtraKeys("bia", nil))
}

func TestValuesInt(t *testing.T) {
	v := withSection(NewValues(), "s",
		"dec", "23",
		"hex", "0x17",
		"oct", "027",
		"bin", "0b10111",
		"spaced", " 23 ",
		"neg", "-5",
		"word", "twenty",
		"empty", "",
	)
	var tests = []struct {
		key string
		n   int64
		ok  bool
	}{
		{"dec", 23, true},
		{"hex", 23, true},
		{"oct", 23, true},
		{"bin", 23, true},
		{"spaced", 23, true},
		{"neg", -5, true},
		{"word", 0, false},
		{"empty", 0, false},
		{"missing", 0, false},
	}
	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			n, ok := v.Int("s", test.key)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.n, n)
		})
	}
}

func TestValuesExtraKeys(t *testing.T) {
	v := withSection(NewValues(), SectionProduct,
		KeyManufacturer, "Acme",
		"custom1", "a",
		KeyLanguageCode, "0",
		"Custom2", "b",
		"family_size", "4",
	)
	require.Equal(t, []string{"custom1", "custom2"}, v.ExtraKeys(SectionProduct, ProductInfo.KnownKeys()))
}
