// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
)

func TestExecute(t *testing.T) {
	var out bytes.Buffer
	cmd := &Command{
		ImageOptions: commands.ImageOptions{ConfigPath: "../../testdata/fru.ini"},
		stdout:       &out,
	}
	require.NoError(t, cmd.Execute(nil))
	for _, name := range []string{"Internal Use", "Chassis Info", "Board Info", "Product Info", "MAC Address", "System Configuration"} {
		require.Contains(t, out.String(), name)
	}

	require.Error(t, cmd.Execute([]string{"extra"}))
}
