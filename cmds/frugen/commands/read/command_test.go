// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
)

func TestExecute(t *testing.T) {
	err := (&Command{ImagePath: "fru.bin"}).Execute(nil)
	require.ErrorIs(t, err, commands.ErrNotImplemented)
}
