// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import (
	"fmt"
	"io"
	"os"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
)

// Version is set at link time with
// -ldflags "-X github.com/linuxboot/frugen/cmds/frugen/commands/version.Version=..."
var Version = "devel"

var _ commands.Command = (*Command)(nil)

type Command struct {
	stdout io.Writer
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the version"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}
	w := cmd.stdout
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "frugen version %s\n", Version)
	return nil
}
