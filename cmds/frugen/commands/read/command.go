// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

import (
	"fmt"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	ImagePath string `short:"i" long:"image" description:"path to the FRU image" required:"true"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "decodes a FRU image (not implemented)"
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
	return fmt.Errorf("reading '%s': %w", cmd.ImagePath, commands.ErrNotImplemented)
}
