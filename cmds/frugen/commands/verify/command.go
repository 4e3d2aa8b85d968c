// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
	"github.com/linuxboot/frugen/pkg/fru"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	ImagePath string `short:"i" long:"image" description:"path to the FRU image (raw or .hex)" required:"true"`

	stdout io.Writer
}

// ErrInvalidImage is returned when the image has structural problems.
var ErrInvalidImage = errors.New("invalid FRU image")

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "checks the checksums and bounds of a FRU image"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return `Checks the common header, the info areas and the multi-record
chain of an image and prints every problem found. Field values are
not decoded.`
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	data, err := commands.ReadImage(cmd.ImagePath)
	if err != nil {
		return err
	}

	w := cmd.stdout
	if w == nil {
		w = os.Stdout
	}
	err = fru.Verify(data)
	if err == nil {
		fmt.Fprintf(w, "%s: OK\n", cmd.ImagePath)
		return nil
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	for _, e := range merr.Errors {
		fmt.Fprintf(w, "%s: %v\n", cmd.ImagePath, e)
	}
	return fmt.Errorf("%w: %d problems found", ErrInvalidImage, len(merr.Errors))
}
