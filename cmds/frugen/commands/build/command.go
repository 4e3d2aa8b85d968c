// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
	"github.com/linuxboot/frugen/pkg/log"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.ImageOptions

	OutputPath string `short:"o" long:"output" description:"path to the image file to write" required:"true"`
	MaxSize    string `short:"s" long:"size" description:"maximum image size, e.g. 2048 or 2KiB"`
	Format     string `long:"format" description:"output format [raw, hex]"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "builds a FRU image"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return `Builds a FRU image from an INI or YAML description and writes it
as a raw binary or as Intel HEX. Nothing is written if the
description is invalid or the image exceeds the maximum size.`
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	format := commands.FormatOfPath(cmd.OutputPath)
	if cmd.Format != "" {
		format = commands.ParseFormat(cmd.Format)
		if format == commands.FormatUndefined {
			return commands.ErrArgs{Err: fmt.Errorf("unknown format '%s'", cmd.Format)}
		}
	}

	var maxSize uint64
	if cmd.MaxSize != "" {
		var err error
		maxSize, err = humanize.ParseBytes(cmd.MaxSize)
		if err != nil {
			return commands.ErrArgs{Err: fmt.Errorf("invalid size '%s': %w", cmd.MaxSize, err)}
		}
		if maxSize > math.MaxInt {
			return commands.ErrArgs{Err: fmt.Errorf("size '%s' is too large", cmd.MaxSize)}
		}
	}

	img, err := cmd.BuildImage(int(maxSize))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := commands.WriteImage(&buf, img, format); err != nil {
		return fmt.Errorf("unable to encode the image: %w", err)
	}
	if err := os.WriteFile(cmd.OutputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("unable to write the image file '%s': %w", cmd.OutputPath, err)
	}
	log.Infof("wrote %s of FRU data to %s (%v)", humanize.IBytes(uint64(img.Len())), cmd.OutputPath, format)
	return nil
}
