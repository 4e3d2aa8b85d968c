// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// frugen builds IPMI FRU inventory images.
//
// See "Platform Management FRU Information Storage Definition":
// * https://www.intel.com/content/dam/www/public/us/en/documents/product-briefs/platform-management-fru-document-rev-1-2-feb-2013.pdf
//
// Synopsis:
//     frugen [-v] build -c CONFIG -o OUTPUT [-s SIZE] [-a] [--latin1] [--format raw|hex] [--end-of-list]
//     frugen [-v] layout -c CONFIG [-a] [--end-of-list]
//     frugen [-v] verify -i IMAGE
//     frugen read -i IMAGE
//     frugen version
//
// An example:
//     frugen build -c fru.ini -o fru.bin -s 2KiB
//     frugen build -c fru.yaml -o fru.hex --format hex
//     frugen verify -i fru.bin
//
// Description:
//     build:   Assembles an image from an INI or YAML description
//     layout:  Prints the offsets and sizes of the areas and records
//     verify:  Checks the checksums and bounds of an image
//     read:    Decodes an image (not implemented)
//     version: Prints the version
//
// A description has one section per area ("iua", "cia", "bia", "pia") and
// per multi-record ("mia_mar", "mia_ver", "mia_mac", "mia_fan", "mia_bci",
// "mia_sc"); see testdata/fru.ini for a complete example.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/frugen/cmds/frugen/commands"
	"github.com/linuxboot/frugen/cmds/frugen/commands/build"
	"github.com/linuxboot/frugen/cmds/frugen/commands/layout"
	"github.com/linuxboot/frugen/cmds/frugen/commands/read"
	"github.com/linuxboot/frugen/cmds/frugen/commands/verify"
	"github.com/linuxboot/frugen/cmds/frugen/commands/version"
	"github.com/linuxboot/frugen/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"build":   &build.Command{},
		"layout":  &layout.Command{},
		"verify":  &verify.Command{},
		"read":    &read.Command{},
		"version": &version.Command{},
	}
)

type globalOptions struct {
	Verbose bool `short:"v" long:"verbose" description:"print debug messages"`
}

func newParser(opts *globalOptions) *flags.Parser {
	flagsParser := flags.NewParser(opts, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}
	flagsParser.CommandHandler = func(command flags.Commander, args []string) error {
		log.SetLevel(opts.Verbose)
		if command == nil {
			return nil
		}
		return command.Execute(args)
	}
	return flagsParser
}

func main() {
	var opts globalOptions

	// parse arguments and execute the appropriate command
	if _, err := newParser(&opts).Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
