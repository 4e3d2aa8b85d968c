// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/jessevdk/go-flags"
)

// Command is a frugen verb. The struct carries the verb options as
// go-flags tags and Execute runs it.
type Command interface {
	flags.Commander

	// ShortDescription is the one line summary shown in "frugen --help".
	ShortDescription() string

	// LongDescription is the text shown in "frugen <verb> --help"; it may be
	// empty.
	LongDescription() string
}
