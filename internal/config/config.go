/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

// Package config handles the command line options and logger setup shared by
// the front ends.
package config

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"

	"github.com/hachi-emu/go-hachi/hachi"
)

// Options holds the front end options.
type Options struct {
	Program string // path to the program image

	Cycles   int    // instructions per frame
	Frames   int    // frames to run headless, 0 for no limit
	Scale    int    // window scale of the ebiten front end
	Seed     uint64 // random seed, 0 for a random one
	Debug    bool
	Quiet    bool
	Disasm   bool // print a disassembly listing
	Headless bool // run without a driver and print the screen at exit
}

// A UsageError is returned for bad command lines. ShowUsage prints the
// flag defaults.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage writes the usage text to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <program>\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

// ParseFlags parses the arguments following the command name.
func ParseFlags(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	flags.IntVar(&opts.Cycles, "cycles", hachi.DefaultSettings.CyclesPerFrame,
		"instructions executed per frame")
	flags.IntVar(&opts.Frames, "frames", 0,
		"frames to run in headless mode, 0 runs until interrupted")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 picks one")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "quiet", false, "only log errors")
	flags.BoolVar(&opts.Disasm, "disasm", false,
		"print a disassembly of the program on exit")
	flags.BoolVar(&opts.Headless, "headless", false,
		"run without a display and print the screen on exit")

	usage := func(msg string) error {
		return &UsageError{flags: flags, msg: msg}
	}

	if err := flags.Parse(args); err != nil {
		return opts, usage(err.Error())
	}
	if flags.NArg() != 1 {
		return opts, usage("expected exactly one program file")
	}
	if opts.Scale < 1 {
		return opts, usage(fmt.Sprintf("scale must be positive, got %v", opts.Scale))
	}
	if opts.Frames < 0 {
		return opts, usage(fmt.Sprintf("frames must not be negative, got %v", opts.Frames))
	}
	opts.Program = flags.Arg(0)
	return opts, nil
}

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Settings returns the emulator settings for the options.
func (o Options) Settings(logger *log.Logger) *hachi.Chip8Settings {
	s := &hachi.Chip8Settings{
		Logger:         logger,
		CyclesPerFrame: o.Cycles,
	}
	if o.Seed != 0 {
		s.Rand = rand.New(rand.NewPCG(o.Seed, o.Seed))
	}
	return s
}
