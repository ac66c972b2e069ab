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

// tl-hachi runs a CHIP-8 program in the terminal, or headless.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	tl "github.com/JoelOtter/termloop"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	_ "github.com/hachi-emu/go-hachi/drivers/termloop"
	"github.com/hachi-emu/go-hachi/hachi"
	"github.com/hachi-emu/go-hachi/internal/config"
)

// just a wrapper entity to run one emulator frame on every screen frame
type emulatorWrapper struct {
	ha     *hachi.Chip8
	status *tl.Text
	err    error
}

func (e *emulatorWrapper) Draw(s *tl.Screen) {
	if e.err != nil {
		return
	}
	if e.err = e.ha.Frame(); e.err != nil {
		e.status.SetText(fmt.Sprintf("%v (press ctrl+c to exit)", e.err))
	}
	// we must use Draw because Tick is only called on input
}
func (e *emulatorWrapper) Tick(ev tl.Event) {}

func runTerminal(ctx context.Context, ha *hachi.Chip8) error {
	g, ok := ha.GetDriverData("ctx").(*tl.Game)
	if !ok || g == nil {
		return errors.New("driver context is not a termloop game")
	}

	status := tl.NewText(0, hachi.DisplayHeight+5, "",
		tl.ColorRed, tl.ColorDefault)
	g.Screen().AddEntity(status)

	wrapper := &emulatorWrapper{ha: ha, status: status}
	g.Screen().AddEntity(wrapper)

	// termloop can't stop a running game, so on cancellation the terminal is
	// restored and the game is left to die with the process
	if err := runUntilDone(ctx, g.Start, termbox.Close); err != nil {
		return err
	}
	return wrapper.err
}

// runUntilDone calls start in the background and waits for it to return or
// for ctx to be done, in which case stop is called.
func runUntilDone(ctx context.Context, start, stop func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		start()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		stop()
		return ctx.Err()
	}
}

func runHeadless(ctx context.Context, ha *hachi.Chip8, frames int) error {
	err := ha.Run(ctx, frames)
	fmt.Print(ha.Screen.String())
	return err
}

func printDisassembly(w io.Writer, program []byte) {
	tw := tabwriter.NewWriter(w, 8, 8, 0, '\t', 0)
	fmt.Fprintln(tw, "addr\topcode\tpseudo-code\tascii\tdescription\t")

	for _, i := range hachi.DisassembleSimple(program) {
		asciitext := ""
		if ascii := i.ASCII(); ascii != "" {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if i.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		fmt.Fprintf(tw, "%04X\t"+opcodeFormatter+"\t%v\t%s\t%s\n",
			i.Address, i.Opcode(), i, asciitext, i.Description())
	}

	tw.Flush()
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	driver := "termloop"
	if opts.Headless {
		driver = "null"
	}

	ha, err := hachi.New(driver, opts.Settings(logger))
	if err != nil {
		return err
	}

	size, err := ha.Load(opts.Program)
	if err != nil {
		return err
	}
	// keep a copy, the program may modify itself
	program := append([]byte(nil), ha.Program(size)...)

	if opts.Headless {
		err = runHeadless(ctx, ha, opts.Frames)
	} else {
		err = runTerminal(ctx, ha)
	}

	if opts.Disasm {
		printDisassembly(os.Stdout, program)
	}
	return err
}

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(filepath.Base(os.Args[0]), os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, err)
			usageErr.ShowUsage(os.Stderr)
			os.Exit(2)
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Interrupted")
			return
		}
		logger.Fatal("Emulation failed", log.Err(err))
	}
}
