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

// eb-hachi runs a CHIP-8 program in a window.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	_ "github.com/hachi-emu/go-hachi/drivers"
	"github.com/hachi-emu/go-hachi/hachi"
	"github.com/hachi-emu/go-hachi/internal/config"
)

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	ha, err := hachi.New("ebiten", opts.Settings(logger))
	if err != nil {
		return err
	}

	if _, err = ha.Load(opts.Program); err != nil {
		return err
	}

	if err = ha.SetDriverData("context", ctx); err != nil {
		return err
	}
	game, ok := ha.GetDriverData("game").(ebiten.Game)
	if !ok {
		return errors.New("driver game is not an ebiten.Game")
	}

	ebiten.SetWindowTitle("hachi - " + filepath.Base(opts.Program))
	ebiten.SetWindowSize(hachi.DisplayWidth*opts.Scale,
		hachi.DisplayHeight*opts.Scale)
	ebiten.SetTPS(60)

	if err = ebiten.RunGame(game); err != nil {
		return err
	}
	return ctx.Err()
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
