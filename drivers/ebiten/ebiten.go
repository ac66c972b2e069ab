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

// Package ebiten implements a windowed driver for hachi on top of ebiten.
//
// The driver is itself an ebiten.Game, retrieved with
// GetDriverData("game") and passed to ebiten.RunGame. Every ebiten update
// runs one emulator Frame, so the timers count down at the ebiten tick rate
// (60 per second unless changed with ebiten.SetTPS).
//
// The game stops with ebiten.Termination once the context set through
// SetDriverData("context", ctx) is done. Key mappings can be replaced through
// SetDriverData("key_map", myMap) with a map[ebiten.Key]uint8.
package ebiten

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hachi-emu/go-hachi/hachi"
)

// DefaultKeyMap maps the left hand side of a qwerty keyboard to the hex
// keyboard.
var DefaultKeyMap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: hachi.Key1, ebiten.KeyDigit2: hachi.Key2,
	ebiten.KeyDigit3: hachi.Key3, ebiten.KeyDigit4: hachi.KeyC,
	ebiten.KeyQ: hachi.Key4, ebiten.KeyW: hachi.Key5,
	ebiten.KeyE: hachi.Key6, ebiten.KeyR: hachi.KeyD,
	ebiten.KeyA: hachi.Key7, ebiten.KeyS: hachi.Key8,
	ebiten.KeyD: hachi.Key9, ebiten.KeyF: hachi.KeyE,
	ebiten.KeyZ: hachi.KeyA, ebiten.KeyX: hachi.Key0,
	ebiten.KeyC: hachi.KeyB, ebiten.KeyV: hachi.KeyF,
}

// Colors of lit and unlit pixels.
var (
	Foreground = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	Background = color.RGBA{0x10, 0x10, 0x10, 0xFF}
)

// An EbitenDriver renders the screen into a window and polls the keyboard.
type EbitenDriver struct {
	c      *hachi.Chip8
	ctx    context.Context
	keyMap map[ebiten.Key]uint8
	pixels []byte
}

func (d *EbitenDriver) OnInit(c *hachi.Chip8) {
	d.c = c
	if d.ctx == nil {
		d.ctx = context.Background()
	}
	if d.keyMap == nil {
		d.keyMap = DefaultKeyMap
	}
	d.pixels = c.Screen.Image(Foreground, Background).Pix
}

func (d *EbitenDriver) OnUpdate(c *hachi.Chip8) {
	for key, k := range d.keyMap {
		c.SetKey(k, ebiten.IsKeyPressed(key))
	}
}

func (d *EbitenDriver) UpdateScreen(c *hachi.Chip8) {
	d.pixels = c.Screen.Image(Foreground, Background).Pix
}

func (d *EbitenDriver) GetData(key string) any {
	if key == "game" {
		return d
	}
	return nil
}

func (d *EbitenDriver) SetData(key string, value any) error {
	switch key {
	case "context":
		ctx, ok := value.(context.Context)
		if !ok {
			return fmt.Errorf("invalid type %T for context", value)
		}
		d.ctx = ctx
	case "key_map":
		keyMap, ok := value.(map[ebiten.Key]uint8)
		if !ok {
			return fmt.Errorf("invalid type %T for key_map", value)
		}
		d.keyMap = keyMap
	default:
		return fmt.Errorf("unknown data key '%s'", key)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Update runs one emulator frame.
func (d *EbitenDriver) Update() error {
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := d.c.Frame(); err != nil {
		return fmt.Errorf("%v: %w", d.c, err)
	}
	return nil
}

func (d *EbitenDriver) Draw(screen *ebiten.Image) {
	screen.WritePixels(d.pixels)
}

// Layout keeps the logical screen at the CHIP-8 resolution and lets ebiten
// scale it to the window.
func (d *EbitenDriver) Layout(_, _ int) (int, int) {
	return hachi.DisplayWidth, hachi.DisplayHeight
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("ebiten", &EbitenDriver{}); err != nil {
		panic(err)
	}
}
