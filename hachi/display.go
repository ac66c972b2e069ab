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

package hachi

import (
	"image"
	"image/color"
	"strings"
)

// Screen size in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome screen buffer, indexed [y][x]. A true cell is lit.
type Display [DisplayHeight][DisplayWidth]bool

// Clear unlights every pixel.
func (d *Display) Clear() {
	*d = Display{}
}

// Pixel reports whether the pixel at x, y is lit. Coordinates wrap around.
func (d *Display) Pixel(x, y int) bool {
	return d[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// DrawSprite XORs a sprite onto the screen with its top left corner at x, y.
// Each byte is one row of 8 pixels, most significant bit first. Both axes
// wrap around. Returns true if any lit pixel was turned off.
func (d *Display) DrawSprite(x, y int, sprite []byte) (collision bool) {
	for row, bits := range sprite {
		py := wrap(y+row, DisplayHeight)
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := wrap(x+col, DisplayWidth)
			if d[py][px] {
				collision = true
			}
			d[py][px] = !d[py][px]
		}
	}
	return
}

// Lit returns the amount of lit pixels.
func (d *Display) Lit() (n int) {
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				n++
			}
		}
	}
	return
}

// String renders the screen as rows of '#' (lit) and '.' (unlit).
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Image renders the screen 1:1 with on for lit pixels and off for the rest.
func (d *Display) Image(on, off color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, DisplayWidth, DisplayHeight))
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				img.Set(x, y, on)
			} else {
				img.Set(x, y, off)
			}
		}
	}
	return img
}
