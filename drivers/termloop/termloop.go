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

// Package termloop implements a terminal driver for hachi on top of termloop.
//
// The driver initializes a termloop context which can then be retrieved from
// GetDriverData("ctx"). The caller must then set up an entity that calls
// Frame() on the emulator instance on every Draw call.
//
// Keys follow the COSMAC VIP layout on 1234/qwer/asdf/zxcv, with the arrow
// keys and enter as 8, 4, 6, 2 and 5. The character mapping can be replaced
// through SetDriverData("key_map", myMap), where myMap is a map[rune]uint8
// with characters as keys and CHIP-8 key indices (hachi.Key0...hachi.KeyF) as
// values.
package termloop

import (
	"fmt"
	"time"

	tl "github.com/JoelOtter/termloop"

	"github.com/hachi-emu/go-hachi/hachi"
)

// keyRelease is how long a key stays down after its last key event. Terminals
// only report key presses.
const keyRelease = 100 * time.Millisecond

// DefaultKeyMap maps the left hand side of a qwerty keyboard to the hex
// keyboard.
var DefaultKeyMap = map[rune]uint8{
	'1': hachi.Key1, '2': hachi.Key2, '3': hachi.Key3, '4': hachi.KeyC,
	'q': hachi.Key4, 'w': hachi.Key5, 'e': hachi.Key6, 'r': hachi.KeyD,
	'a': hachi.Key7, 's': hachi.Key8, 'd': hachi.Key9, 'f': hachi.KeyE,
	'z': hachi.KeyA, 'x': hachi.Key0, 'c': hachi.KeyB, 'v': hachi.KeyF,
}

var specialKeys = map[tl.Key]uint8{
	tl.KeyArrowDown:  hachi.Key2,
	tl.KeyArrowLeft:  hachi.Key4,
	tl.KeyArrowRight: hachi.Key6,
	tl.KeyArrowUp:    hachi.Key8,
	tl.KeyEnter:      hachi.Key5,
}

// A TermloopDriver is a terminal-based driver that uses the termloop library.
// It shows the current emulator state in real time and the screen.
type TermloopDriver struct {
	g                 *tl.Game
	registers         *tl.Text
	pointersAndTimers *tl.Text
	devices           *tl.Text
	instruction       *tl.Text
	stack             []*tl.Text
	syscalls          [10]*tl.Text
	screen            [hachi.DisplayWidth][hachi.DisplayHeight]*tl.Rectangle
	lastScreen        hachi.Display
	keyMap            map[rune]uint8
}

func (d *TermloopDriver) printSyscall(s string) {
	for i := len(d.syscalls) - 1; i > 0; i-- {
		d.syscalls[i].SetText(d.syscalls[i-1].Text())
	}
	d.syscalls[0].SetText(s)
}

// keyForEvent returns the CHIP-8 key an event maps to.
func (d *TermloopDriver) keyForEvent(ev tl.Event) (uint8, bool) {
	if ev.Type != tl.EventKey {
		return 0, false
	}
	if ev.Ch != 0 {
		key, ok := d.keyMap[ev.Ch]
		return key, ok
	}
	key, ok := specialKeys[ev.Key]
	return key, ok
}

// just a wrapper entity to handle input
type inputHandler struct {
	c *hachi.Chip8
	d *TermloopDriver
	// since termbox only reports key presses we need to add a timer to
	// automatically release those keys
	pressed map[uint8]time.Time
}

func (i *inputHandler) Draw(s *tl.Screen) {
	for key, t := range i.pressed {
		if time.Since(t) > keyRelease {
			i.c.SetKey(key, false)
			delete(i.pressed, key)
		}
	}
}

func (i *inputHandler) Tick(ev tl.Event) {
	key, ok := i.d.keyForEvent(ev)
	if !ok {
		return
	}
	i.c.SetKey(key, true)
	i.pressed[key] = time.Now()
}

func (d *TermloopDriver) OnInit(c *hachi.Chip8) {
	if d.keyMap == nil {
		d.keyMap = DefaultKeyMap
	}

	d.g = tl.NewGame()
	scr := d.g.Screen()

	scr.AddEntity(&inputHandler{c, d, make(map[uint8]time.Time)})
	scr.AddEntity(tl.NewText(0, 0, "Stack   Syscalls",
		tl.ColorDefault, tl.ColorDefault))

	// stack
	d.stack = make([]*tl.Text, len(c.Stack.Entries))
	for i := range d.stack {
		d.stack[i] = tl.NewText(0, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.stack[i])
	}

	// syscall log
	for i := range d.syscalls {
		d.syscalls[i] = tl.NewText(8, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.syscalls[i])
	}

	// chip info
	d.registers = tl.NewText(20, 0, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.registers)

	d.pointersAndTimers = tl.NewText(20, 1, "",
		tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.pointersAndTimers)

	d.devices = tl.NewText(20, 2, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.devices)

	d.instruction = tl.NewText(20, 3, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.instruction)

	// screen preview at 20,4; a pixel is shown by adding its rectangle
	for x := range d.screen {
		for y := range d.screen[x] {
			d.screen[x][y] = tl.NewRectangle(20+x, 4+y, 1, 1, tl.ColorWhite)
		}
	}
	d.lastScreen = hachi.Display{}
}

func (d *TermloopDriver) OnUpdate(c *hachi.Chip8) {
	d.registers.SetText(fmt.Sprintf("Registers: % 02X", c.V))
	d.pointersAndTimers.SetText(
		fmt.Sprintf("I: %04X SP: %v, PC: %04X, DT: %02X, ST: %02X",
			c.I, c.Stack.SP, c.PC, c.DT, c.ST))

	var keys uint16
	for k, down := range c.Keys {
		if down {
			keys |= 1 << k
		}
	}
	waiting := ""
	if c.WaitingForKey {
		waiting = " (waiting)"
	}
	d.devices.SetText(fmt.Sprintf("Keyboard: %016b%s", keys, waiting))
	d.instruction.SetText(fmt.Sprintf("Last: %v Next: %v",
		hachi.Decode(c.Opcode), hachi.Disassemble(c, c.PC)))

	for i := range d.stack {
		if i < c.Stack.SP {
			d.stack[i].SetText(fmt.Sprintf("%04X", c.Stack.Entries[i]))
		} else {
			d.stack[i].SetText("")
		}
	}
}

func (d *TermloopDriver) UpdateScreen(c *hachi.Chip8) {
	if c.Opcode&0xF0FF == 0x00E0 {
		d.printSyscall("CLS")
	} else {
		d.printSyscall("DRW")
	}

	scr := d.g.Screen()
	for y := range c.Screen {
		for x, lit := range c.Screen[y] {
			switch was := d.lastScreen[y][x]; {
			case lit && !was:
				scr.AddEntity(d.screen[x][y])
			case !lit && was:
				scr.RemoveEntity(d.screen[x][y])
			}
		}
	}

	d.lastScreen = c.Screen
}

func (d *TermloopDriver) GetData(key string) any {
	if key == "ctx" {
		return d.g
	}
	return nil
}

func (d *TermloopDriver) SetData(key string, value any) error {
	if key != "key_map" {
		return fmt.Errorf("unknown data key '%s'", key)
	}
	newMap, ok := value.(map[rune]uint8)
	if !ok {
		return fmt.Errorf("invalid type %T for key_map", value)
	}
	d.keyMap = newMap
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("termloop", &TermloopDriver{}); err != nil {
		panic(err)
	}
}
