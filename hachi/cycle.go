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

import "fmt"

// A Cycle holds the fields decoded from the opcode being executed. It only
// lives for one step.
type Cycle struct {
	Opcode uint16
	NNN    uint16 // 12-bit address
	KK     uint8  // 8-bit immediate
	N      uint8  // 4-bit count
	X, Y   uint8  // register indices
}

// Decode splits an opcode into its operand fields.
func Decode(opcode uint16) Cycle {
	return Cycle{
		Opcode: opcode,
		NNN:    opcode & 0x0FFF,
		KK:     uint8(opcode),
		N:      uint8(opcode & 0x000F),
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
	}
}

func (c Cycle) String() string {
	return fmt.Sprintf("%04X{nnn: %03X, kk: %02X, n: %X, x: %X, y: %X}",
		c.Opcode, c.NNN, c.KK, c.N, c.X, c.Y)
}
