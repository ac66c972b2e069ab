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

// execute runs a decoded instruction and returns where the program counter
// goes next. c.PC still points at the instruction.
func (c *Chip8) execute(op Cycle) (ProgramCounter, error) {
	switch op.Opcode & 0xF000 {
	case 0x0000:
		// only the low byte selects the instruction
		switch op.KK {
		case 0xE0:
			// CLS
			c.Screen.Clear()
			c.DrawFlag = true
			return Next(), nil
		case 0xEE:
			// RET
			addr, err := c.Stack.Pop()
			if err != nil {
				return ProgramCounter{}, err
			}
			return JumpTo(addr), nil
		}
		// SYS NNN calls machine code on the original hardware, which can't
		// be emulated.
	case 0x1000:
		// JP NNN
		return JumpTo(op.NNN), nil
	case 0x2000:
		// CALL NNN
		if err := c.Stack.Push(c.PC + 2); err != nil {
			return ProgramCounter{}, err
		}
		return JumpTo(op.NNN), nil
	case 0x3000:
		// SE VX,NN
		return SkipWhen(c.V[op.X] == op.KK), nil
	case 0x4000:
		// SNE VX,NN
		return SkipWhen(c.V[op.X] != op.KK), nil
	case 0x5000:
		// SE VX,VY
		return SkipWhen(c.V[op.X] == c.V[op.Y]), nil
	case 0x6000:
		// LD VX,NN
		c.V[op.X] = op.KK
		return Next(), nil
	case 0x7000:
		// ADD VX,NN (no carry)
		c.V[op.X] += op.KK
		return Next(), nil
	case 0x8000:
		if c.executeALU(op) {
			return Next(), nil
		}
	case 0x9000:
		// SNE VX,VY
		return SkipWhen(c.V[op.X] != c.V[op.Y]), nil
	case 0xA000:
		// LD I,NNN
		c.I = op.NNN
		return Next(), nil
	case 0xB000:
		// JP V0,NNN
		return JumpTo(op.NNN + uint16(c.V[0])), nil
	case 0xC000:
		// RND VX,NN
		c.V[op.X] = uint8(c.rnd.Uint32()) & op.KK
		return Next(), nil
	case 0xD000:
		// DRW VX,VY,N
		c.draw(op)
		return Next(), nil
	case 0xE000:
		key := c.V[op.X] & 0x0F
		switch op.KK {
		case 0x9E:
			// SKP VX
			return SkipWhen(c.Keys[key]), nil
		case 0xA1:
			// SKNP VX
			return SkipWhen(!c.Keys[key]), nil
		}
	case 0xF000:
		if c.executeMisc(op) {
			return Next(), nil
		}
	}

	return ProgramCounter{}, &UnknownOpcodeErr{Opcode: op.Opcode, Address: c.PC}
}

// executeALU runs the 8XYN register operations. Returns false for an unknown
// N.
func (c *Chip8) executeALU(op Cycle) bool {
	x, y := op.X, op.Y

	switch op.N {
	case 0x0:
		// LD VX,VY
		c.V[x] = c.V[y]
	case 0x1:
		// OR VX,VY
		c.V[x] |= c.V[y]
	case 0x2:
		// AND VX,VY
		c.V[x] &= c.V[y]
	case 0x3:
		// XOR VX,VY
		c.V[x] ^= c.V[y]
	case 0x4:
		// ADD VX,VY
		result := uint16(c.V[x]) + uint16(c.V[y])
		c.V[x] = uint8(result)
		c.V[0xF] = flag(result > 0xFF)
	case 0x5:
		// SUB VX,VY
		// VF = 1 when there's no borrow, computed before VX changes.
		vx, vy := c.V[x], c.V[y]
		c.V[0xF] = flag(vx > vy)
		c.V[x] = vx - vy
	case 0x6:
		// SHR VX
		c.V[0xF] = c.V[x] & 0x01
		c.V[x] >>= 1
	case 0x7:
		// SUBN VX,VY
		// VF = 1 when VY - VX is negative as a signed byte, which is the
		// opposite direction of the SUB flag.
		diff := c.V[y] - c.V[x]
		c.V[0xF] = flag(int8(diff) < 0)
		c.V[x] = diff
	case 0xE:
		// SHL VX
		c.V[0xF] = c.V[x] >> 7
		c.V[x] <<= 1
	default:
		return false
	}
	return true
}

// executeMisc runs the FXNN timer, keyboard and memory operations. Returns
// false for an unknown NN.
func (c *Chip8) executeMisc(op Cycle) bool {
	x := op.X

	switch op.KK {
	case 0x07:
		// LD VX,DT
		c.V[x] = c.DT
	case 0x0A:
		// LD VX,K
		c.WaitingForKey = true
		c.waitReg = x
		c.heldKeys = c.Keys
	case 0x15:
		// LD DT,VX
		c.DT = c.V[x]
	case 0x18:
		// LD ST,VX
		c.ST = c.V[x]
	case 0x1E:
		// ADD I,VX
		// undocumented feature - VF is set when I leaves the 12-bit range.
		c.I += uint16(c.V[x])
		c.V[0xF] = flag(c.I > 0x0FFF)
	case 0x29:
		// LD I,CHAR VX
		c.I = FontAddress + uint16(c.V[x])*GlyphSize
	case 0x33:
		// LD [I],BCD VX
		value := c.V[x]
		c.Memory[c.I&addrMask] = value / 100
		c.Memory[(c.I+1)&addrMask] = value / 10 % 10
		c.Memory[(c.I+2)&addrMask] = value % 10
	case 0x55:
		// LD [I],VX
		for i := uint16(0); i <= uint16(x); i++ {
			c.Memory[(c.I+i)&addrMask] = c.V[i]
		}
		c.I += uint16(x) + 1
	case 0x65:
		// LD VX,[I]
		for i := uint16(0); i <= uint16(x); i++ {
			c.V[i] = c.Memory[(c.I+i)&addrMask]
		}
	default:
		return false
	}
	return true
}

// draw XORs N rows of the sprite at I onto the screen at VX,VY and sets VF
// on collision.
func (c *Chip8) draw(op Cycle) {
	x, y := int(c.V[op.X]), int(c.V[op.Y])

	sprite := make([]byte, op.N)
	for row := range sprite {
		sprite[row] = c.Memory[(c.I+uint16(row))&addrMask]
	}

	c.V[0xF] = flag(c.Screen.DrawSprite(x, y, sprite))
	c.DrawFlag = true
}
