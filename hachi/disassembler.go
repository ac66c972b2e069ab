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
	"fmt"
	"math/bits"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// An Instruction is a disassembled CHIP-8 instruction, or 1-2 bytes of raw
// data that don't decode to one.
type Instruction struct {
	// Address the instruction is loaded at.
	Address uint16
	// Data holds the raw bytes.
	Data []byte
	// Pattern is the opcode pattern, such as "8XY4". Empty for raw data.
	Pattern string
	// Mnemonic is the pseudo-asm name, "DB" for raw data.
	Mnemonic string
	// Operands is the pseudo-asm operand list.
	Operands string
}

// Opcode returns the data as a 16-bit integer.
func (i Instruction) Opcode() (res uint16) {
	res = uint16(i.Data[0])
	if len(i.Data) == 2 {
		res <<= 8
		res |= uint16(i.Data[1])
	}
	return
}

// Size returns the size of the instruction in bytes.
func (i Instruction) Size() int { return len(i.Data) }

// IsData reports whether the bytes did not decode to an instruction.
func (i Instruction) IsData() bool { return i.Pattern == "" }

// String returns a pseudo-asm representation of the instruction.
func (i Instruction) String() string {
	if i.Operands == "" {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + i.Operands
}

// Description returns a detailed description of what the instruction does.
func (i Instruction) Description() string {
	if i.IsData() {
		return "Unknown / Raw Data"
	}
	return i.Pattern + ": " + descriptions[i.Pattern]
}

// ASCII returns the ASCII representation of the raw data for this
// instruction, or an empty string if the data is not printable ascii.
func (i Instruction) ASCII() (res string) {
	if isPrintableASCII(i.Data) {
		res = string(i.Data)
	}
	return
}

// -----------------------------------------------------------------------------

var descriptions = map[string]string{
	"00E0": "Clears the screen.",
	"00EE": "Returns from a subroutine.",
	"1NNN": "Jumps to address NNN.",
	"2NNN": "Calls subroutine at NNN.",
	"3XNN": "Skips the next instruction if VX equals NN.",
	"4XNN": "Skips the next instruction if VX doesn't equal NN.",
	"5XY0": "Skips the next instruction if VX equals VY.",
	"6XNN": "Sets VX to NN.",
	"7XNN": "Adds NN to VX, without carry.",
	"8XY0": "Sets VX to the value of VY.",
	"8XY1": "Sets VX to VX | VY (bit-wise OR).",
	"8XY2": "Sets VX to VX & VY (bit-wise AND).",
	"8XY3": "Sets VX to VX ^ VY (bit-wise XOR).",
	"8XY4": "VX += VY. VF = 1 when there's a carry, 0 when there isn't.",
	"8XY5": "VX -= VY. VF = 1 when VX > VY, 0 otherwise.",
	"8XY6": "VX >>= 1. VF = least significant bit prior to the shift.",
	"8XY7": "VX = VY - VX. VF = 1 when the result is negative, 0 otherwise.",
	"8XYE": "VX <<= 1. VF = most significant bit prior to the shift.",
	"9XY0": "Skips the next instruction if VX doesn't equal VY.",
	"ANNN": "Sets I to the address NNN.",
	"BNNN": "Jumps to the address NNN plus V0.",
	"CXNN": "Sets VX to a random number (0-FF) & NN (bit-wise AND).",
	"DXYN": "Draws N rows of sprite pointed by I at VX,VY. VF = collision.",
	"EX9E": "Skips the next instruction if the key stored in VX is pressed.",
	"EXA1": "Skips the next instruction if the key stored in VX isn't pressed.",
	"FX07": "Sets VX to the value of the delay timer.",
	"FX0A": "A key press is awaited, and then key number is stored in VX.",
	"FX15": "Sets the delay timer to VX.",
	"FX18": "Sets the sound timer to VX.",
	"FX1E": "Adds VX to I. VF = 1 when I exceeds FFF.",
	"FX29": "Sets I to the location of the sprite for the character in VX.",
	"FX33": "Store BCD representation of VX in memory at I, I+1, and I+2.",
	"FX55": "Stores V0 to VX in memory starting at address I. I += X + 1.",
	"FX65": "Fills V0 to VX with values from memory starting at address I.",
}

// pattern returns the opcode pattern for an opcode the emulator can execute,
// or an empty string.
func pattern(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode & 0x00FF {
		case 0xE0:
			return "00E0"
		case 0xEE:
			return "00EE"
		}
	case 0x5000, 0x9000:
		// the low nibble is ignored
		return fmt.Sprintf("%XXY0", opcode>>12)
	case 0x8000:
		switch n := opcode & 0x000F; n {
		case 0x0, 0x1, 0x2, 0x3, 0x4, 0x5, 0x6, 0x7, 0xE:
			return fmt.Sprintf("8XY%X", n)
		}
	case 0xE000:
		switch opcode & 0x00FF {
		case 0x9E:
			return "EX9E"
		case 0xA1:
			return "EXA1"
		}
	case 0xF000:
		p := fmt.Sprintf("FX%02X", opcode&0x00FF)
		if _, ok := descriptions[p]; ok {
			return p
		}
	case 0x1000, 0x2000, 0xA000, 0xB000:
		return fmt.Sprintf("%XNNN", opcode>>12)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("%XXNN", opcode>>12)
	case 0xD000:
		return "DXYN"
	}
	return ""
}

// fallback mnemonics, for opcodes the retrogolib table doesn't name
var mnemonics = map[string]string{
	"00E0": "CLS", "00EE": "RET", "1NNN": "JP", "2NNN": "CALL",
	"3XNN": "SE", "4XNN": "SNE", "5XY0": "SE", "6XNN": "LD", "7XNN": "ADD",
	"8XY0": "LD", "8XY1": "OR", "8XY2": "AND", "8XY3": "XOR", "8XY4": "ADD",
	"8XY5": "SUB", "8XY6": "SHR", "8XY7": "SUBN", "8XYE": "SHL",
	"9XY0": "SNE", "ANNN": "LD", "BNNN": "JP", "CXNN": "RND", "DXYN": "DRW",
	"EX9E": "SKP", "EXA1": "SKNP", "FX07": "LD", "FX0A": "LD", "FX15": "LD",
	"FX18": "LD", "FX1E": "ADD", "FX29": "LD", "FX33": "LD", "FX55": "LD",
	"FX65": "LD",
}

// mnemonic looks the opcode up in the retrogolib CHIP-8 opcode table,
// preferring the entry with the most specific mask. Bits the interpreter
// ignores are cleared first so that 01E0 still reads as CLS.
func mnemonic(p string, opcode uint16) string {
	switch p {
	case "00E0", "00EE":
		opcode &= 0x00FF
	case "5XY0", "9XY0":
		opcode &= 0xFFF0
	}

	name, best := mnemonics[p], -1
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Instruction == nil || op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		if n := bits.OnesCount16(op.Info.Mask); n > best {
			name, best = strings.ToUpper(op.Instruction.Name), n
		}
	}
	return name
}

// operands formats the operands of a decoded instruction.
func operands(p string, op Cycle) string {
	switch p {
	case "00E0", "00EE":
		return ""
	case "1NNN", "2NNN":
		return fmt.Sprintf("%03X", op.NNN)
	case "BNNN":
		return fmt.Sprintf("V0,%03X", op.NNN)
	case "ANNN":
		return fmt.Sprintf("I,%03X", op.NNN)
	case "3XNN", "4XNN", "6XNN", "7XNN", "CXNN":
		return fmt.Sprintf("V%1X,%02X", op.X, op.KK)
	case "DXYN":
		return fmt.Sprintf("V%1X,V%1X,%1X", op.X, op.Y, op.N)
	case "8XY6", "8XYE", "EX9E", "EXA1":
		return fmt.Sprintf("V%1X", op.X)
	case "FX07":
		return fmt.Sprintf("V%1X,DT", op.X)
	case "FX0A":
		return fmt.Sprintf("V%1X,K", op.X)
	case "FX15":
		return fmt.Sprintf("DT,V%1X", op.X)
	case "FX18":
		return fmt.Sprintf("ST,V%1X", op.X)
	case "FX1E":
		return fmt.Sprintf("I,V%1X", op.X)
	case "FX29":
		return fmt.Sprintf("F,V%1X", op.X)
	case "FX33":
		return fmt.Sprintf("B,V%1X", op.X)
	case "FX55":
		return fmt.Sprintf("[I],V%1X", op.X)
	case "FX65":
		return fmt.Sprintf("V%1X,[I]", op.X)
	}
	// 5XY0, 9XY0 and the remaining 8XYN
	return fmt.Sprintf("V%1X,V%1X", op.X, op.Y)
}

// decodeInstruction disassembles 1 or 2 bytes loaded at addr.
func decodeInstruction(addr uint16, b []byte) Instruction {
	in := Instruction{Address: addr, Data: b, Mnemonic: "DB"}
	if len(b) == 2 {
		opcode := uint16(b[0])<<8 | uint16(b[1])
		if p := pattern(opcode); p != "" {
			in.Pattern = p
			in.Mnemonic = mnemonic(p, opcode)
			in.Operands = operands(p, Decode(opcode))
			return in
		}
	}
	in.Operands = fmt.Sprintf("% 02X", b)
	return in
}

// -----------------------------------------------------------------------------

// DisassembleSimple disassembles a program image loaded at ProgramStart and
// returns one instruction per 2 bytes. Words that don't decode become raw
// data, as does a trailing odd byte. It cannot tell code from sprite data.
func DisassembleSimple(b []byte) (res []Instruction) {
	for i := 0; i < len(b); i += 2 {
		end := min(i+2, len(b))
		res = append(res, decodeInstruction(uint16(ProgramStart+i), b[i:end]))
	}
	return
}

// Disassemble decodes the instruction at addr in the memory of c.
func Disassemble(c *Chip8, addr uint16) Instruction {
	b := []byte{c.Memory[addr&addrMask], c.Memory[(addr+1)&addrMask]}
	return decodeInstruction(addr, b)
}
