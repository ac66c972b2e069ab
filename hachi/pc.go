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

//go:generate stringer -type=PCAction -trimprefix=PC

// PCAction tells how the program counter moves once an instruction has
// executed.
type PCAction uint8

const (
	// PCUnset means no handler decided. It must never reach Resolve.
	PCUnset PCAction = iota
	// PCNext advances to the following instruction.
	PCNext
	// PCSkip skips the following instruction.
	PCSkip
	// PCJump moves to an explicit address.
	PCJump
)

// A ProgramCounter is the outcome produced by a single instruction. The zero
// value is unset.
type ProgramCounter struct {
	Action PCAction
	// Target is only meaningful for PCJump.
	Target uint16
}

// Next returns an outcome that advances by one instruction.
func Next() ProgramCounter { return ProgramCounter{Action: PCNext} }

// Skip returns an outcome that skips the following instruction.
func Skip() ProgramCounter { return ProgramCounter{Action: PCSkip} }

// JumpTo returns an outcome that sets the counter to addr.
func JumpTo(addr uint16) ProgramCounter {
	return ProgramCounter{Action: PCJump, Target: addr}
}

// SkipWhen returns Skip() if cond holds, Next() otherwise.
func SkipWhen(cond bool) ProgramCounter {
	if cond {
		return Skip()
	}
	return Next()
}

// Resolve computes the next counter value from the counter at the start of
// the instruction. Jump targets are returned as-is.
// An unset outcome is an *UnresolvedPCErr.
func (p ProgramCounter) Resolve(pc uint16) (uint16, error) {
	switch p.Action {
	case PCNext:
		return pc + 2, nil
	case PCSkip:
		return pc + 4, nil
	case PCJump:
		return p.Target, nil
	}
	return pc, &UnresolvedPCErr{Outcome: p}
}

func (p ProgramCounter) String() string {
	if p.Action == PCJump {
		return fmt.Sprintf("Jump(%03X)", p.Target)
	}
	return p.Action.String()
}
