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

// An OutOfMemoryErr is returned upon attempting to load a program that
// exceeds the memory's capacity.
type OutOfMemoryErr struct {
	ProgramSize int
	Free        int
}

func (e *OutOfMemoryErr) Error() string {
	return fmt.Sprintf("not enough memory (program size: %v, free memory: %v)",
		e.ProgramSize, e.Free)
}

// A StackOverflowErr is returned when a call is made with a full stack.
type StackOverflowErr struct {
	Depth int
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow (depth %v)", e.Depth)
}

// A StackUnderflowErr is returned when returning from an empty stack.
type StackUnderflowErr struct{}

func (e *StackUnderflowErr) Error() string {
	return "stack underflow"
}

// An UnknownOpcodeErr is returned when the emulator fetches an instruction it
// cannot decode. Execution cannot continue past it.
type UnknownOpcodeErr struct {
	Opcode  uint16
	Address uint16
}

func (e *UnknownOpcodeErr) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %03X", e.Opcode, e.Address)
}

// An UnresolvedPCErr means an instruction handler returned without deciding
// where the program counter goes. This is always a bug in the emulator.
type UnresolvedPCErr struct {
	Opcode  uint16
	Address uint16
	Outcome ProgramCounter
}

func (e *UnresolvedPCErr) Error() string {
	return fmt.Sprintf("unresolved program counter outcome %v for opcode "+
		"%04X at %03X", e.Outcome, e.Opcode, e.Address)
}
