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

// StackSize is the maximum amount of nested calls.
const StackSize = 16

// CallStack holds return addresses. SP is the number of entries in use.
type CallStack struct {
	Entries [StackSize]uint16
	SP      int
}

// Push stores a return address. It fails with *StackOverflowErr when the
// stack is full, leaving it untouched.
func (s *CallStack) Push(addr uint16) error {
	if s.SP >= len(s.Entries) {
		return &StackOverflowErr{Depth: s.SP}
	}
	s.Entries[s.SP] = addr
	s.SP++
	return nil
}

// Pop removes and returns the last return address.
func (s *CallStack) Pop() (uint16, error) {
	if s.SP <= 0 {
		return 0, &StackUnderflowErr{}
	}
	s.SP--
	return s.Entries[s.SP], nil
}

// Depth returns the number of pending returns.
func (s *CallStack) Depth() int { return s.SP }

// Reset empties the stack.
func (s *CallStack) Reset() {
	*s = CallStack{}
}

// Active returns the used part of the stack, oldest first.
func (s *CallStack) Active() []uint16 { return s.Entries[:s.SP] }
