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

// Package hachi implements a CHIP-8 interpreter and related utilities, such as
// a disassembler and a driver layer for presentation and input.
package hachi

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout.
const (
	// MemorySize is the amount of addressable bytes.
	MemorySize = 0x1000
	// ProgramStart is where programs are loaded and start executing. The
	// original interpreter occupied the first 512 bytes.
	ProgramStart = 0x200

	addrMask = MemorySize - 1
)

// -----------------------------------------------------------------------------

// Chip8Settings holds the configuration parameters for a Chip8 instance.
type Chip8Settings struct {
	// Logger receives lifecycle messages. If nil, a default logger is used.
	Logger *log.Logger
	// Rand is the source for RND VX,NN. If nil, a randomly seeded source is
	// used.
	Rand *rand.Rand
	// CyclesPerFrame is the amount of instructions Frame executes before
	// decrementing the timers once.
	CyclesPerFrame int
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Chip8Settings) Validate() error {
	if s.CyclesPerFrame < 1 || s.CyclesPerFrame > 10000 {
		return fmt.Errorf("CyclesPerFrame must be within 1-10000, got %v",
			s.CyclesPerFrame)
	}
	return nil
}

// DefaultSettings runs 10 instructions per frame, which at 60 frames per
// second is close to the speed of the original interpreter.
var DefaultSettings = &Chip8Settings{
	CyclesPerFrame: 10,
}

// -----------------------------------------------------------------------------

// Chip8 is an implementation of a CHIP-8 emulator. It holds the state of the
// virtual machine.
//
// A Chip8 is not safe for concurrent use. Hosts must serialize Step, key
// input and display reads, typically by driving all of them from one loop.
type Chip8 struct {
	// Memory where the font and the program are loaded.
	// 0x000-0x1FF is reserved for the interpreter and the font,
	// programs start at 0x200.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as a carry, borrow and
	// collision flag.
	V [16]uint8
	// 16-bit address register. Used for memory operations.
	I uint16
	// Program counter. Holds the address of the next instruction.
	PC uint16
	// The call stack, which holds return addresses.
	Stack CallStack
	// Timers. They are decremented by the host through DecrementTimers.
	DT uint8
	ST uint8
	// Keys holds the down state of the 16 keys of the hex keyboard.
	Keys [KeyCount]bool
	// Screen buffer.
	Screen Display
	// DrawFlag is set whenever the screen was cleared or drawn to. Hosts
	// reset it after rendering.
	DrawFlag bool
	// WaitingForKey is set by LD VX,K. Step does nothing until SupplyKey is
	// called.
	WaitingForKey bool
	// PendingKey is the last key passed to SupplyKey.
	PendingKey uint8
	// Opcode is the last fetched instruction.
	Opcode uint16
	// Cycles counts executed instructions.
	Cycles uint64
	// CyclesPerFrame is the amount of instructions executed by Frame.
	CyclesPerFrame int

	logger  *log.Logger
	rnd     *rand.Rand
	driver  string
	waitReg uint8
	// keys already down when LD VX,K started waiting
	heldKeys [KeyCount]bool
}

// New initializes a new instance of Chip8 with the given settings. If settings
// is nil, DefaultSettings will be used. The font is loaded and the program
// counter points to ProgramStart.
// driver is the name of the driver that will be used.
func New(driver string, s *Chip8Settings) (c *Chip8, err error) {
	if drivers[driver] == nil {
		err = fmt.Errorf("driver %s not found", driver)
		return
	}

	if s == nil {
		s = DefaultSettings
	}

	err = s.Validate()
	if err != nil {
		return
	}

	c = &Chip8{
		PC:             ProgramStart,
		CyclesPerFrame: s.CyclesPerFrame,
		logger:         s.Logger,
		rnd:            s.Rand,
		driver:         driver,
	}
	if c.logger == nil {
		c.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	copy(c.Memory[FontAddress:], FontSet)

	drivers[c.driver].OnInit(c)
	c.logger.Debug("Emulator created", log.String("driver", driver),
		log.Int("cycles_per_frame", c.CyclesPerFrame))
	return
}

// String returns formatted information about the instance of the emulator.
func (c *Chip8) String() string {
	return fmt.Sprintf("Chip8{Registers: [% 02X] I: %04X, "+
		"Stack: % 04X, SP: %v, PC: %04X, DT: %02X, ST: %02X, "+
		"Opcode: %04X, Waiting: %v}",
		c.V, c.I, c.Stack.Active(), c.Stack.SP, c.PC, c.DT, c.ST,
		c.Opcode, c.WaitingForKey)
}

// Driver returns the name of the driver in use by the emulator.
func (c *Chip8) Driver() string { return c.driver }

// GetDriverData gets custom data from the currently loaded driver.
// Returns nil if the driver does not exist or if the data key is not found.
func (c *Chip8) GetDriverData(key string) any {
	if drivers[c.driver] == nil {
		return nil
	}
	return drivers[c.driver].GetData(key)
}

// SetDriverData sets custom data on the currently loaded driver.
func (c *Chip8) SetDriverData(key string, value any) error {
	if drivers[c.driver] == nil {
		return fmt.Errorf("driver %s not found", c.driver)
	}
	return drivers[c.driver].SetData(key, value)
}

// -----------------------------------------------------------------------------

// Initialize resets the machine and loads font at FontAddress and program at
// ProgramStart. Registers, I and the stack are zeroed and the program counter
// is set to ProgramStart. The screen, keys and timers are left alone.
func (c *Chip8) Initialize(program, font []byte) error {
	if len(font) > ProgramStart-FontAddress {
		return fmt.Errorf("font of %v bytes overlaps program memory", len(font))
	}
	if len(program) > MemorySize-ProgramStart {
		return &OutOfMemoryErr{
			ProgramSize: len(program),
			Free:        MemorySize - ProgramStart,
		}
	}

	c.Memory = [MemorySize]byte{}
	copy(c.Memory[FontAddress:], font)
	copy(c.Memory[ProgramStart:], program)

	c.V = [16]uint8{}
	c.I = 0
	c.PC = ProgramStart
	c.Stack.Reset()
	c.WaitingForKey = false
	c.Opcode = 0
	return nil
}

// Load opens a CHIP-8 binary file and loads it into memory.
// Returns the size, in bytes, of the program and an error if any.
func (c *Chip8) Load(path string) (size int, err error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return
	}

	size = len(program)
	err = c.Initialize(program, FontSet)
	if err != nil {
		return
	}

	c.logger.Info("Loaded program", log.String("file", path),
		log.Int("bytes", size))
	return
}

// LoadRaw loads a byte array as a CHIP-8 binary into memory.
func (c *Chip8) LoadRaw(program []byte) error {
	if err := c.Initialize(program, FontSet); err != nil {
		return err
	}
	c.logger.Debug("Loaded program", log.Int("bytes", len(program)))
	return nil
}

// Program returns the loaded memory from ProgramStart on, up to size bytes.
func (c *Chip8) Program(size int) []byte {
	end := min(ProgramStart+size, MemorySize)
	return c.Memory[ProgramStart:end]
}

// -----------------------------------------------------------------------------

// Step fetches, decodes and executes one instruction, then moves the program
// counter. It does nothing while the machine waits for a key.
// On error the program counter is left on the failing instruction.
func (c *Chip8) Step() error {
	if c.WaitingForKey {
		return nil
	}

	pc := c.PC
	c.Opcode = uint16(c.Memory[pc&addrMask])<<8 |
		uint16(c.Memory[(pc+1)&addrMask])

	next, err := c.execute(Decode(c.Opcode))
	if err != nil {
		return err
	}

	newPC, err := next.Resolve(pc)
	if err != nil {
		return &UnresolvedPCErr{Opcode: c.Opcode, Address: pc, Outcome: next}
	}
	c.PC = newPC
	c.Cycles++
	return nil
}

// SupplyKey delivers a key press. If the machine is waiting on LD VX,K, VX is
// set to the key and execution resumes.
func (c *Chip8) SupplyKey(key uint8) {
	key &= 0x0F
	c.PendingKey = key
	if !c.WaitingForKey {
		return
	}
	c.V[c.waitReg] = key
	c.WaitingForKey = false
}

// SetKey sets the down state of a key.
func (c *Chip8) SetKey(key uint8, down bool) {
	c.Keys[key&0x0F] = down
}

// DecrementTimers counts both timers down by one unless they are zero.
// Hosts call it at their timer rate, usually 60hz.
func (c *Chip8) DecrementTimers() {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
}

// -----------------------------------------------------------------------------

// Tick runs one CPU cycle through the driver: input is polled, a pending
// LD VX,K is satisfied by any newly pressed key and the driver is asked to
// redraw when the screen changed. Returns an error if any.
func (c *Chip8) Tick() error {
	drv := drivers[c.driver]
	drv.OnUpdate(c)

	if c.WaitingForKey {
		key, ok := c.newlyPressedKey()
		if !ok {
			return nil
		}
		c.SupplyKey(key)
	}

	if err := c.Step(); err != nil {
		return err
	}

	if c.DrawFlag {
		drv.UpdateScreen(c)
		c.DrawFlag = false
	}
	return nil
}

// newlyPressedKey returns the lowest key that is down now but was not down
// when waiting began. Keys released since then become eligible again.
func (c *Chip8) newlyPressedKey() (uint8, bool) {
	for k := range c.Keys {
		c.heldKeys[k] = c.heldKeys[k] && c.Keys[k]
	}
	for k := range c.Keys {
		if c.Keys[k] && !c.heldKeys[k] {
			return uint8(k), true
		}
	}
	return 0, false
}

// Frame runs up to CyclesPerFrame ticks and then decrements the timers once.
// It stops early when the program waits for a key.
func (c *Chip8) Frame() error {
	for i := 0; i < c.CyclesPerFrame; i++ {
		if err := c.Tick(); err != nil {
			return err
		}
		if c.WaitingForKey {
			break
		}
	}
	c.DecrementTimers()
	return nil
}

// Run runs frames until ctx is done or an error occurs. If frames is
// positive, Run returns after that many frames.
func (c *Chip8) Run(ctx context.Context, frames int) error {
	for n := 0; frames <= 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.Frame(); err != nil {
			c.logger.Error("Execution stopped", log.Err(err),
				log.Hex("pc", c.PC))
			return fmt.Errorf("frame %v: %w", n, err)
		}
	}
	return nil
}
