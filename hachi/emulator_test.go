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
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(seed uint64) *Chip8Settings {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return &Chip8Settings{
		Logger:         log.NewWithConfig(cfg),
		Rand:           rand.New(rand.NewPCG(seed, seed)),
		CyclesPerFrame: 10,
	}
}

// words encodes opcodes as big-endian program bytes.
func words(ops ...uint16) []byte {
	b := make([]byte, 0, len(ops)*2)
	for _, op := range ops {
		b = append(b, byte(op>>8), byte(op))
	}
	return b
}

func newTestChip8(t *testing.T, ops ...uint16) *Chip8 {
	t.Helper()
	c, err := New("null", testSettings(1))
	require.NoError(t, err)
	require.NoError(t, c.LoadRaw(words(ops...)))
	return c
}

func stepN(t *testing.T, c *Chip8, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, c.Step(), "step %d at %03X", i, c.PC)
	}
}

func TestNew(t *testing.T) {
	c, err := New("null", nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, FontSet, c.Memory[FontAddress:FontAddress+len(FontSet)])
	assert.Equal(t, DefaultSettings.CyclesPerFrame, c.CyclesPerFrame)
	assert.Equal(t, "null", c.Driver())
	assert.Nil(t, c.GetDriverData("anything"))
	assert.Error(t, c.SetDriverData("anything", 1))

	_, err = New("does-not-exist", nil)
	assert.Error(t, err)

	_, err = New("null", &Chip8Settings{CyclesPerFrame: 0})
	assert.Error(t, err)
	_, err = New("null", &Chip8Settings{CyclesPerFrame: 10001})
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	c := newTestChip8(t, 0x6005)
	c.V[3] = 9
	c.I = 0x123
	c.DT = 7
	c.Keys[4] = true
	require.NoError(t, c.Stack.Push(0x300))
	c.Screen.DrawSprite(0, 0, []byte{0xFF})
	c.WaitingForKey = true

	require.NoError(t, c.Initialize([]byte{0xAB, 0xCD}, FontSet))
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, [16]uint8{}, c.V)
	assert.Equal(t, uint16(0), c.I)
	assert.Equal(t, 0, c.Stack.Depth())
	assert.False(t, c.WaitingForKey)
	assert.Equal(t, []byte{0xAB, 0xCD, 0x00}, c.Memory[ProgramStart:ProgramStart+3])

	// screen, keys and timers survive a reload
	assert.Equal(t, uint8(7), c.DT)
	assert.True(t, c.Keys[4])
	assert.Equal(t, 8, c.Screen.Lit())
}

func TestLoadRawTooLarge(t *testing.T) {
	c := newTestChip8(t)

	require.NoError(t, c.LoadRaw(make([]byte, MemorySize-ProgramStart)))

	err := c.LoadRaw(make([]byte, MemorySize-ProgramStart+1))
	var oom *OutOfMemoryErr
	require.True(t, errors.As(err, &oom))
	assert.Equal(t, MemorySize-ProgramStart+1, oom.ProgramSize)
	assert.Equal(t, MemorySize-ProgramStart, oom.Free)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	require.NoError(t, os.WriteFile(path, words(0x6005, 0x7003), 0o644))

	c := newTestChip8(t)
	size, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, size)
	assert.Equal(t, words(0x6005, 0x7003), c.Program(size))

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
}

func TestLoadAndAdd(t *testing.T) {
	c := newTestChip8(t, 0x6005, 0x7003)
	stepN(t, c, 2)
	assert.Equal(t, uint8(8), c.V[0])
	assert.Equal(t, uint16(0x204), c.PC)
	assert.Equal(t, uint64(2), c.Cycles)
	assert.Equal(t, uint16(0x7003), c.Opcode)
}

func TestAddImmediateNoCarry(t *testing.T) {
	c := newTestChip8(t, 0x60FF, 0x6F07, 0x7002)
	stepN(t, c, 3)
	assert.Equal(t, uint8(0x01), c.V[0])
	assert.Equal(t, uint8(0x07), c.V[0xF])
}

func TestAddCarry(t *testing.T) {
	c := newTestChip8(t, 0x8014)
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.PC = ProgramStart
			c.V[0], c.V[1] = uint8(a), uint8(b)
			require.NoError(t, c.Step())
			require.Equal(t, uint8(a+b), c.V[0], "%d+%d", a, b)
			require.Equal(t, flag(a+b > 0xFF), c.V[0xF], "%d+%d", a, b)
		}
	}
}

func TestSubBorrow(t *testing.T) {
	c := newTestChip8(t, 0x8015)
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.PC = ProgramStart
			c.V[0], c.V[1] = uint8(a), uint8(b)
			require.NoError(t, c.Step())
			require.Equal(t, uint8(a-b), c.V[0], "%d-%d", a, b)
			require.Equal(t, flag(a > b), c.V[0xF], "%d-%d", a, b)
		}
	}
}

func TestSubFlagDirections(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		want   uint8
		vf     uint8
	}{
		{"sub no borrow", 0x8015, 5, 3, 2, 1},
		{"sub borrow", 0x8015, 3, 5, 0xFE, 0},
		{"sub equal", 0x8015, 4, 4, 0, 0},
		{"subn positive", 0x8017, 3, 5, 2, 0},
		{"subn negative", 0x8017, 5, 3, 0xFE, 1},
		{"subn equal", 0x8017, 4, 4, 0, 0},
		{"subn signed negative", 0x8017, 10, 200, 0xBE, 1},
		{"subn signed positive", 0x8017, 0x80, 0xFF, 0x7F, 0},
		{"subn signed minimum", 0x8017, 0x01, 0x81, 0x80, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, tt.opcode)
			c.V[0], c.V[1] = tt.vx, tt.vy
			require.NoError(t, c.Step())
			assert.Equal(t, tt.want, c.V[0])
			assert.Equal(t, tt.vf, c.V[0xF])
		})
	}
}

func TestFlagRegisterAsOperand(t *testing.T) {
	// VF as destination: the flag wins over the result
	c := newTestChip8(t, 0x6FFF, 0x6001, 0x8F04)
	stepN(t, c, 3)
	assert.Equal(t, uint8(1), c.V[0xF])

	// VF as source: the draw position is read before VF is cleared
	c = newTestChip8(t, 0x6F05, 0xA000, 0xDFF1)
	stepN(t, c, 3)
	assert.True(t, c.Screen.Pixel(5, 5))
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestRegisterOps(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		want   uint8
		vf     uint8
	}{
		{"ld", 0x8010, 0x12, 0x34, 0x34, 0xAA},
		{"or", 0x8011, 0xF0, 0x0F, 0xFF, 0xAA},
		{"and", 0x8012, 0xF3, 0x3F, 0x33, 0xAA},
		{"xor", 0x8013, 0xFF, 0x0F, 0xF0, 0xAA},
		{"shr odd", 0x8016, 0x05, 0x00, 0x02, 1},
		{"shr even", 0x8016, 0x04, 0x00, 0x02, 0},
		{"shl high", 0x801E, 0x81, 0x00, 0x02, 1},
		{"shl low", 0x801E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, tt.opcode)
			c.V[0], c.V[1], c.V[0xF] = tt.vx, tt.vy, 0xAA
			require.NoError(t, c.Step())
			assert.Equal(t, tt.want, c.V[0])
			assert.Equal(t, tt.vf, c.V[0xF])
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		v0, v1 uint8
		want   uint16
	}{
		{"se byte equal", 0x3042, 0x42, 0, 0x204},
		{"se byte differ", 0x3042, 0x41, 0, 0x202},
		{"sne byte equal", 0x4042, 0x42, 0, 0x202},
		{"sne byte differ", 0x4042, 0x41, 0, 0x204},
		{"se reg equal", 0x5010, 7, 7, 0x204},
		{"se reg differ", 0x5010, 7, 8, 0x202},
		{"sne reg equal", 0x9010, 7, 7, 0x202},
		{"sne reg differ", 0x9010, 7, 8, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, tt.opcode)
			c.V[0], c.V[1] = tt.v0, tt.v1
			require.NoError(t, c.Step())
			assert.Equal(t, tt.want, c.PC)
		})
	}
}

func TestJumps(t *testing.T) {
	c := newTestChip8(t, 0x1ABC)
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xABC), c.PC)

	c = newTestChip8(t, 0x6010, 0xB300)
	stepN(t, c, 2)
	assert.Equal(t, uint16(0x310), c.PC)

	c = newTestChip8(t, 0x6F20, 0xB300)
	stepN(t, c, 2)
	assert.Equal(t, uint16(0x300), c.PC, "offset only comes from V0")
}

func TestCallReturn(t *testing.T) {
	// 200: CALL 206
	// 202: LD V1,01
	// 204: JP 204
	// 206: LD V0,07
	// 208: RET
	c := newTestChip8(t, 0x2206, 0x6101, 0x1204, 0x6007, 0x00EE)

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x206), c.PC)
	assert.Equal(t, []uint16{0x202}, c.Stack.Active())

	stepN(t, c, 2)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, 0, c.Stack.Depth())
	assert.Equal(t, uint8(7), c.V[0])

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(1), c.V[1])
}

func TestCallDepth(t *testing.T) {
	// every level calls the next one: 200 calls 202, 202 calls 204, ...
	var ops []uint16
	for i := 0; i <= StackSize; i++ {
		ops = append(ops, 0x2000|uint16(ProgramStart+2*(i+1)))
	}
	c := newTestChip8(t, ops...)

	stepN(t, c, StackSize)
	assert.Equal(t, StackSize, c.Stack.Depth())

	pc := c.PC
	err := c.Step()
	var overflow *StackOverflowErr
	require.True(t, errors.As(err, &overflow))
	assert.Equal(t, StackSize, overflow.Depth)
	assert.Equal(t, pc, c.PC)
	assert.Equal(t, StackSize, c.Stack.Depth())
}

func TestReturnOnEmptyStack(t *testing.T) {
	c := newTestChip8(t, 0x00EE)
	err := c.Step()
	var underflow *StackUnderflowErr
	assert.True(t, errors.As(err, &underflow))
	assert.Equal(t, uint16(ProgramStart), c.PC)
}

func TestUnknownOpcodes(t *testing.T) {
	for _, opcode := range []uint16{
		0x0000, 0x0123, 0x00E1, 0x0AE2, 0x8008, 0x800F,
		0xE09F, 0xE0A2, 0xF000, 0xF0FF,
	} {
		t.Run(fmt.Sprintf("%04X", opcode), func(t *testing.T) {
			c := newTestChip8(t, opcode)
			err := c.Step()
			var unknown *UnknownOpcodeErr
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, opcode, unknown.Opcode)
			assert.Equal(t, uint16(ProgramStart), unknown.Address)
			assert.Equal(t, uint16(ProgramStart), c.PC)
			assert.Equal(t, uint64(0), c.Cycles)
		})
	}
}

func TestIgnoredOpcodeBits(t *testing.T) {
	// CLS and RET only look at the low byte
	c := newTestChip8(t, 0xA000, 0xD005, 0x01E0)
	stepN(t, c, 3)
	assert.Zero(t, c.Screen.Lit())
	assert.Equal(t, uint16(0x206), c.PC)

	c = newTestChip8(t, 0x2204, 0x1202, 0x03EE)
	stepN(t, c, 2)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Zero(t, c.Stack.Depth())

	// register skips ignore the low nibble
	tests := []struct {
		name   string
		opcode uint16
		v1     uint8
		want   uint16
	}{
		{"se equal", 0x5011, 7, 0x204},
		{"se differ", 0x501F, 8, 0x202},
		{"sne equal", 0x9013, 7, 0x202},
		{"sne differ", 0x9013, 8, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, tt.opcode)
			c.V[0], c.V[1] = 7, tt.v1
			require.NoError(t, c.Step())
			assert.Equal(t, tt.want, c.PC)
		})
	}
}

func TestClearScreen(t *testing.T) {
	c := newTestChip8(t, 0xA000, 0xD005, 0x00E0)
	stepN(t, c, 2)
	require.NotZero(t, c.Screen.Lit())
	c.DrawFlag = false

	require.NoError(t, c.Step())
	assert.Zero(t, c.Screen.Lit())
	assert.True(t, c.DrawFlag)
}

func TestDrawFontGlyph(t *testing.T) {
	c := newTestChip8(t, 0xA000, 0xD005)
	stepN(t, c, 2)

	glyph := []string{"####", "#..#", "#..#", "#..#", "####"}
	for y, row := range glyph {
		for x, ch := range row {
			assert.Equal(t, ch == '#', c.Screen.Pixel(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, 14, c.Screen.Lit())
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.True(t, c.DrawFlag)
}

func TestDrawProgramBytes(t *testing.T) {
	// I points at the program itself: A2 00 D0 05 followed by a zero row
	c := newTestChip8(t, 0xA200, 0xD005)
	stepN(t, c, 2)

	rows := []byte{0xA2, 0x00, 0xD0, 0x05, 0x00}
	for y, bits := range rows {
		for x := 0; x < 8; x++ {
			assert.Equal(t, bits&(0x80>>x) != 0, c.Screen.Pixel(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestDrawTwiceErases(t *testing.T) {
	c := newTestChip8(t, 0x600A, 0x610C, 0xA00F, 0xD015, 0xD015)
	stepN(t, c, 4)
	before := c.Screen.Lit()
	require.NotZero(t, before)
	assert.Equal(t, uint8(0), c.V[0xF])

	require.NoError(t, c.Step())
	assert.Zero(t, c.Screen.Lit())
	assert.Equal(t, uint8(1), c.V[0xF])
}

func TestDrawWraps(t *testing.T) {
	c := newTestChip8(t, 0x603E, 0x611F, 0xA000, 0xD012)
	stepN(t, c, 4)

	// top row of "0" is F0: columns 62, 63, 0 and 1
	for _, x := range []int{62, 63, 0, 1} {
		assert.True(t, c.Screen.Pixel(x, 31), "x=%d", x)
	}
	// second row 90 lands on y=0
	assert.True(t, c.Screen.Pixel(62, 0))
	assert.False(t, c.Screen.Pixel(63, 0))
	assert.True(t, c.Screen.Pixel(1, 0))
}

func TestRandom(t *testing.T) {
	prog := []uint16{0xC0FF, 0xC1FF, 0xC2FF, 0xC30F, 0xC400}

	a := newTestChip8(t, prog...)
	b := newTestChip8(t, prog...)
	stepN(t, a, len(prog))
	stepN(t, b, len(prog))
	assert.Equal(t, a.V, b.V, "same seed, same sequence")

	assert.LessOrEqual(t, a.V[3], uint8(0x0F))
	assert.Equal(t, uint8(0), a.V[4])
}

func TestTimers(t *testing.T) {
	c := newTestChip8(t, 0x6003, 0xF015, 0xF018, 0xF107)
	stepN(t, c, 4)
	assert.Equal(t, uint8(3), c.DT)
	assert.Equal(t, uint8(3), c.ST)
	assert.Equal(t, uint8(3), c.V[1])

	for i := 0; i < 5; i++ {
		c.DecrementTimers()
	}
	assert.Equal(t, uint8(0), c.DT)
	assert.Equal(t, uint8(0), c.ST)
}

func TestKeySkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		down   bool
		want   uint16
	}{
		{"skp down", 0xE09E, true, 0x204},
		{"skp up", 0xE09E, false, 0x202},
		{"sknp down", 0xE0A1, true, 0x202},
		{"sknp up", 0xE0A1, false, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, tt.opcode)
			c.V[0] = 0x15 // only the low nibble selects the key
			c.SetKey(0x5, tt.down)
			require.NoError(t, c.Step())
			assert.Equal(t, tt.want, c.PC)
		})
	}
}

func TestWaitForKey(t *testing.T) {
	c := newTestChip8(t, 0xF30A, 0x6101)
	require.NoError(t, c.Step())
	assert.True(t, c.WaitingForKey)
	assert.Equal(t, uint16(0x202), c.PC)

	stepN(t, c, 3)
	assert.Equal(t, uint16(0x202), c.PC, "step is a no-op while waiting")
	assert.Equal(t, uint64(1), c.Cycles)

	c.SupplyKey(0x1C)
	assert.False(t, c.WaitingForKey)
	assert.Equal(t, uint8(0xC), c.V[3])
	assert.Equal(t, uint8(0xC), c.PendingKey)

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(1), c.V[1])
}

func TestSupplyKeyWithoutWait(t *testing.T) {
	c := newTestChip8(t, 0x6101)
	c.SupplyKey(4)
	assert.Equal(t, [16]uint8{}, c.V)
	assert.Equal(t, uint8(4), c.PendingKey)
}

func TestTickWaitsForNewPress(t *testing.T) {
	c := newTestChip8(t, 0xF20A, 0x6101)
	c.SetKey(0x3, true)

	require.NoError(t, c.Tick())
	require.True(t, c.WaitingForKey)

	// a key held since before the wait doesn't count
	require.NoError(t, c.Tick())
	assert.True(t, c.WaitingForKey)

	c.SetKey(0x9, true)
	require.NoError(t, c.Tick())
	assert.False(t, c.WaitingForKey)
	assert.Equal(t, uint8(0x9), c.V[2])
	assert.Equal(t, uint8(1), c.V[1], "execution resumes in the same tick")
}

func TestTickReleasedKeyCountsAgain(t *testing.T) {
	c := newTestChip8(t, 0xF20A, 0x1202)
	c.SetKey(0x3, true)
	require.NoError(t, c.Tick())

	c.SetKey(0x3, false)
	require.NoError(t, c.Tick())
	assert.True(t, c.WaitingForKey)

	c.SetKey(0x3, true)
	require.NoError(t, c.Tick())
	assert.False(t, c.WaitingForKey)
	assert.Equal(t, uint8(0x3), c.V[2])
}

func TestAddIndex(t *testing.T) {
	tests := []struct {
		name string
		i    uint16
		v    uint8
		want uint16
		vf   uint8
	}{
		{"in range", 0x100, 0x10, 0x110, 0},
		{"reaches FFF", 0xFF0, 0x0F, 0xFFF, 0},
		{"leaves range", 0xFFF, 0x01, 0x1000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip8(t, 0xF01E)
			c.I, c.V[0] = tt.i, tt.v
			require.NoError(t, c.Step())
			assert.Equal(t, tt.want, c.I)
			assert.Equal(t, tt.vf, c.V[0xF])
		})
	}
}

func TestFontAddress(t *testing.T) {
	c := newTestChip8(t, 0x600A, 0xF029)
	stepN(t, c, 2)
	assert.Equal(t, uint16(FontAddress+0xA*GlyphSize), c.I)
	assert.Equal(t, []byte{0xF0, 0x90, 0xF0, 0x90, 0x90},
		c.Memory[c.I:c.I+GlyphSize])
}

func TestBCD(t *testing.T) {
	for _, v := range []uint8{0, 7, 42, 100, 254, 255} {
		t.Run(fmt.Sprint(v), func(t *testing.T) {
			c := newTestChip8(t, 0xA300, 0xF033)
			c.V[0] = v
			stepN(t, c, 2)
			assert.Equal(t, []byte{v / 100, v / 10 % 10, v % 10}, c.Memory[0x300:0x303])
			assert.Equal(t, uint16(0x300), c.I)
		})
	}
}

func TestStoreAndLoadRegisters(t *testing.T) {
	c := newTestChip8(t, 0xA300, 0xF555, 0xA300, 0xF565)
	stepN(t, c, 1)
	for i := range 6 {
		c.V[i] = uint8(0x10 + i)
	}
	c.V[6] = 0xEE

	require.NoError(t, c.Step())
	assert.Equal(t, []byte{0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x00}, c.Memory[0x300:0x307])
	assert.Equal(t, uint16(0x306), c.I)

	saved := c.V
	c.V = [16]uint8{}
	stepN(t, c, 2)
	assert.Equal(t, saved[:6], c.V[:6])
	assert.Equal(t, uint8(0), c.V[6])
	assert.Equal(t, uint16(0x300), c.I)
}

func TestMemoryWraps(t *testing.T) {
	c := newTestChip8(t, 0xAFFF, 0xF133)
	c.V[1] = 123
	stepN(t, c, 2)
	assert.Equal(t, uint8(1), c.Memory[0xFFF])
	assert.Equal(t, uint8(2), c.Memory[0x000])
	assert.Equal(t, uint8(3), c.Memory[0x001])
}

func TestFrame(t *testing.T) {
	// LD V0,01 followed by ADD V0,01 forever
	c := newTestChip8(t, 0x6001, 0x7001, 0x1202)
	c.DT = 5
	require.NoError(t, c.Frame())
	assert.Equal(t, uint64(c.CyclesPerFrame), c.Cycles)
	assert.Equal(t, uint8(4), c.DT)
}

func TestFrameStopsOnWait(t *testing.T) {
	c := newTestChip8(t, 0x6001, 0xF00A, 0x6102)
	c.DT = 2
	require.NoError(t, c.Frame())
	assert.Equal(t, uint64(2), c.Cycles)
	assert.True(t, c.WaitingForKey)
	assert.Equal(t, uint8(1), c.DT, "timers still run while waiting")
}

func TestRun(t *testing.T) {
	c := newTestChip8(t, 0x7001, 0x1200)
	require.NoError(t, c.Run(context.Background(), 3))
	assert.Equal(t, uint64(3*c.CyclesPerFrame), c.Cycles)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx, 0), context.Canceled)
}

func TestRunError(t *testing.T) {
	c := newTestChip8(t, 0x6001, 0x0123)
	err := c.Run(context.Background(), 0)
	var unknown *UnknownOpcodeErr
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint16(0x202), unknown.Address)
	assert.Contains(t, err.Error(), "frame 0")
}

func TestString(t *testing.T) {
	c := newTestChip8(t, 0x6005)
	require.NoError(t, c.Step())
	s := c.String()
	assert.Contains(t, s, "PC: 0202")
	assert.Contains(t, s, "Opcode: 6005")
}
