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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramCounterResolve(t *testing.T) {
	tests := []struct {
		name string
		pc   ProgramCounter
		at   uint16
		want uint16
	}{
		{"next", Next(), 0x200, 0x202},
		{"skip", Skip(), 0x200, 0x204},
		{"jump", JumpTo(0x345), 0x200, 0x345},
		{"jump ignores counter", JumpTo(0x200), 0xABC, 0x200},
		{"skip when true", SkipWhen(true), 0x300, 0x304},
		{"skip when false", SkipWhen(false), 0x300, 0x302},
		{"next wraps 16 bits", Next(), 0xFFFE, 0x0000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pc.Resolve(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgramCounterUnset(t *testing.T) {
	var pc ProgramCounter
	assert.Equal(t, PCUnset, pc.Action)

	got, err := pc.Resolve(0x200)
	require.Error(t, err)
	var unresolved *UnresolvedPCErr
	assert.True(t, errors.As(err, &unresolved))
	assert.Equal(t, uint16(0x200), got)
	assert.Equal(t, pc, unresolved.Outcome)
	assert.Contains(t, err.Error(), "outcome Unset")
}

func TestProgramCounterString(t *testing.T) {
	assert.Equal(t, "Next", Next().String())
	assert.Equal(t, "Skip", Skip().String())
	assert.Equal(t, "Unset", ProgramCounter{}.String())
	assert.Equal(t, "Jump(2A0)", JumpTo(0x2A0).String())
}
