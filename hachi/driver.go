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
)

// A Driver is an interface through which the emulator talks to a platform:
// it renders the screen and feeds the keyboard.
// Drivers should be registered by the RegisterDriver function in init().
type Driver interface {
	// Called when the emulator is created.
	OnInit(c *Chip8)
	// Called on every tick, should be used for input polling and similar
	// tasks. Key state goes through Chip8.SetKey.
	OnUpdate(c *Chip8)
	// Called after an instruction cleared or drew to the screen.
	UpdateScreen(c *Chip8)
	// Returns custom data that can be retrieved through the emulator by
	// calling GetDriverData()
	GetData(key string) any
	// Sets custom data that can be set through the emulator by
	// calling SetDriverData()
	SetData(key string, value any) error
}

// -----------------------------------------------------------------------------

var drivers = map[string]Driver{}

// RegisterDriver registers a driver to a name. The driver can then be used
// by passing its name to New.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func RegisterDriver(name string, drv Driver) error {
	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = drv
	return nil
}

// UnregisterDriver unloads a previously registered driver.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func UnregisterDriver(name string) error {
	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// Drivers returns the names of the registered drivers.
func Drivers() (names []string) {
	for name := range drivers {
		names = append(names, name)
	}
	return
}

// -----------------------------------------------------------------------------

// A NullDriver is the default driver, which ignores all calls. It is
// registered as "null" and is what headless runs and tests use.
type NullDriver struct{}

func (d NullDriver) OnInit(c *Chip8)        {}
func (d NullDriver) OnUpdate(c *Chip8)      {}
func (d NullDriver) UpdateScreen(c *Chip8)  {}
func (d NullDriver) GetData(key string) any { return nil }
func (d NullDriver) SetData(key string, value any) error {
	return fmt.Errorf("this driver has no settable data")
}

// -----------------------------------------------------------------------------

func init() {
	if err := RegisterDriver("null", NullDriver{}); err != nil {
		panic(err)
	}
}
