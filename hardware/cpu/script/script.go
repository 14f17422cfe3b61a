// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package script

import (
	"fmt"
	"os"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/logger"
	lua "github.com/yuin/gopher-lua"
)

// number of Z80 cycles taken by each kind of access
const (
	MemoryCycles = 4
	IOCycles     = 5
)

// names of the requests yielded by the coroutine
const (
	reqPeek = "peek"
	reqPoke = "poke"
	reqInp  = "inp"
	reqOut  = "out"
	reqWait = "wait"
)

// Driver is a CPU driver that runs a Lua script.
type Driver struct {
	mem cpu.Bus
	clk clocks.Clock

	name   string
	source string

	L      *lua.LState
	co     *lua.LState
	fn     *lua.LFunction
	resume []lua.LValue

	// the time at which the script was last reset
	start clocks.Time

	// script has finished. the CPU is idle
	done bool
}

// NewDriver is the preferred method of initialisation for the Driver type. The
// name is used in error messages.
func NewDriver(mem cpu.Bus, name string, source string) (*Driver, error) {
	clk, err := clocks.NewClock(clocks.Z80Frequency, clocks.Zero)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	drv := &Driver{
		mem:    mem,
		clk:    clk,
		name:   name,
		source: source,
	}

	err = drv.load()
	if err != nil {
		return nil, err
	}

	return drv, nil
}

// NewDriverFromFile creates a Driver for the Lua script in the named file.
func NewDriverFromFile(mem cpu.Bus, filename string) (*Driver, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return NewDriver(mem, filename, string(b))
}

// create a new Lua state and compile the script
func (drv *Driver) load() error {
	if drv.L != nil {
		drv.L.Close()
	}

	drv.L = lua.NewState()
	drv.L.SetGlobal("peek", drv.L.NewFunction(request(reqPeek, 1)))
	drv.L.SetGlobal("poke", drv.L.NewFunction(request(reqPoke, 2)))
	drv.L.SetGlobal("inp", drv.L.NewFunction(request(reqInp, 1)))
	drv.L.SetGlobal("out", drv.L.NewFunction(request(reqOut, 2)))
	drv.L.SetGlobal("wait", drv.L.NewFunction(request(reqWait, 1)))
	drv.L.SetGlobal("cycles", drv.L.NewFunction(drv.cycles))

	var err error
	drv.fn, err = drv.L.LoadString(drv.source)
	if err != nil {
		drv.L.Close()
		drv.L = nil
		return fmt.Errorf("script: %s: %w", drv.name, err)
	}

	drv.co, _ = drv.L.NewThread()
	drv.resume = nil
	drv.done = false

	return nil
}

// request returns a Lua function that yields the named request with the
// expected number of integer arguments
func request(name string, numArgs int) lua.LGFunction {
	return func(L *lua.LState) int {
		args := make([]lua.LValue, 0, numArgs+1)
		args = append(args, lua.LString(name))
		for i := 1; i <= numArgs; i++ {
			args = append(args, lua.LNumber(L.CheckInt(i)))
		}
		return L.Yield(args...)
	}
}

func (drv *Driver) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(drv.clk.Time().Sub(drv.start) / drv.clk.Step()))
	return 1
}

func (drv *Driver) String() string {
	if drv.done {
		return fmt.Sprintf("%s: finished @ %s", drv.name, drv.clk.Time())
	}
	return fmt.Sprintf("%s @ %s", drv.name, drv.clk.Time())
}

// Close the Lua state.
func (drv *Driver) Close() {
	if drv.L != nil {
		drv.L.Close()
		drv.L = nil
	}
}

// Time implements the cpu.Driver interface.
func (drv *Driver) Time() clocks.Time {
	return drv.clk.Time()
}

// Reset implements the cpu.Driver interface. The script is restarted from the
// beginning.
func (drv *Driver) Reset(t clocks.Time) {
	drv.clk.Reset(t)
	drv.start = t
	if err := drv.load(); err != nil {
		// the script compiled once so this is unlikely
		logger.Log(logger.Allow, "script", err)
		drv.done = true
	}
}

// Done returns true if the script has finished.
func (drv *Driver) Done() bool {
	return drv.done
}

// RunUntil implements the cpu.Driver interface.
func (drv *Driver) RunUntil(target clocks.Time) error {
	for drv.clk.Time().Before(target) {
		if drv.done {
			drv.clk.AddTicks(cpu.TicksToReach(&drv.clk, target))
			break
		}

		st, err, values := drv.L.Resume(drv.co, drv.fn, drv.resume...)
		drv.resume = nil

		switch st {
		case lua.ResumeError:
			drv.done = true
			return fmt.Errorf("script: %s: %w", drv.name, err)
		case lua.ResumeOK:
			drv.done = true
		case lua.ResumeYield:
			err = drv.perform(values)
			if err != nil {
				drv.done = true
				return err
			}
		}
	}

	return nil
}

// perform the request yielded by the script
func (drv *Driver) perform(values []lua.LValue) error {
	if len(values) == 0 {
		return fmt.Errorf("script: %s: empty yield", drv.name)
	}

	arg := func(i int) int {
		if i >= len(values) {
			return 0
		}
		if n, ok := values[i].(lua.LNumber); ok {
			return int(n)
		}
		return 0
	}

	t := drv.clk.Time()

	switch values[0].String() {
	case reqPeek:
		v := drv.mem.Read(uint16(arg(1)), t)
		drv.resume = []lua.LValue{lua.LNumber(v)}
		drv.clk.AddTicks(MemoryCycles)
	case reqPoke:
		drv.mem.Write(uint16(arg(1)), uint8(arg(2)), t)
		drv.clk.AddTicks(MemoryCycles)
	case reqInp:
		v := drv.mem.ReadIO(uint8(arg(1)), t)
		drv.resume = []lua.LValue{lua.LNumber(v)}
		drv.clk.AddTicks(IOCycles)
	case reqOut:
		drv.mem.WriteIO(uint8(arg(1)), uint8(arg(2)), t)
		drv.clk.AddTicks(IOCycles)
	case reqWait:
		drv.clk.AddTicks(uint64(max(arg(1), 1)))
	default:
		return fmt.Errorf("script: %s: unknown request (%s)", drv.name, values[0])
	}

	return nil
}
