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

package cpu

import (
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// Bus defines the memory and IO operations available to a CPU driver.
// Satisfied by the memory.Bus type.
type Bus interface {
	Read(address uint16, t clocks.Time) uint8
	Write(address uint16, data uint8, t clocks.Time)
	ReadIO(port uint8, t clocks.Time) uint8
	WriteIO(port uint8, data uint8, t clocks.Time)
	Direct(address uint16) (bus.Direct, bool)
	Generation() uint64
}

// Driver is the interface to a CPU. It advances virtual time by executing
// whole operations.
type Driver interface {
	// run until the time of the driver is at or after the target time. every
	// access to the bus is made at the time of the access
	RunUntil(target clocks.Time) error

	// current time of the driver
	Time() clocks.Time

	// reset the driver so that its current time is t. used on power-on and
	// when restoring a snapshot
	Reset(t clocks.Time)
}

// TicksToReach returns the number of ticks of the clock required for the
// clock time to be at or after the target time.
func TicksToReach(clk *clocks.Clock, target clocks.Time) uint64 {
	n := clk.TicksTill(target)
	if clk.TimeAtTick(n).Before(target) {
		n++
	}
	return n
}
