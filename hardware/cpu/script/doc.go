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

// Package script implements a CPU driver where the bus operations come from a
// Lua script. The script runs in a coroutine and every bus operation yields
// to the driver, which performs the operation at the current virtual time and
// then advances time by the cost of the operation.
//
// The following functions are available to the script:
//
//	peek(address)		read memory. returns the value
//	poke(address, value)	write memory
//	inp(port)		read IO port. returns the value
//	out(port, value)	write IO port
//	wait(cycles)		do nothing for the number of Z80 cycles
//	cycles()		number of Z80 cycles since reset (does not yield)
//
// When the script ends the CPU is idle for the remainder of the emulation.
package script
