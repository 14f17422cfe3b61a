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

// Package cpu defines the contract between the machine and a CPU driver. The
// instruction set of the Z80 is not emulated by this package. A driver is
// anything that advances virtual time by performing whole operations, each of
// which may access memory or an IO port through the Bus interface.
//
// The machine asks the driver to run until a target time with RunUntil(). The
// driver performs operations until its own time is at or beyond the target,
// never stopping in the middle of an operation. Every access is made with the
// time of the access, not the time at which RunUntil() was called. This means
// that devices see accesses in the order in which they happen in virtual time.
//
// The Sequencer type is a simple driver that executes a repeating list of
// operations. It is useful as an idle CPU and for testing. The script
// sub-package contains a driver where the operations come from a Lua script.
//
// # Direct access
//
// A driver can ask the Bus for a direct access token for a memory address.
// The token is only valid for the bank generation in which it was issued and
// every use of the token must check the generation. For example:
//
//	if v, ok := tok.Read(address, mem.Generation()); ok {
//		// use v
//	} else {
//		// ask for a new token or use mem.Read()
//	}
package cpu
