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

// Package memory implements the device bus of the emulated machine. Devices
// are registered with the Bus at configuration time and the Bus dispatches
// every memory and IO access to the device responsible for the address (or
// port) at the moment of the access.
//
// Registration returns a Handle, an index into an arena of registrations
// owned by the Bus. Devices never hold a reference to the Bus. When a device
// changes its own address decoding (a bank switch) it says so in the return
// value of the write that caused it.
//
// # Direct access
//
// The Bus keeps a cache of direct access slices, one per 256 byte line of the
// address space, filled on demand from devices that implement the
// bus.DirectAccessor interface. Reads and writes that hit the cache do not
// call the device at all.
//
// Every bank change, whether caused by the primary slot register or by a
// device, increments the bank generation and empties the cache in the same
// call. Callers outside of the Bus that want direct access use the Direct()
// function, which returns a bus.Direct token stamped with the current
// generation. The token will refuse to be used after the next bank change.
//
// # Address decoding
//
// The address space is divided into four pages, each served by one of four
// primary slots according to the primary slot register at port 0xa8. Within
// a slot devices can be mapped on any 256 byte boundary but two devices in
// the same slot can never overlap. An address with no device in the selected
// slot reads as bus.UnmappedValue and ignores writes. The same is true of IO
// ports.
package memory
