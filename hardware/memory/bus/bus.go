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

package bus

import (
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// UnmappedValue is the value read from an address or port that has no device
// attached.
const UnmappedValue uint8 = 0xff

// size of a cache line. direct access is granted a line at a time and devices
// are mapped into the address space on line boundaries.
const (
	LineBits = 8
	LineSize = 1 << LineBits
	LineMask = LineSize - 1
	NumLines = 0x10000 / LineSize
)

// Kind is the category of a device. The set of kinds is closed and tells the
// memory system what it can expect of a device.
type Kind int

// List of device kinds.
const (
	// plain read/write storage. every line offers direct access and writes
	// never change the address decoding
	KindRAM Kind = iota

	// plain read-only storage. every line offers direct read access
	KindROM

	// storage arranged in banks. writes to control addresses change the
	// address decoding and direct access depends on the current banks
	KindBanked

	// device with side effects on access. never offers direct access
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindRAM:
		return "RAM"
	case KindROM:
		return "ROM"
	case KindBanked:
		return "banked"
	case KindIO:
		return "IO"
	}
	return "unknown"
}

// Device is implemented by every device that can be mapped into the 16 bit
// address space. The address argument is always the full 16 bit address and
// not an offset into the device.
type Device interface {
	// a short description of the device
	Label() string

	Kind() Kind

	// reset the device to its power-on state
	Reset(t clocks.Time)

	// read the value at the address at time t. the read may have side effects
	Read(address uint16, t clocks.Time) uint8

	// write a value to the address at time t. returns true if the write
	// changed the address decoding of the device (a bank switch). the memory
	// system uses the return value to invalidate direct access to all devices
	Write(address uint16, data uint8, t clocks.Time) bool

	// return the value at the address without side effects
	Peek(address uint16) uint8
}

// DirectAccessor is implemented by devices that allow direct access to their
// storage. The address argument is the address of the first byte of a cache
// line and the slice returned must be exactly LineSize bytes long, or nil if
// direct access is not possible for the line.
//
// A slice returned by ReadLine() must be valid until the next time the device
// reports a change in address decoding. A slice returned by WriteLine() must
// be such that writing to it has the same effect as calling Write() for every
// byte in the line.
type DirectAccessor interface {
	ReadLine(address uint16) []uint8
	WriteLine(address uint16) []uint8
}

// Persistent is implemented by devices with writable storage. The storage is
// collected by the memory snapshot alongside the bank selector bytes.
type Persistent interface {
	// copy of the writable storage
	Storage() []uint8

	// restore storage previously returned by Storage(). the length of the
	// data must match
	RestoreStorage(data []uint8) error
}

// IODevice is implemented by every device that can be attached to an IO port.
type IODevice interface {
	Label() string

	// read the value on the port at time t. the read may have side effects,
	// including a change to the address decoding of a memory device, in which
	// case the second return value is true
	ReadIO(port uint8, t clocks.Time) (uint8, bool)

	// write a value to the port at time t. returns true if the write changed
	// the address decoding of a memory device
	WriteIO(port uint8, data uint8, t clocks.Time) bool

	// return the value on the port without side effects
	PeekIO(port uint8) uint8
}
