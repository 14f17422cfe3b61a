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

package memorymap

import "fmt"

// Page is one of the four 16k pages of the address space.
type Page int

// number of pages and slots.
const (
	NumPages = 4
	NumSlots = 4
	PageSize = 0x4000
	PageBits = 14
)

// The origin and memory top for each page.
const (
	OriginPage0 = uint16(0x0000)
	MemtopPage0 = uint16(0x3fff)
	OriginPage1 = uint16(0x4000)
	MemtopPage1 = uint16(0x7fff)
	OriginPage2 = uint16(0x8000)
	MemtopPage2 = uint16(0xbfff)
	OriginPage3 = uint16(0xc000)
	MemtopPage3 = uint16(0xffff)
)

// IO ports that are fixed by the machine.
const (
	PortPrimarySlot = uint8(0xa8)

	// first port of the GFX9000 video processor
	PortVDP = uint8(0x60)

	// number of ports used by the video processor
	NumPortsVDP = 0x10
)

// PageOf returns the page of the address.
func PageOf(address uint16) Page {
	return Page(address >> PageBits)
}

// Origin returns the first address of the page.
func (p Page) Origin() uint16 {
	return uint16(p) << PageBits
}

// Memtop returns the last address of the page.
func (p Page) Memtop() uint16 {
	return p.Origin() + PageSize - 1
}

func (p Page) String() string {
	return fmt.Sprintf("page %d", int(p))
}

// SlotForPage extracts the slot number for the page from the value of the
// primary slot register.
func SlotForPage(register uint8, p Page) int {
	return int(register>>(uint(p)*2)) & 0x03
}

// SetSlotForPage returns the value of the primary slot register with the
// slot for the page changed.
func SetSlotForPage(register uint8, p Page, slot int) uint8 {
	shift := uint(p) * 2
	return register&^(0x03<<shift) | uint8(slot&0x03)<<shift
}
