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

package cartridge

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// MSXtra is a cartridge with 8k of ROM and 2k of RAM.
//
//	0x4000 - 0x5fff		ROM
//	0x6000 - 0x7fff		RAM (2k mirrored)
//
// Everything else is unmapped.
type MSXtra struct {
	mappingID string
	rom       [0x2000]uint8
	ram       [0x0800]uint8
}

// NewMSXtra is the preferred method of initialisation for the MSXtra type. The
// data must be exactly 8k.
func NewMSXtra(data []uint8) (*MSXtra, error) {
	cart := &MSXtra{
		mappingID: "MSXtra",
	}
	if len(data) != len(cart.rom) {
		return nil, fmt.Errorf("%s: wrong number of bytes in the cartridge data (%d)", cart.mappingID, len(data))
	}
	copy(cart.rom[:], data)
	return cart, nil
}

// Label implements the bus.Device interface.
func (cart *MSXtra) Label() string {
	return cart.mappingID
}

// Kind implements the bus.Device interface.
func (cart *MSXtra) Kind() bus.Kind {
	return bus.KindRAM
}

// Reset implements the bus.Device interface.
func (cart *MSXtra) Reset(_ clocks.Time) {
	clear(cart.ram[:])
}

// Read implements the bus.Device interface.
func (cart *MSXtra) Read(address uint16, _ clocks.Time) uint8 {
	return cart.Peek(address)
}

// Peek implements the bus.Device interface.
func (cart *MSXtra) Peek(address uint16) uint8 {
	switch {
	case address >= 0x4000 && address < 0x6000:
		return cart.rom[address&0x1fff]
	case address >= 0x6000 && address < 0x8000:
		return cart.ram[address&0x07ff]
	}
	return bus.UnmappedValue
}

// Write implements the bus.Device interface.
func (cart *MSXtra) Write(address uint16, data uint8, _ clocks.Time) bool {
	if address >= 0x6000 && address < 0x8000 {
		cart.ram[address&0x07ff] = data
	}
	return false
}

// ReadLine implements the bus.DirectAccessor interface.
func (cart *MSXtra) ReadLine(address uint16) []uint8 {
	switch {
	case address >= 0x4000 && address < 0x6000:
		offset := address & 0x1fff
		return cart.rom[offset : offset+bus.LineSize]
	case address >= 0x6000 && address < 0x8000:
		offset := address & 0x07ff
		return cart.ram[offset : offset+bus.LineSize]
	}
	return nil
}

// WriteLine implements the bus.DirectAccessor interface.
func (cart *MSXtra) WriteLine(address uint16) []uint8 {
	if address >= 0x6000 && address < 0x8000 {
		offset := address & 0x07ff
		return cart.ram[offset : offset+bus.LineSize]
	}
	return nil
}

// Storage implements the bus.Persistent interface.
func (cart *MSXtra) Storage() []uint8 {
	d := make([]uint8, len(cart.ram))
	copy(d, cart.ram[:])
	return d
}

// RestoreStorage implements the bus.Persistent interface.
func (cart *MSXtra) RestoreStorage(data []uint8) error {
	if len(data) != len(cart.ram) {
		return fmt.Errorf("%s: expected %d bytes of RAM, got %d", cart.mappingID, len(cart.ram), len(data))
	}
	copy(cart.ram[:], data)
	return nil
}
