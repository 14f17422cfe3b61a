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

// IO ports used by the Keyboard Master speech chip (VLM5030).
const (
	PortKeyboardMasterData    = 0x00
	PortKeyboardMasterControl = 0x20
)

// Keyboard Master control bits.
const (
	KeyboardMasterReset = 0x01
	KeyboardMasterStart = 0x02
)

// KeyboardMasterBSY is the value read from the data port while the speech
// chip is busy.
const KeyboardMasterBSY = 0x10

// the length of a phrase is derived from the data latch at the moment of the
// START edge. the speech itself is not synthesised. 10ms per unit
const keyboardMasterPhrase = clocks.Duration(clocks.MainFrequency / 100)

// KeyboardMaster is a cartridge with a 16k ROM in page 1 and a VLM5030 speech
// chip attached to IO ports 0x00 and 0x20.
//
// Writing the data port sets the speech data latch. Reading the data port
// returns the BSY flag. Writing the control port sets the control latch and a
// rising START bit begins a busy period. Reading the control port always
// returns 0xff.
type KeyboardMaster struct {
	mappingID string
	rom       [0x4000]uint8

	data      uint8
	control   uint8
	busyUntil clocks.Time

	// time of the most recent IO access. used by PeekIO()
	lastAccess clocks.Time
}

// NewKeyboardMaster is the preferred method of initialisation for the
// KeyboardMaster type. The data must be exactly 16k.
func NewKeyboardMaster(data []uint8) (*KeyboardMaster, error) {
	cart := &KeyboardMaster{
		mappingID: "KeyboardMaster",
	}
	if len(data) != len(cart.rom) {
		return nil, fmt.Errorf("%s: wrong number of bytes in the cartridge data (%d)", cart.mappingID, len(data))
	}
	copy(cart.rom[:], data)
	return cart, nil
}

func (cart *KeyboardMaster) String() string {
	return fmt.Sprintf("%s data: %#02x control: %#02x busy until: %d", cart.mappingID, cart.data, cart.control, cart.busyUntil)
}

// Label implements the bus.Device and bus.IODevice interfaces.
func (cart *KeyboardMaster) Label() string {
	return cart.mappingID
}

// Kind implements the bus.Device interface.
func (cart *KeyboardMaster) Kind() bus.Kind {
	return bus.KindROM
}

// Reset implements the bus.Device interface.
func (cart *KeyboardMaster) Reset(_ clocks.Time) {
	cart.data = 0
	cart.control = 0
	cart.busyUntil = clocks.Zero
	cart.lastAccess = clocks.Zero
}

// Read implements the bus.Device interface.
func (cart *KeyboardMaster) Read(address uint16, _ clocks.Time) uint8 {
	return cart.Peek(address)
}

// Peek implements the bus.Device interface.
func (cart *KeyboardMaster) Peek(address uint16) uint8 {
	if address >= 0x4000 && address < 0x8000 {
		return cart.rom[address&0x3fff]
	}
	return bus.UnmappedValue
}

// Write implements the bus.Device interface.
func (cart *KeyboardMaster) Write(_ uint16, _ uint8, _ clocks.Time) bool {
	return false
}

// ReadLine implements the bus.DirectAccessor interface.
func (cart *KeyboardMaster) ReadLine(address uint16) []uint8 {
	if address >= 0x4000 && address < 0x8000 {
		offset := address & 0x3fff
		return cart.rom[offset : offset+bus.LineSize]
	}
	return nil
}

// WriteLine implements the bus.DirectAccessor interface.
func (cart *KeyboardMaster) WriteLine(_ uint16) []uint8 {
	return nil
}

// Busy returns true if the speech chip is busy at time t.
func (cart *KeyboardMaster) Busy(t clocks.Time) bool {
	return t.Before(cart.busyUntil)
}

// ReadIO implements the bus.IODevice interface.
func (cart *KeyboardMaster) ReadIO(port uint8, t clocks.Time) (uint8, bool) {
	cart.lastAccess = t
	if port == PortKeyboardMasterData {
		if cart.Busy(t) {
			return KeyboardMasterBSY, false
		}
		return 0x00, false
	}
	return bus.UnmappedValue, false
}

// WriteIO implements the bus.IODevice interface.
func (cart *KeyboardMaster) WriteIO(port uint8, data uint8, t clocks.Time) bool {
	cart.lastAccess = t
	switch port {
	case PortKeyboardMasterData:
		cart.data = data
	case PortKeyboardMasterControl:
		prev := cart.control
		cart.control = data
		if data&KeyboardMasterReset == KeyboardMasterReset {
			cart.busyUntil = clocks.Zero
		} else if prev&KeyboardMasterStart == 0 && data&KeyboardMasterStart == KeyboardMasterStart {
			cart.busyUntil = t.Add(clocks.Duration(int(cart.data)+1) * keyboardMasterPhrase)
		}
	}
	return false
}

// PeekIO implements the bus.IODevice interface. The BSY flag is reported as
// it was at the time of the most recent IO access.
func (cart *KeyboardMaster) PeekIO(port uint8) uint8 {
	if port == PortKeyboardMasterData {
		if cart.Busy(cart.lastAccess) {
			return KeyboardMasterBSY
		}
		return 0x00
	}
	return bus.UnmappedValue
}
