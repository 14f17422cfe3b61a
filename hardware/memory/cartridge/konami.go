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
	"github.com/jetsetilly/gophermsx/hardware/memory/cartridge/mapper"
)

// Konami cartridges with the SCC sound chip use four 8k windows in the range
// 0x4000 to 0xbfff. The bank for each window is selected by writing to an
// address in the range 0x?000 to 0x?7ff in the upper half of the window:
//
//	0x5000 - 0x57ff		window 0 (0x4000 - 0x5fff)
//	0x7000 - 0x77ff		window 1 (0x6000 - 0x7fff)
//	0x9000 - 0x97ff		window 2 (0x8000 - 0x9fff)
//	0xb000 - 0xb7ff		window 3 (0xa000 - 0xbfff)
//
// The SCC itself is not emulated.
type Konami struct {
	mappingID   string
	description string

	bankSize int
	banks    [][]uint8

	state *konamiState
}

const (
	konamiOrigin  = 0x4000
	konamiMemtop  = 0xbfff
	konamiWindows = 4
)

// NewKonami is the preferred method of initialisation for the Konami type.
// The size of the data must be a power of two number of 8k banks.
func NewKonami(data []uint8) (*Konami, error) {
	cart := &Konami{
		mappingID:   "KonamiSCC",
		description: "konami scc",
		bankSize:    0x2000,
		state:       newKonamiState(),
	}

	var err error
	cart.banks, err = mapper.Blocks(data, cart.bankSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cart.mappingID, err)
	}
	if len(cart.banks) > 256 {
		return nil, fmt.Errorf("%s: %w: %d", cart.mappingID, mapper.ErrBankCount, len(cart.banks))
	}

	cart.Reset(clocks.Zero)

	return cart, nil
}

func (cart *Konami) String() string {
	return fmt.Sprintf("%s [%s] Banks: %d, %d, %d, %d", cart.mappingID, cart.description,
		cart.state.segment[0], cart.state.segment[1], cart.state.segment[2], cart.state.segment[3])
}

// Label implements the bus.Device interface.
func (cart *Konami) Label() string {
	return cart.mappingID
}

// Kind implements the bus.Device interface.
func (cart *Konami) Kind() bus.Kind {
	return bus.KindBanked
}

// Reset implements the bus.Device interface.
func (cart *Konami) Reset(_ clocks.Time) {
	for i := range cart.state.segment {
		cart.state.segment[i] = uint8(i & (cart.NumBanks() - 1))
	}
}

// the window for the address. returns false if the address is outside of the
// range of the cartridge
func (cart *Konami) window(address uint16) (int, bool) {
	if address < konamiOrigin || address > konamiMemtop {
		return 0, false
	}
	return int(address-konamiOrigin) >> 13, true
}

// Read implements the bus.Device interface.
func (cart *Konami) Read(address uint16, _ clocks.Time) uint8 {
	return cart.Peek(address)
}

// Peek implements the bus.Device interface.
func (cart *Konami) Peek(address uint16) uint8 {
	w, ok := cart.window(address)
	if !ok {
		return bus.UnmappedValue
	}
	return cart.banks[cart.state.segment[w]][address&0x1fff]
}

// Write implements the bus.Device interface.
func (cart *Konami) Write(address uint16, data uint8, _ clocks.Time) bool {
	w, ok := cart.window(address)
	if !ok {
		return false
	}

	// bank select is in the first 2k of the upper half of each window
	if address&0x1800 != 0x1000 {
		return false
	}

	bank := data & uint8(cart.NumBanks()-1)
	if cart.state.segment[w] == bank {
		return false
	}
	cart.state.segment[w] = bank

	return true
}

// ReadLine implements the bus.DirectAccessor interface.
func (cart *Konami) ReadLine(address uint16) []uint8 {
	w, ok := cart.window(address)
	if !ok {
		return nil
	}
	offset := int(address & 0x1fff)
	return cart.banks[cart.state.segment[w]][offset : offset+bus.LineSize]
}

// WriteLine implements the bus.DirectAccessor interface. Writes are never
// direct because they may select a bank.
func (cart *Konami) WriteLine(_ uint16) []uint8 {
	return nil
}

// NumBanks implements the mapper.Banked interface.
func (cart *Konami) NumBanks() int {
	return len(cart.banks)
}

// GetBank implements the mapper.Banked interface.
func (cart *Konami) GetBank(address uint16) mapper.BankInfo {
	w, ok := cart.window(address)
	if !ok {
		return mapper.BankInfo{Unmapped: true}
	}
	return mapper.BankInfo{Number: int(cart.state.segment[w]), Segment: w}
}

// Banks implements the mapper.Banked interface.
func (cart *Konami) Banks() []uint8 {
	return cart.state.Snapshot().segment[:]
}

// RestoreBanks implements the mapper.Banked interface.
func (cart *Konami) RestoreBanks(b []uint8) error {
	if err := mapper.RestoreCheck(cart.mappingID, b, konamiWindows); err != nil {
		return err
	}
	for i := range cart.state.segment {
		cart.state.segment[i] = b[i] & uint8(cart.NumBanks()-1)
	}
	return nil
}

// bank selection state of the Konami cartridge
type konamiState struct {
	segment [konamiWindows]uint8
}

func newKonamiState() *konamiState {
	return &konamiState{}
}

// Snapshot returns a copy of the state.
func (s *konamiState) Snapshot() *konamiState {
	n := *s
	return &n
}
