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

// PortMegaRAM is the first of the two IO ports used to change the mode of a
// MegaRAM device.
//
//	0x8e	read: enable RAM writes; write: enable bank selection
//	0x8f	ROM mode (MegaFlashROM only)
const PortMegaRAM = 0x8e

// MegaRAM is an expansion of 8k blocks of RAM mapped through four 8k windows.
// The windows are repeated in both halves of the address space, so the window
// at 0x0000 is the same as the window at 0x8000 and so on.
//
// After power-on the device is in bank select mode. In bank select mode a
// write to any address selects the block for the window containing the
// address. Reading port 0x8e switches the device to RAM write mode, in which
// writes go to the selected block. Writing port 0x8e switches back to bank
// select mode.
//
// A MegaFlashROM is a MegaRAM with a ROM that can be mapped into the range
// 0x4000 to 0xbfff by accessing port 0x8f.
type MegaRAM struct {
	mappingID string

	blockSize  int
	numBlocks  int
	maskBlocks uint8
	ram        [][]uint8
	rom        []uint8

	state *megaRAMState
}

// NewMegaRAM is the preferred method of initialisation for the MegaRAM type.
// The number of 8k blocks must be between 1 and 256.
func NewMegaRAM(numBlocks int) (*MegaRAM, error) {
	return newMegaRAM("MegaRAM", numBlocks, nil)
}

// NewMegaFlashROM creates a MegaRAM device with ROM mode. The ROM is mirrored
// in the 32k range 0x4000 to 0xbfff and so the size of the data must be a power
// of two no larger than 32k.
func NewMegaFlashROM(numBlocks int, rom []uint8) (*MegaRAM, error) {
	if !mapper.IsPowerOfTwo(len(rom)) || len(rom) < bus.LineSize || len(rom) > 0x8000 {
		return nil, fmt.Errorf("MegaFlashROM: %w: ROM of %d bytes", mapper.ErrBankCount, len(rom))
	}
	return newMegaRAM("MegaFlashROM", numBlocks, rom)
}

func newMegaRAM(id string, numBlocks int, rom []uint8) (*MegaRAM, error) {
	if numBlocks < 1 || numBlocks > 256 {
		return nil, fmt.Errorf("%s: %w: %d blocks", id, mapper.ErrBankCount, numBlocks)
	}

	cart := &MegaRAM{
		mappingID: id,
		blockSize: 0x2000,
		numBlocks: numBlocks,
		state:     newMegaRAMState(),
	}

	// the mask is the smallest power of two that covers the number of blocks.
	// block numbers that survive the mask but are beyond the number of blocks
	// read as unmapped
	m := 1
	for m < numBlocks {
		m <<= 1
	}
	cart.maskBlocks = uint8(m - 1)

	cart.ram = make([][]uint8, numBlocks)
	for i := range cart.ram {
		cart.ram[i] = make([]uint8, cart.blockSize)
	}

	if rom != nil {
		cart.rom = make([]uint8, len(rom))
		copy(cart.rom, rom)
	}

	return cart, nil
}

func (cart *MegaRAM) String() string {
	mode := "bank select"
	if cart.state.romMode {
		mode = "ROM"
	} else if cart.state.writeMode {
		mode = "RAM write"
	}
	return fmt.Sprintf("%s [%s] Blocks: %d, %d, %d, %d", cart.mappingID, mode,
		cart.state.bank[0], cart.state.bank[1], cart.state.bank[2], cart.state.bank[3])
}

// Label implements the bus.Device and bus.IODevice interfaces.
func (cart *MegaRAM) Label() string {
	return cart.mappingID
}

// Kind implements the bus.Device interface.
func (cart *MegaRAM) Kind() bus.Kind {
	return bus.KindBanked
}

// Reset implements the bus.Device interface. The contents of RAM survive a
// reset.
func (cart *MegaRAM) Reset(_ clocks.Time) {
	cart.state = newMegaRAMState()
}

// the window for the address
func window8k(address uint16) int {
	return int(address&0x7fff) >> 13
}

// the RAM block mapped at the address or nil if the block does not exist
func (cart *MegaRAM) block(address uint16) []uint8 {
	b := int(cart.state.bank[window8k(address)])
	if b >= cart.numBlocks {
		return nil
	}
	return cart.ram[b]
}

// Read implements the bus.Device interface.
func (cart *MegaRAM) Read(address uint16, _ clocks.Time) uint8 {
	return cart.Peek(address)
}

// Peek implements the bus.Device interface.
func (cart *MegaRAM) Peek(address uint16) uint8 {
	if cart.state.romMode {
		if address >= 0x4000 && address <= 0xbfff {
			return cart.rom[int(address-0x4000)%len(cart.rom)]
		}
		return bus.UnmappedValue
	}
	if blk := cart.block(address); blk != nil {
		return blk[address&0x1fff]
	}
	return bus.UnmappedValue
}

// Write implements the bus.Device interface.
func (cart *MegaRAM) Write(address uint16, data uint8, _ clocks.Time) bool {
	if cart.state.romMode {
		return false
	}

	if cart.state.writeMode {
		if blk := cart.block(address); blk != nil {
			blk[address&0x1fff] = data
		}
		return false
	}

	w := window8k(address)
	bank := data & cart.maskBlocks
	if cart.state.bank[w] == bank {
		return false
	}
	cart.state.bank[w] = bank
	return true
}

// ReadLine implements the bus.DirectAccessor interface.
func (cart *MegaRAM) ReadLine(address uint16) []uint8 {
	if cart.state.romMode {
		if address < 0x4000 || address > 0xbfff {
			return nil
		}
		offset := int(address-0x4000) % len(cart.rom)
		return cart.rom[offset : offset+bus.LineSize]
	}
	if blk := cart.block(address); blk != nil {
		offset := int(address & 0x1fff)
		return blk[offset : offset+bus.LineSize]
	}
	return nil
}

// WriteLine implements the bus.DirectAccessor interface. Direct writes are
// only possible in RAM write mode.
func (cart *MegaRAM) WriteLine(address uint16) []uint8 {
	if cart.state.romMode || !cart.state.writeMode {
		return nil
	}
	if blk := cart.block(address); blk != nil {
		offset := int(address & 0x1fff)
		return blk[offset : offset+bus.LineSize]
	}
	return nil
}

// ReadIO implements the bus.IODevice interface.
func (cart *MegaRAM) ReadIO(port uint8, _ clocks.Time) (uint8, bool) {
	switch port & 0x01 {
	case 0:
		cart.state.writeMode = true
		cart.state.romMode = false
	case 1:
		if cart.rom != nil {
			cart.state.romMode = true
		}
	}
	return bus.UnmappedValue, true
}

// WriteIO implements the bus.IODevice interface.
func (cart *MegaRAM) WriteIO(port uint8, _ uint8, _ clocks.Time) bool {
	switch port & 0x01 {
	case 0:
		cart.state.writeMode = false
		cart.state.romMode = false
	case 1:
		if cart.rom != nil {
			cart.state.romMode = true
		}
	}
	return true
}

// PeekIO implements the bus.IODevice interface.
func (cart *MegaRAM) PeekIO(_ uint8) uint8 {
	return bus.UnmappedValue
}

// NumBanks implements the mapper.Banked interface.
func (cart *MegaRAM) NumBanks() int {
	return cart.numBlocks
}

// GetBank implements the mapper.Banked interface.
func (cart *MegaRAM) GetBank(address uint16) mapper.BankInfo {
	if cart.state.romMode {
		if address < 0x4000 || address > 0xbfff {
			return mapper.BankInfo{Unmapped: true}
		}
		return mapper.BankInfo{Segment: window8k(address)}
	}
	w := window8k(address)
	b := int(cart.state.bank[w])
	return mapper.BankInfo{
		Number:   b,
		Segment:  w,
		IsRAM:    true,
		Unmapped: b >= cart.numBlocks,
	}
}

const (
	megaRAMWriteMode = 0x01
	megaRAMROMMode   = 0x02
)

// Banks implements the mapper.Banked interface. The block selectors are
// followed by a byte encoding the mode.
func (cart *MegaRAM) Banks() []uint8 {
	b := make([]uint8, 0, len(cart.state.bank)+1)
	b = append(b, cart.state.bank[:]...)
	var mode uint8
	if cart.state.writeMode {
		mode |= megaRAMWriteMode
	}
	if cart.state.romMode {
		mode |= megaRAMROMMode
	}
	return append(b, mode)
}

// RestoreBanks implements the mapper.Banked interface.
func (cart *MegaRAM) RestoreBanks(b []uint8) error {
	if err := mapper.RestoreCheck(cart.mappingID, b, len(cart.state.bank)+1); err != nil {
		return err
	}
	for i := range cart.state.bank {
		cart.state.bank[i] = b[i] & cart.maskBlocks
	}
	mode := b[len(cart.state.bank)]
	cart.state.writeMode = mode&megaRAMWriteMode == megaRAMWriteMode
	cart.state.romMode = mode&megaRAMROMMode == megaRAMROMMode && cart.rom != nil
	return nil
}

// Poke changes the value in the block mapped at the address, regardless of
// mode.
func (cart *MegaRAM) Poke(address uint16, data uint8) {
	if blk := cart.block(address); blk != nil {
		blk[address&0x1fff] = data
	}
}

type megaRAMState struct {
	bank      [4]uint8
	writeMode bool
	romMode   bool
}

func newMegaRAMState() *megaRAMState {
	return &megaRAMState{}
}

// Storage implements the bus.Persistent interface. The blocks are
// concatenated in order.
func (cart *MegaRAM) Storage() []uint8 {
	d := make([]uint8, 0, cart.numBlocks*cart.blockSize)
	for _, blk := range cart.ram {
		d = append(d, blk...)
	}
	return d
}

// RestoreStorage implements the bus.Persistent interface.
func (cart *MegaRAM) RestoreStorage(data []uint8) error {
	if len(data) != cart.numBlocks*cart.blockSize {
		return fmt.Errorf("%s: expected %d bytes of RAM, got %d", cart.mappingID, cart.numBlocks*cart.blockSize, len(data))
	}
	for i, blk := range cart.ram {
		copy(blk, data[i*cart.blockSize:])
	}
	return nil
}
