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

package cartridge_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/cartridge"
	"github.com/jetsetilly/gophermsx/hardware/memory/memorymap"
	"github.com/jetsetilly/gophermsx/test"
)

// a ROM where every byte of a bank contains the bank number
func bankedData(numBanks int) []uint8 {
	data := make([]uint8, numBanks*0x2000)
	for i := range data {
		data[i] = uint8(i / 0x2000)
	}
	return data
}

func TestKonami(t *testing.T) {
	_, err := cartridge.NewKonami(make([]uint8, 0x2000*3))
	test.ExpectFailure(t, err)
	_, err = cartridge.NewKonami(make([]uint8, 0x1000))
	test.ExpectFailure(t, err)

	cart, err := cartridge.NewKonami(bankedData(8))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cart.NumBanks(), 8)
	test.ExpectEquality(t, cart.Kind(), bus.KindBanked)

	// power-on banks
	test.ExpectEquality(t, cart.Peek(0x4000), uint8(0))
	test.ExpectEquality(t, cart.Peek(0x6000), uint8(1))
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(2))
	test.ExpectEquality(t, cart.Peek(0xa000), uint8(3))
	test.ExpectEquality(t, cart.Peek(0x3fff), bus.UnmappedValue)
	test.ExpectEquality(t, cart.Peek(0xc000), bus.UnmappedValue)

	// not a bank register
	test.ExpectFailure(t, cart.Write(0x4000, 5, clocks.Zero))
	test.ExpectFailure(t, cart.Write(0x5800, 5, clocks.Zero))

	// bank registers
	test.ExpectSuccess(t, cart.Write(0x5000, 5, clocks.Zero))
	test.ExpectEquality(t, cart.Peek(0x4000), uint8(5))
	test.ExpectSuccess(t, cart.Write(0xb7ff, 6, clocks.Zero))
	test.ExpectEquality(t, cart.Peek(0xbfff), uint8(6))

	// selecting the same bank is not a bank change
	test.ExpectFailure(t, cart.Write(0x5000, 5, clocks.Zero))

	// bank number is masked
	test.ExpectSuccess(t, cart.Write(0x7000, 12, clocks.Zero))
	test.ExpectEquality(t, cart.Peek(0x6000), uint8(4))
	test.ExpectEquality(t, cart.GetBank(0x6000).Number, 4)
	test.ExpectEquality(t, cart.GetBank(0x6000).Segment, 1)

	b := cart.Banks()
	test.ExpectEquality(t, len(b), 4)
	cart.Reset(clocks.Zero)
	test.ExpectEquality(t, cart.Peek(0x4000), uint8(0))
	test.DemandSuccess(t, cart.RestoreBanks(b))
	test.ExpectEquality(t, cart.Peek(0x4000), uint8(5))
	test.ExpectFailure(t, cart.RestoreBanks(b[:2]))
}

func TestBankSwitchThroughBus(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)

	mem := memory.NewBus(env)

	cart, err := cartridge.NewKonami(bankedData(4))
	test.DemandSuccess(t, err)
	_, err = mem.AddDevice(1, 0x4000, 0xbfff, cart)
	test.DemandSuccess(t, err)
	mem.Seal()

	var reg uint8
	reg = memorymap.SetSlotForPage(reg, memorymap.PageOf(0x4000), 1)
	reg = memorymap.SetSlotForPage(reg, memorymap.PageOf(0x8000), 1)
	mem.WriteIO(memorymap.PortPrimarySlot, reg, clocks.Zero)

	test.ExpectEquality(t, mem.Read(0x4010, clocks.Zero), uint8(0))

	tok, ok := mem.Direct(0x4010)
	test.DemandSuccess(t, ok)
	v, ok := tok.Read(0x4010, mem.Generation())
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0))

	// select bank 2 for window 0
	gen := mem.Generation()
	mem.Write(0x5000, 2, clocks.Zero)
	test.ExpectInequality(t, mem.Generation(), gen)

	// the token is no longer valid and the read goes to the new bank
	_, ok = tok.Read(0x4010, mem.Generation())
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, mem.Read(0x4010, clocks.Zero), uint8(2))

	tok, ok = mem.Direct(0x4010)
	test.DemandSuccess(t, ok)
	v, ok = tok.Read(0x4010, mem.Generation())
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(2))

	// bank registers are never written directly
	_, ok = mem.DirectWrite(0x5000)
	test.ExpectFailure(t, ok)

	// bank state survives a snapshot
	s := mem.Snapshot()
	mem.Write(0x5000, 3, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x4010, clocks.Zero), uint8(3))
	test.DemandSuccess(t, mem.Plumb(s))
	test.ExpectEquality(t, mem.Read(0x4010, clocks.Zero), uint8(2))
}

func TestMegaRAM(t *testing.T) {
	_, err := cartridge.NewMegaRAM(0)
	test.ExpectFailure(t, err)
	_, err = cartridge.NewMegaRAM(257)
	test.ExpectFailure(t, err)

	cart, err := cartridge.NewMegaRAM(3)
	test.DemandSuccess(t, err)

	// bank select mode after power-on. all windows select block zero
	test.ExpectEquality(t, cart.GetBank(0x2000).Number, 0)
	test.ExpectFailure(t, cart.Write(0x0000, 0, clocks.Zero))
	test.ExpectSuccess(t, cart.Write(0x2000, 1, clocks.Zero))
	test.ExpectSuccess(t, cart.Write(0x4000, 2, clocks.Zero))

	// block 3 survives the mask but does not exist
	test.ExpectSuccess(t, cart.Write(0x6000, 3, clocks.Zero))
	test.ExpectSuccess(t, cart.GetBank(0x6000).Unmapped)
	test.ExpectEquality(t, cart.Peek(0x6000), bus.UnmappedValue)

	// masked to the next power of two
	test.ExpectSuccess(t, cart.Write(0x6000, 5, clocks.Zero))
	test.ExpectEquality(t, cart.GetBank(0x6000).Number, 1)

	// reading the port enables RAM writes
	_, remapped := cart.ReadIO(cartridge.PortMegaRAM, clocks.Zero)
	test.ExpectSuccess(t, remapped)
	test.ExpectFailure(t, cart.Write(0x2010, 0x42, clocks.Zero))
	test.ExpectEquality(t, cart.Peek(0x2010), uint8(0x42))

	// windows repeat in the upper half of the address space
	test.ExpectEquality(t, cart.Peek(0xa010), uint8(0x42))

	// window 3 also selects block 1
	test.ExpectEquality(t, cart.Peek(0x6010), uint8(0x42))
	test.ExpectEquality(t, len(cart.WriteLine(0x2000)), bus.LineSize)

	// writing the port returns to bank select mode
	test.ExpectSuccess(t, cart.WriteIO(cartridge.PortMegaRAM, 0, clocks.Zero))
	test.ExpectEquality(t, len(cart.WriteLine(0x2000)), 0)
	test.ExpectSuccess(t, cart.Write(0x2010, 0, clocks.Zero))
	test.ExpectEquality(t, cart.Peek(0x2010), uint8(0x00))

	// no ROM mode on a plain MegaRAM
	cart.WriteIO(cartridge.PortMegaRAM+1, 0, clocks.Zero)
	test.ExpectEquality(t, cart.GetBank(0x2000).IsRAM, true)

	b := cart.Banks()
	test.ExpectEquality(t, len(b), 5)
	cart.Reset(clocks.Zero)
	test.DemandSuccess(t, cart.RestoreBanks(b))
	test.ExpectEquality(t, cart.Banks()[1], b[1])
}

func TestMegaFlashROM(t *testing.T) {
	rom := make([]uint8, 0x4000)
	for i := range rom {
		rom[i] = 0xa5
	}

	_, err := cartridge.NewMegaFlashROM(4, make([]uint8, 0x3000))
	test.ExpectFailure(t, err)

	cart, err := cartridge.NewMegaFlashROM(4, rom)
	test.DemandSuccess(t, err)

	cart.WriteIO(cartridge.PortMegaRAM+1, 0, clocks.Zero)
	test.ExpectEquality(t, cart.Peek(0x4000), uint8(0xa5))
	test.ExpectEquality(t, cart.Peek(0xbfff), uint8(0xa5))
	test.ExpectEquality(t, cart.Peek(0x0000), bus.UnmappedValue)

	// writes are ignored in ROM mode
	test.ExpectFailure(t, cart.Write(0x4000, 0x00, clocks.Zero))
	test.ExpectEquality(t, cart.Peek(0x4000), uint8(0xa5))
}

func TestMSXtra(t *testing.T) {
	_, err := cartridge.NewMSXtra(make([]uint8, 0x4000))
	test.ExpectFailure(t, err)

	rom := make([]uint8, 0x2000)
	rom[0x0010] = 0x10
	cart, err := cartridge.NewMSXtra(rom)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, cart.Peek(0x4010), uint8(0x10))
	test.ExpectEquality(t, cart.Peek(0x0010), bus.UnmappedValue)
	test.ExpectEquality(t, cart.Peek(0x8010), bus.UnmappedValue)

	// ROM is not writable
	cart.Write(0x4010, 0x20, clocks.Zero)
	test.ExpectEquality(t, cart.Peek(0x4010), uint8(0x10))

	// RAM is mirrored every 2k
	cart.Write(0x6010, 0x30, clocks.Zero)
	test.ExpectEquality(t, cart.Peek(0x6810), uint8(0x30))
	test.ExpectEquality(t, cart.Peek(0x7810), uint8(0x30))
	test.ExpectEquality(t, len(cart.WriteLine(0x4000)), 0)
	test.ExpectEquality(t, len(cart.WriteLine(0x7f00)), bus.LineSize)
}

func TestKeyboardMaster(t *testing.T) {
	rom := make([]uint8, 0x4000)
	rom[0] = 0x41
	cart, err := cartridge.NewKeyboardMaster(rom)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, cart.Peek(0x4000), uint8(0x41))
	test.ExpectEquality(t, cart.Peek(0x0000), bus.UnmappedValue)
	test.ExpectEquality(t, cart.Peek(0x8000), bus.UnmappedValue)

	start := clocks.Time(1000)
	v, _ := cart.ReadIO(cartridge.PortKeyboardMasterData, start)
	test.ExpectEquality(t, v, uint8(0x00))

	v, _ = cart.ReadIO(cartridge.PortKeyboardMasterControl, start)
	test.ExpectEquality(t, v, uint8(0xff))

	cart.WriteIO(cartridge.PortKeyboardMasterData, 0, start)
	cart.WriteIO(cartridge.PortKeyboardMasterControl, cartridge.KeyboardMasterStart, start)

	v, _ = cart.ReadIO(cartridge.PortKeyboardMasterData, start.Add(1))
	test.ExpectEquality(t, v, uint8(cartridge.KeyboardMasterBSY))
	test.ExpectEquality(t, cart.PeekIO(cartridge.PortKeyboardMasterData), uint8(cartridge.KeyboardMasterBSY))

	// a phrase of length zero lasts 10ms
	later := start.Add(clocks.Duration(clocks.MainFrequency / 100))
	v, _ = cart.ReadIO(cartridge.PortKeyboardMasterData, later)
	test.ExpectEquality(t, v, uint8(0x00))

	// reset ends the busy period
	cart.WriteIO(cartridge.PortKeyboardMasterControl, 0, later)
	cart.WriteIO(cartridge.PortKeyboardMasterControl, cartridge.KeyboardMasterStart, later)
	test.ExpectSuccess(t, cart.Busy(later.Add(1)))
	cart.WriteIO(cartridge.PortKeyboardMasterControl, cartridge.KeyboardMasterReset, later.Add(2))
	test.ExpectFailure(t, cart.Busy(later.Add(3)))
}

func TestPersistentStorage(t *testing.T) {
	cart, err := cartridge.NewMegaRAM(3)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, cart.Write(0x2000, 1, clocks.Zero))
	cart.ReadIO(cartridge.PortMegaRAM, clocks.Zero)
	cart.Write(0x2010, 0x42, clocks.Zero)

	var p bus.Persistent = cart
	d := p.Storage()
	test.DemandEquality(t, len(d), 3*0x2000)
	test.ExpectEquality(t, d[0x2010], uint8(0x42))

	// the copy is not shared with the device
	cart.Write(0x2010, 0x43, clocks.Zero)
	test.ExpectEquality(t, d[0x2010], uint8(0x42))

	test.DemandSuccess(t, p.RestoreStorage(d))
	test.ExpectEquality(t, cart.Peek(0x2010), uint8(0x42))
	test.ExpectFailure(t, p.RestoreStorage(d[:0x2000]))

	x, err := cartridge.NewMSXtra(make([]uint8, 0x2000))
	test.DemandSuccess(t, err)
	x.Write(0x6010, 0x30, clocks.Zero)
	p = x
	d = p.Storage()
	test.DemandEquality(t, len(d), 0x0800)
	x.Reset(clocks.Zero)
	test.ExpectEquality(t, x.Peek(0x6010), uint8(0x00))
	test.DemandSuccess(t, p.RestoreStorage(d))
	test.ExpectEquality(t, x.Peek(0x6010), uint8(0x30))
	test.ExpectFailure(t, p.RestoreStorage(nil))
}
