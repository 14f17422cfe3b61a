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

package memory_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/memorymap"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/test"
)

// simple IO device that remembers the last value written to any port
type latch struct {
	value  uint8
	remaps bool
}

func (l *latch) Label() string {
	return "latch"
}

func (l *latch) ReadIO(_ uint8, _ clocks.Time) (uint8, bool) {
	return l.value, false
}

func (l *latch) WriteIO(_ uint8, data uint8, _ clocks.Time) bool {
	l.value = data
	return l.remaps
}

func (l *latch) PeekIO(_ uint8) uint8 {
	return l.value
}

func newBus(t *testing.T) *memory.Bus {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)
	return memory.NewBus(env)
}

func TestUnmapped(t *testing.T) {
	mem := newBus(t)

	test.ExpectEquality(t, mem.Read(0x0000, clocks.Zero), bus.UnmappedValue)
	test.ExpectEquality(t, mem.Read(0xffff, clocks.Zero), bus.UnmappedValue)
	test.ExpectEquality(t, mem.Peek(0x8000), bus.UnmappedValue)
	test.ExpectEquality(t, mem.ReadIO(0x10, clocks.Zero), bus.UnmappedValue)
	test.ExpectEquality(t, mem.Owner(0x1234), memory.NoHandle)
	test.ExpectSuccess(t, mem.GetBank(0x1234).Unmapped)

	// writes to unmapped addresses are ignored
	mem.Write(0x1234, 0x00, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x1234, clocks.Zero), bus.UnmappedValue)

	_, ok := mem.Direct(0x1234)
	test.ExpectFailure(t, ok)
}

func TestRAM(t *testing.T) {
	mem := newBus(t)

	r, err := ram.NewRAM(nil, "RAM", 0x0000, 0x10000)
	test.DemandSuccess(t, err)
	h, err := mem.AddDevice(0, 0x0000, 0xffff, r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mem.Label(h), "RAM")

	for _, a := range []uint16{0x0000, 0x00ff, 0x4000, 0x8123, 0xffff} {
		mem.Write(a, uint8(a>>8)^0x5a, clocks.Zero)
		test.ExpectEquality(t, mem.Read(a, clocks.Zero), uint8(a>>8)^0x5a, a)
	}

	// the last write wins
	mem.Write(0x8123, 0x01, clocks.Zero)
	mem.Write(0x8123, 0x02, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x8123, clocks.Zero), uint8(0x02))
	test.ExpectEquality(t, mem.Peek(0x8123), uint8(0x02))

	// direct write tokens are seen by normal reads and vice versa
	tok, ok := mem.DirectWrite(0x8100)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, tok.Write(0x8124, 0x03, mem.Generation()))
	test.ExpectEquality(t, mem.Read(0x8124, clocks.Zero), uint8(0x03))
	test.ExpectFailure(t, tok.Write(0x8224, 0x03, mem.Generation()))

	// writes through a read token are refused
	rtok, ok := mem.Direct(0x8100)
	test.DemandSuccess(t, ok)
	test.ExpectFailure(t, rtok.Write(0x8124, 0x04, mem.Generation()))
	v, ok := rtok.Read(0x8124, mem.Generation())
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0x03))
}

func TestConfiguration(t *testing.T) {
	mem := newBus(t)

	a, err := ram.NewRAM(nil, "A", 0x4000, 0x4000)
	test.DemandSuccess(t, err)
	b, err := ram.NewRAM(nil, "B", 0x6000, 0x2000)
	test.DemandSuccess(t, err)

	_, err = mem.AddDevice(4, 0x4000, 0x7fff, a)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrBadRange))
	_, err = mem.AddDevice(0, 0x4010, 0x7fff, a)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrBadRange))
	_, err = mem.AddDevice(0, 0x4000, 0x7ffe, a)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrBadRange))

	ha, err := mem.AddDevice(0, 0x4000, 0x7fff, a)
	test.DemandSuccess(t, err)
	_, err = mem.AddDevice(0, 0x6000, 0x7fff, b)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrOverlap))

	// the same range in a different slot is fine
	_, err = mem.AddDevice(1, 0x6000, 0x7fff, b)
	test.ExpectSuccess(t, err)

	l := &latch{}
	_, err = mem.AddIO(memorymap.PortPrimarySlot, memorymap.PortPrimarySlot, l)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrPortInUse))
	_, err = mem.AddIO(0xa0, 0xaf, l)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrPortInUse))
	_, err = mem.AddIO(0x20, 0x10, l)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrBadRange))
	_, err = mem.AddIO(0x10, 0x11, l)
	test.DemandSuccess(t, err)
	_, err = mem.AddIO(0x11, 0x12, l)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrPortInUse))

	test.ExpectSuccess(t, mem.Remove(ha))
	test.ExpectSuccess(t, errors.Is(mem.Remove(ha), memory.ErrUnknownHandle))
	test.ExpectSuccess(t, errors.Is(mem.Remove(100), memory.ErrUnknownHandle))
	test.ExpectEquality(t, mem.Read(0x4000, clocks.Zero), bus.UnmappedValue)

	// removed range can be used again
	_, err = mem.AddDevice(0, 0x4000, 0x5fff, b)
	test.ExpectSuccess(t, err)

	mem.Seal()
	test.ExpectSuccess(t, mem.Sealed())
	_, err = mem.AddDevice(2, 0x0000, 0x3fff, a)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrSealed))
	_, err = mem.AddIO(0x30, 0x30, l)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrSealed))
}

func TestIO(t *testing.T) {
	mem := newBus(t)

	l := &latch{}
	_, err := mem.AddIO(0x10, 0x1f, l)
	test.DemandSuccess(t, err)

	mem.WriteIO(0x10, 0x42, clocks.Zero)
	test.ExpectEquality(t, mem.ReadIO(0x1f, clocks.Zero), uint8(0x42))
	test.ExpectEquality(t, mem.PeekIO(0x15), uint8(0x42))
	test.ExpectEquality(t, mem.ReadIO(0x20, clocks.Zero), bus.UnmappedValue)

	// IO writes only change the generation when the device says so
	gen := mem.Generation()
	mem.WriteIO(0x10, 0x43, clocks.Zero)
	test.ExpectEquality(t, mem.Generation(), gen)
	l.remaps = true
	mem.WriteIO(0x10, 0x44, clocks.Zero)
	test.ExpectInequality(t, mem.Generation(), gen)
}

func TestSlotSwitching(t *testing.T) {
	mem := newBus(t)

	rom := make([]uint8, 0x4000)
	for i := range rom {
		rom[i] = 0xaa
	}
	r0, err := ram.NewROM("ROM", 0x0000, rom)
	test.DemandSuccess(t, err)
	r3, err := ram.NewRAM(nil, "RAM", 0x0000, 0x10000)
	test.DemandSuccess(t, err)

	_, err = mem.AddDevice(0, 0x0000, 0x3fff, r0)
	test.DemandSuccess(t, err)
	_, err = mem.AddDevice(3, 0x0000, 0xffff, r3)
	test.DemandSuccess(t, err)
	mem.Seal()

	// slot 0 in every page after reset
	mem.Reset(clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x0000, clocks.Zero), uint8(0xaa))
	test.ExpectEquality(t, mem.Read(0x4000, clocks.Zero), bus.UnmappedValue)

	// slot 3 in page 1
	reg := memorymap.SetSlotForPage(0, memorymap.PageOf(0x4000), 3)
	mem.WriteIO(memorymap.PortPrimarySlot, reg, clocks.Zero)
	test.ExpectEquality(t, mem.ReadIO(memorymap.PortPrimarySlot, clocks.Zero), reg)
	test.ExpectEquality(t, mem.PrimarySlot(), reg)

	mem.Write(0x4000, 0x11, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x4000, clocks.Zero), uint8(0x11))

	// writes to the ROM in page 0 are ignored
	mem.Write(0x0000, 0x11, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x0000, clocks.Zero), uint8(0xaa))

	// slot 3 in all pages
	mem.WriteIO(memorymap.PortPrimarySlot, 0xff, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x0000, clocks.Zero), uint8(0x00))
	test.ExpectEquality(t, mem.Read(0x4000, clocks.Zero), uint8(0x11))

	// writing the same value is not a bank change
	gen := mem.Generation()
	mem.WriteIO(memorymap.PortPrimarySlot, 0xff, clocks.Zero)
	test.ExpectEquality(t, mem.Generation(), gen)
}

func TestDirectInvalidation(t *testing.T) {
	mem := newBus(t)

	rom := make([]uint8, 0x4000)
	for i := range rom {
		rom[i] = 0xaa
	}
	r0, err := ram.NewROM("ROM", 0x0000, rom)
	test.DemandSuccess(t, err)
	r1, err := ram.NewRAM(nil, "RAM", 0x0000, 0x4000)
	test.DemandSuccess(t, err)

	_, err = mem.AddDevice(0, 0x0000, 0x3fff, r0)
	test.DemandSuccess(t, err)
	_, err = mem.AddDevice(1, 0x0000, 0x3fff, r1)
	test.DemandSuccess(t, err)
	mem.Seal()

	tok, ok := mem.Direct(0x0100)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, tok.Valid(mem.Generation()))
	test.ExpectSuccess(t, tok.Contains(0x01ff))
	test.ExpectFailure(t, tok.Contains(0x0200))

	// ROM lines are never writable directly
	_, ok = mem.DirectWrite(0x0100)
	test.ExpectFailure(t, ok)

	// switch to the RAM
	mem.WriteIO(memorymap.PortPrimarySlot, 0x01, clocks.Zero)

	// the token issued before the switch is refused
	test.ExpectFailure(t, tok.Valid(mem.Generation()))
	_, ok = tok.Read(0x0100, mem.Generation())
	test.ExpectFailure(t, ok)

	// and a new token refers to the new device
	wtok, ok := mem.DirectWrite(0x0100)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, wtok.Write(0x0100, 0x55, mem.Generation()))
	test.ExpectEquality(t, mem.Read(0x0100, clocks.Zero), uint8(0x55))

	// the ROM was not altered through the write token
	mem.WriteIO(memorymap.PortPrimarySlot, 0x00, clocks.Zero)
	test.ExpectEquality(t, mem.Read(0x0100, clocks.Zero), uint8(0xaa))
	test.ExpectFailure(t, wtok.Write(0x0100, 0x66, mem.Generation()))
	test.ExpectEquality(t, mem.Read(0x0100, clocks.Zero), uint8(0xaa))

	rtok, ok := mem.Direct(0x0100)
	test.DemandSuccess(t, ok)
	v, ok := rtok.Read(0x0100, mem.Generation())
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0xaa))
}

func TestSnapshot(t *testing.T) {
	mem := newBus(t)

	r, err := ram.NewRAM(nil, "RAM", 0x0000, 0x4000)
	test.DemandSuccess(t, err)
	_, err = mem.AddDevice(2, 0x8000, 0xbfff, r)
	test.DemandSuccess(t, err)
	mem.Seal()

	reg := memorymap.SetSlotForPage(0, memorymap.PageOf(0x8000), 2)
	mem.WriteIO(memorymap.PortPrimarySlot, reg, clocks.Zero)
	s := mem.Snapshot()
	test.ExpectEquality(t, s.Primary, reg)

	// RAM has no bank selector bytes but does have storage
	test.ExpectEquality(t, len(s.Banks), 0)
	test.ExpectEquality(t, len(s.Storage), 1)

	mem.WriteIO(memorymap.PortPrimarySlot, 0x00, clocks.Zero)
	test.ExpectEquality(t, mem.Owner(0x8000), memory.NoHandle)
	r.Poke(0x8000, 0x55)

	gen := mem.Generation()
	test.DemandSuccess(t, mem.Plumb(s))
	test.ExpectInequality(t, mem.Generation(), gen)
	test.ExpectEquality(t, mem.PrimarySlot(), reg)
	test.ExpectInequality(t, mem.Owner(0x8000), memory.NoHandle)
	test.ExpectEquality(t, mem.Read(0x8000, clocks.Zero), uint8(0x00))

	// bank bytes for a handle that has no banks
	s.Banks[0] = []uint8{0}
	test.ExpectSuccess(t, errors.Is(mem.Plumb(s), memory.ErrUnknownHandle))
}

func TestPlumbRejected(t *testing.T) {
	mem := newBus(t)

	r, err := ram.NewRAM(nil, "RAM", 0x0000, 0x4000)
	test.DemandSuccess(t, err)
	h, err := mem.AddDevice(0, 0x0000, 0x3fff, r)
	test.DemandSuccess(t, err)
	mem.Seal()

	mem.Write(0x0000, 0x01, clocks.Zero)
	s := mem.Snapshot()

	mem.Write(0x0000, 0x02, clocks.Zero)
	reg := memorymap.SetSlotForPage(0, memorymap.PageOf(0x8000), 2)
	mem.WriteIO(memorymap.PortPrimarySlot, reg, clocks.Zero)
	gen := mem.Generation()

	// a storage entry of the wrong size is rejected before anything is
	// restored
	s.Storage[h] = s.Storage[h][:0x100]
	test.ExpectFailure(t, mem.Plumb(s))
	test.ExpectEquality(t, mem.PrimarySlot(), reg)
	test.ExpectEquality(t, mem.Generation(), gen)
	test.ExpectEquality(t, r.Peek(0x0000), uint8(0x02))

	// a valid storage entry alongside an invalid bank entry is not applied
	s.Storage[h] = make([]uint8, 0x4000)
	s.Banks[h] = []uint8{0}
	test.ExpectSuccess(t, errors.Is(mem.Plumb(s), memory.ErrUnknownHandle))
	test.ExpectEquality(t, mem.PrimarySlot(), reg)
	test.ExpectEquality(t, r.Peek(0x0000), uint8(0x02))

	// storage for a handle that was never registered
	delete(s.Banks, h)
	s.Storage[h+1] = []uint8{0}
	test.ExpectSuccess(t, errors.Is(mem.Plumb(s), memory.ErrUnknownHandle))
	test.ExpectEquality(t, r.Peek(0x0000), uint8(0x02))
}
