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

package memory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophermsx/hardware/memory/memorymap"
	"github.com/jetsetilly/gophermsx/logger"
)

// Handle identifies a registration with the Bus.
type Handle int

// NoHandle indicates the absence of a registration.
const NoHandle Handle = -1

// List of configuration errors. Errors returned by registration functions
// wrap one of these.
var (
	ErrSealed        = errors.New("bus is sealed")
	ErrBadRange      = errors.New("bad address range")
	ErrOverlap       = errors.New("address range overlaps")
	ErrPortInUse     = errors.New("port already in use")
	ErrUnknownHandle = errors.New("unknown handle")
)

// a single registration in the arena. a device that is both memory mapped and
// attached to IO ports has two registrations
type registration struct {
	label string
	kind  bus.Kind

	// memory mapped device
	dev    bus.Device
	direct bus.DirectAccessor
	banked mapper.Banked
	slot   int
	origin uint16
	memtop uint16

	// IO device
	io    bus.IODevice
	first uint8
	last  uint8

	removed bool
}

func (r registration) String() string {
	if r.io != nil {
		return fmt.Sprintf("%s: ports %#02x-%#02x", r.label, r.first, r.last)
	}
	return fmt.Sprintf("%s: slot %d %#04x-%#04x (%s)", r.label, r.slot, r.origin, r.memtop, r.kind)
}

// state of a cache line
type cacheState uint8

const (
	cacheUnknown cacheState = iota
	cacheDirect
	cacheNone
)

// Bus dispatches memory and IO accesses to registered devices.
type Bus struct {
	env *environment.Environment

	arena []registration

	// the device handle for every line in every slot
	lines [memorymap.NumSlots][bus.NumLines]Handle

	// the device handle for every IO port
	ports [256]Handle

	// primary slot register
	primary uint8

	// incremented on every bank change
	generation uint64

	// direct access cache for the currently selected slots
	readState  [bus.NumLines]cacheState
	readLines  [bus.NumLines][]uint8
	writeState [bus.NumLines]cacheState
	writeLines [bus.NumLines][]uint8

	sealed bool
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(env *environment.Environment) *Bus {
	b := &Bus{
		env: env,
	}
	for s := range b.lines {
		for l := range b.lines[s] {
			b.lines[s][l] = NoHandle
		}
	}
	for p := range b.ports {
		b.ports[p] = NoHandle
	}
	return b
}

func (b *Bus) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("primary slot register: %08b\n", b.primary))
	for h, r := range b.arena {
		if r.removed {
			continue
		}
		s.WriteString(fmt.Sprintf("%3d %s\n", h, r))
	}
	return s.String()
}

// AddDevice maps a device into a slot. The origin must be at the start of a
// line and the memtop at the end of a line.
func (b *Bus) AddDevice(slot int, origin uint16, memtop uint16, dev bus.Device) (Handle, error) {
	if b.sealed {
		return NoHandle, fmt.Errorf("memory: %w: cannot add %s", ErrSealed, dev.Label())
	}
	if slot < 0 || slot >= memorymap.NumSlots {
		return NoHandle, fmt.Errorf("memory: %w: slot %d does not exist", ErrBadRange, slot)
	}
	if origin&bus.LineMask != 0 || memtop&bus.LineMask != bus.LineMask || memtop < origin {
		return NoHandle, fmt.Errorf("memory: %w: %#04x-%#04x for %s", ErrBadRange, origin, memtop, dev.Label())
	}

	first := origin >> bus.LineBits
	last := memtop >> bus.LineBits
	for l := first; l <= last; l++ {
		if h := b.lines[slot][l]; h != NoHandle {
			return NoHandle, fmt.Errorf("memory: %w: %s and %s in slot %d at %#04x",
				ErrOverlap, dev.Label(), b.arena[h].label, slot, l<<bus.LineBits)
		}
	}

	r := registration{
		label:  dev.Label(),
		kind:   dev.Kind(),
		dev:    dev,
		slot:   slot,
		origin: origin,
		memtop: memtop,
	}
	if d, ok := dev.(bus.DirectAccessor); ok && r.kind != bus.KindIO {
		r.direct = d
	}
	if bk, ok := dev.(mapper.Banked); ok {
		r.banked = bk
	}

	h := Handle(len(b.arena))
	b.arena = append(b.arena, r)
	for l := first; l <= last; l++ {
		b.lines[slot][l] = h
	}
	b.remap()

	logger.Logf(b.env, "memory", "%s", r)

	return h, nil
}

// AddIO attaches a device to the range of IO ports from first to last
// inclusive.
func (b *Bus) AddIO(first uint8, last uint8, dev bus.IODevice) (Handle, error) {
	if b.sealed {
		return NoHandle, fmt.Errorf("memory: %w: cannot add %s", ErrSealed, dev.Label())
	}
	if last < first {
		return NoHandle, fmt.Errorf("memory: %w: ports %#02x-%#02x for %s", ErrBadRange, first, last, dev.Label())
	}

	for p := int(first); p <= int(last); p++ {
		if uint8(p) == memorymap.PortPrimarySlot {
			return NoHandle, fmt.Errorf("memory: %w: %s cannot use primary slot register %#02x", ErrPortInUse, dev.Label(), p)
		}
		if h := b.ports[p]; h != NoHandle {
			return NoHandle, fmt.Errorf("memory: %w: %s and %s at %#02x", ErrPortInUse, dev.Label(), b.arena[h].label, p)
		}
	}

	r := registration{
		label: dev.Label(),
		kind:  bus.KindIO,
		io:    dev,
		first: first,
		last:  last,
	}

	h := Handle(len(b.arena))
	b.arena = append(b.arena, r)
	for p := int(first); p <= int(last); p++ {
		b.ports[p] = h
	}

	logger.Logf(b.env, "memory", "%s", r)

	return h, nil
}

// Remove a registration. The handle will not be reused.
func (b *Bus) Remove(h Handle) error {
	if h < 0 || int(h) >= len(b.arena) || b.arena[h].removed {
		return fmt.Errorf("memory: %w: %d", ErrUnknownHandle, h)
	}

	r := &b.arena[h]
	if r.io != nil {
		for p := int(r.first); p <= int(r.last); p++ {
			b.ports[p] = NoHandle
		}
	} else {
		for l := r.origin >> bus.LineBits; l <= r.memtop>>bus.LineBits; l++ {
			b.lines[r.slot][l] = NoHandle
		}
	}
	r.removed = true
	r.dev = nil
	r.direct = nil
	r.banked = nil
	r.io = nil

	b.remap()

	return nil
}

// Seal the bus. No further devices can be added once the bus is sealed.
func (b *Bus) Seal() {
	b.sealed = true
}

// Sealed returns true if the bus has been sealed.
func (b *Bus) Sealed() bool {
	return b.sealed
}

// Label returns the label of the device registered with the handle.
func (b *Bus) Label(h Handle) string {
	if h < 0 || int(h) >= len(b.arena) {
		return ""
	}
	return b.arena[h].label
}

// Generation returns the bank generation. The value changes every time the
// address decoding changes.
func (b *Bus) Generation() uint64 {
	return b.generation
}

// PrimarySlot returns the value of the primary slot register.
func (b *Bus) PrimarySlot() uint8 {
	return b.primary
}

// a bank change has happened
func (b *Bus) remap() {
	b.generation++
	b.readState = [bus.NumLines]cacheState{}
	b.writeState = [bus.NumLines]cacheState{}
	clear(b.readLines[:])
	clear(b.writeLines[:])
}

// the handle of the device serving the address in the currently selected slot
func (b *Bus) owner(address uint16) Handle {
	slot := memorymap.SlotForPage(b.primary, memorymap.PageOf(address))
	return b.lines[slot][address>>bus.LineBits]
}

// Owner returns the handle of the device serving the address.
func (b *Bus) Owner(address uint16) Handle {
	return b.owner(address)
}

func (b *Bus) fillRead(line uint16) {
	b.readState[line] = cacheNone
	h := b.owner(line << bus.LineBits)
	if h == NoHandle || b.arena[h].direct == nil {
		return
	}
	if data := b.arena[h].direct.ReadLine(line << bus.LineBits); len(data) == bus.LineSize {
		b.readState[line] = cacheDirect
		b.readLines[line] = data
	}
}

func (b *Bus) fillWrite(line uint16) {
	b.writeState[line] = cacheNone
	h := b.owner(line << bus.LineBits)
	if h == NoHandle || b.arena[h].direct == nil {
		return
	}
	if data := b.arena[h].direct.WriteLine(line << bus.LineBits); len(data) == bus.LineSize {
		b.writeState[line] = cacheDirect
		b.writeLines[line] = data
	}
}

// Read the value at the address at time t.
func (b *Bus) Read(address uint16, t clocks.Time) uint8 {
	line := address >> bus.LineBits
	if b.readState[line] == cacheUnknown {
		b.fillRead(line)
	}
	if b.readState[line] == cacheDirect {
		return b.readLines[line][address&bus.LineMask]
	}

	h := b.owner(address)
	if h == NoHandle {
		return bus.UnmappedValue
	}
	return b.arena[h].dev.Read(address, t)
}

// Write the value to the address at time t.
func (b *Bus) Write(address uint16, data uint8, t clocks.Time) {
	line := address >> bus.LineBits
	if b.writeState[line] == cacheUnknown {
		b.fillWrite(line)
	}
	if b.writeState[line] == cacheDirect {
		b.writeLines[line][address&bus.LineMask] = data
		return
	}

	h := b.owner(address)
	if h == NoHandle {
		return
	}
	if b.arena[h].dev.Write(address, data, t) {
		b.remap()
	}
}

// Peek returns the value at the address without side effects.
func (b *Bus) Peek(address uint16) uint8 {
	h := b.owner(address)
	if h == NoHandle {
		return bus.UnmappedValue
	}
	return b.arena[h].dev.Peek(address)
}

// ReadIO reads the value on the port at time t.
func (b *Bus) ReadIO(port uint8, t clocks.Time) uint8 {
	if port == memorymap.PortPrimarySlot {
		return b.primary
	}
	h := b.ports[port]
	if h == NoHandle {
		return bus.UnmappedValue
	}
	data, remapped := b.arena[h].io.ReadIO(port, t)
	if remapped {
		b.remap()
	}
	return data
}

// WriteIO writes the value to the port at time t.
func (b *Bus) WriteIO(port uint8, data uint8, t clocks.Time) {
	if port == memorymap.PortPrimarySlot {
		if data != b.primary {
			b.primary = data
			b.remap()
		}
		return
	}
	h := b.ports[port]
	if h == NoHandle {
		return
	}
	if b.arena[h].io.WriteIO(port, data, t) {
		b.remap()
	}
}

// PeekIO returns the value on the port without side effects.
func (b *Bus) PeekIO(port uint8) uint8 {
	if port == memorymap.PortPrimarySlot {
		return b.primary
	}
	h := b.ports[port]
	if h == NoHandle {
		return bus.UnmappedValue
	}
	return b.arena[h].io.PeekIO(port)
}

// Direct returns a read token for the line containing the address. Returns
// false if the line does not allow direct access.
func (b *Bus) Direct(address uint16) (bus.Direct, bool) {
	line := address >> bus.LineBits
	if b.readState[line] == cacheUnknown {
		b.fillRead(line)
	}
	if b.readState[line] != cacheDirect {
		return bus.Direct{}, false
	}
	return bus.NewDirect(b.generation, line<<bus.LineBits, b.readLines[line], false), true
}

// DirectWrite returns a write token for the line containing the address.
// Returns false if the line does not allow direct access.
func (b *Bus) DirectWrite(address uint16) (bus.Direct, bool) {
	line := address >> bus.LineBits
	if b.writeState[line] == cacheUnknown {
		b.fillWrite(line)
	}
	if b.writeState[line] != cacheDirect {
		return bus.Direct{}, false
	}
	return bus.NewDirect(b.generation, line<<bus.LineBits, b.writeLines[line], true), true
}

// GetBank returns the bank information for the address in the currently
// selected slot.
func (b *Bus) GetBank(address uint16) mapper.BankInfo {
	h := b.owner(address)
	if h == NoHandle {
		return mapper.BankInfo{Unmapped: true}
	}
	if b.arena[h].banked == nil {
		return mapper.BankInfo{IsRAM: b.arena[h].kind == bus.KindRAM}
	}
	return b.arena[h].banked.GetBank(address)
}

// Reset the primary slot register and every memory mapped device.
func (b *Bus) Reset(t clocks.Time) {
	b.primary = 0
	for _, r := range b.arena {
		if r.dev != nil {
			r.dev.Reset(t)
		}
	}
	b.remap()
}
