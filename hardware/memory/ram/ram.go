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

package ram

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// storage common to RAM and ROM
type storage struct {
	label  string
	origin uint16
	data   []uint8
}

func newStorage(label string, origin uint16, size int) (storage, error) {
	if size <= 0 || size > 0x10000 || size%bus.LineSize != 0 {
		return storage{}, fmt.Errorf("%s: size of %d bytes is not a multiple of %d", label, size, bus.LineSize)
	}
	if origin&bus.LineMask != 0 {
		return storage{}, fmt.Errorf("%s: origin %#04x is not line aligned", label, origin)
	}
	return storage{
		label:  label,
		origin: origin,
		data:   make([]uint8, size),
	}, nil
}

// index into the data for the address. storage is mirrored
func (s *storage) idx(address uint16) int {
	return int(address-s.origin) % len(s.data)
}

// Label implements the bus.Device interface.
func (s *storage) Label() string {
	return s.label
}

// Peek implements the bus.Device interface.
func (s *storage) Peek(address uint16) uint8 {
	return s.data[s.idx(address)]
}

// Read implements the bus.Device interface.
func (s *storage) Read(address uint16, _ clocks.Time) uint8 {
	return s.data[s.idx(address)]
}

// ReadLine implements the bus.DirectAccessor interface.
func (s *storage) ReadLine(address uint16) []uint8 {
	i := s.idx(address)
	return s.data[i : i+bus.LineSize]
}

// Size returns the number of bytes of storage.
func (s *storage) Size() int {
	return len(s.data)
}

// RAM is read/write storage.
type RAM struct {
	storage
	env *environment.Environment
}

// NewRAM is the preferred method of initialisation for the RAM type. The
// origin is the first address of the window the RAM will be mapped into.
func NewRAM(env *environment.Environment, label string, origin uint16, size int) (*RAM, error) {
	s, err := newStorage(label, origin, size)
	if err != nil {
		return nil, err
	}
	return &RAM{storage: s, env: env}, nil
}

// Kind implements the bus.Device interface.
func (r *RAM) Kind() bus.Kind {
	return bus.KindRAM
}

// Reset implements the bus.Device interface. The contents of RAM are zeroed or
// randomised depending on the RandomState preference.
func (r *RAM) Reset(t clocks.Time) {
	if r.env != nil && r.env.Prefs.RandomState.Get().(bool) {
		r.env.Random.Fill(r.data, t)
		return
	}
	clear(r.data)
}

// Write implements the bus.Device interface.
func (r *RAM) Write(address uint16, data uint8, _ clocks.Time) bool {
	r.data[r.idx(address)] = data
	return false
}

// WriteLine implements the bus.DirectAccessor interface.
func (r *RAM) WriteLine(address uint16) []uint8 {
	return r.ReadLine(address)
}

// Poke changes the value at the address.
func (r *RAM) Poke(address uint16, data uint8) {
	r.data[r.idx(address)] = data
}

// Storage implements the bus.Persistent interface.
func (r *RAM) Storage() []uint8 {
	d := make([]uint8, len(r.data))
	copy(d, r.data)
	return d
}

// RestoreStorage implements the bus.Persistent interface.
func (r *RAM) RestoreStorage(data []uint8) error {
	if len(data) != len(r.data) {
		return fmt.Errorf("%s: expected %d bytes of storage, got %d", r.label, len(r.data), len(data))
	}
	copy(r.data, data)
	return nil
}

// ROM is read-only storage. Writes are ignored.
type ROM struct {
	storage
}

// NewROM is the preferred method of initialisation for the ROM type. The data
// is copied.
func NewROM(label string, origin uint16, data []uint8) (*ROM, error) {
	s, err := newStorage(label, origin, len(data))
	if err != nil {
		return nil, err
	}
	copy(s.data, data)
	return &ROM{storage: s}, nil
}

// Kind implements the bus.Device interface.
func (r *ROM) Kind() bus.Kind {
	return bus.KindROM
}

// Reset implements the bus.Device interface.
func (r *ROM) Reset(_ clocks.Time) {
}

// Write implements the bus.Device interface.
func (r *ROM) Write(_ uint16, _ uint8, _ clocks.Time) bool {
	return false
}

// WriteLine implements the bus.DirectAccessor interface.
func (r *ROM) WriteLine(_ uint16) []uint8 {
	return nil
}
