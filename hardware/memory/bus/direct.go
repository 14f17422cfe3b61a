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

import "fmt"

// Direct is a capability token granting direct access to one cache line of
// device storage. The token is only valid while the bank generation of the
// memory system that issued it is unchanged. Every use of the token must be
// accompanied by the current generation.
//
// The zero value is a token that is never valid.
type Direct struct {
	generation uint64
	origin     uint16
	data       []uint8
	writable   bool
}

// NewDirect creates a token for the storage at origin. Only the memory system
// should create tokens.
func NewDirect(generation uint64, origin uint16, data []uint8, writable bool) Direct {
	return Direct{
		generation: generation,
		origin:     origin,
		data:       data,
		writable:   writable,
	}
}

func (d Direct) String() string {
	if d.data == nil {
		return "direct: none"
	}
	return fmt.Sprintf("direct: %#04x-%#04x gen %d", d.origin, d.origin+uint16(len(d.data)-1), d.generation)
}

// Generation returns the bank generation at which the token was issued.
func (d Direct) Generation() uint64 {
	return d.generation
}

// Origin returns the first address covered by the token.
func (d Direct) Origin() uint16 {
	return d.origin
}

// Len returns the number of bytes covered by the token.
func (d Direct) Len() int {
	return len(d.data)
}

// Writable returns true if the token grants write access.
func (d Direct) Writable() bool {
	return d.writable
}

// Valid returns true if the token can be used at the current generation.
func (d Direct) Valid(generation uint64) bool {
	return d.data != nil && d.generation == generation
}

// Contains returns true if the address is covered by the token.
func (d Direct) Contains(address uint16) bool {
	return d.data != nil && address >= d.origin && int(address-d.origin) < len(d.data)
}

// Read the value at the address. Returns false if the token is no longer
// valid or if the address is not covered by the token.
func (d Direct) Read(address uint16, generation uint64) (uint8, bool) {
	if !d.Valid(generation) || !d.Contains(address) {
		return 0, false
	}
	return d.data[address-d.origin], true
}

// Write the value to the address. Returns false if the token is no longer
// valid, is not writable or if the address is not covered by the token.
func (d Direct) Write(address uint16, data uint8, generation uint64) bool {
	if !d.writable || !d.Valid(generation) || !d.Contains(address) {
		return false
	}
	d.data[address-d.origin] = data
	return true
}
