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

package mapper

import (
	"errors"
	"fmt"
)

// Banked is implemented by devices that have internal bank selection state.
// The bank selectors are the bytes that must be persisted for the device to
// be restored to the same address decoding.
type Banked interface {
	// the number of banks (or blocks) available to the device
	NumBanks() int

	// the bank mapped at the address
	GetBank(address uint16) BankInfo

	// copy of the bank selector bytes
	Banks() []uint8

	// restore bank selector bytes previously returned by Banks()
	RestoreBanks(b []uint8) error
}

// BankInfo is used to identify the bank mapped at an address.
type BankInfo struct {
	Number  int
	Segment int

	// bank is writable
	IsRAM bool

	// no bank is mapped at the address
	Unmapped bool
}

func (b BankInfo) String() string {
	if b.Unmapped {
		return "-"
	}
	if b.IsRAM {
		return fmt.Sprintf("%dR", b.Number)
	}
	return fmt.Sprintf("%d", b.Number)
}

// ErrBankCount is returned when the number of banks is not supported by a
// mapper.
var ErrBankCount = errors.New("invalid number of banks")

// IsPowerOfTwo returns true if n is a power of two. Mappers that mask the bank
// number with NumBanks()-1 require a power of two number of banks.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Blocks divides data into blocks of the specified size. The number of blocks
// must be a power of two so that out of range bank numbers can be masked. The
// data is copied.
func Blocks(data []uint8, size int) ([][]uint8, error) {
	if size <= 0 || len(data) == 0 || len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrBankCount, len(data), size)
	}

	n := len(data) / size
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d blocks of %d bytes", ErrBankCount, n, size)
	}

	blocks := make([][]uint8, n)
	for b := range blocks {
		blocks[b] = make([]uint8, size)
		copy(blocks[b], data[b*size:])
	}

	return blocks, nil
}

// RestoreCheck is a helper for implementations of RestoreBanks(). It checks
// that the number of selector bytes is as expected.
func RestoreCheck(id string, b []uint8, expected int) error {
	if len(b) != expected {
		return fmt.Errorf("%s: expected %d bank bytes, got %d", id, expected, len(b))
	}
	return nil
}
