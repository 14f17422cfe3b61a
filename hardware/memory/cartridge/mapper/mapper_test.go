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

package mapper_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophermsx/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophermsx/test"
)

func TestBlocks(t *testing.T) {
	data := make([]uint8, 0x8000)
	for i := range data {
		data[i] = uint8(i >> 13)
	}

	blocks, err := mapper.Blocks(data, 0x2000)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(blocks), 4)
	for b := range blocks {
		test.ExpectEquality(t, blocks[b][0], uint8(b))
		test.ExpectEquality(t, blocks[b][0x1fff], uint8(b))
	}

	// three blocks is not a power of two
	_, err = mapper.Blocks(data[:0x6000], 0x2000)
	test.ExpectSuccess(t, errors.Is(err, mapper.ErrBankCount))

	// not a multiple of the block size
	_, err = mapper.Blocks(data[:0x2001], 0x2000)
	test.ExpectSuccess(t, errors.Is(err, mapper.ErrBankCount))

	_, err = mapper.Blocks(nil, 0x2000)
	test.ExpectFailure(t, err)
}

func TestBankInfo(t *testing.T) {
	test.ExpectEquality(t, mapper.BankInfo{Number: 3}.String(), "3")
	test.ExpectEquality(t, mapper.BankInfo{Number: 3, IsRAM: true}.String(), "3R")
	test.ExpectEquality(t, mapper.BankInfo{Unmapped: true}.String(), "-")
}
