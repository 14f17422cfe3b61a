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

// Package memorymap describes the layout of the MSX address space and the IO
// ports that are fixed by the machine.
//
// The 64k address space is divided into four pages of 16k. Each page is
// served by one of four primary slots, selected by the primary slot register
// at IO port 0xa8. Two bits of the register are used for each page, with
// page 0 in the lowest two bits.
//
//	page 0  0x0000 - 0x3fff   BIOS in slot 0 on most machines
//	page 1  0x4000 - 0x7fff   cartridges
//	page 2  0x8000 - 0xbfff   cartridges / RAM
//	page 3  0xc000 - 0xffff   RAM
package memorymap
