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

// Package cartridge implements the devices that can be inserted into a
// cartridge slot. Each device implements the bus.Device interface and is
// mapped into the address space by the memory package.
//
// Devices with bank selection state also implement the mapper.Banked
// interface so that the selector bytes can be persisted.
//
// Currently supported devices:
//
//	Konami (SCC)		banked ROM, four 8k windows
//	MegaRAM			banked RAM, four 8k windows, IO port 0x8e
//	MegaFlashROM		MegaRAM with ROM mode
//	MSXtra			8k ROM with 2k RAM
//	Keyboard Master		16k ROM with VLM5030 speech chip on IO ports 0x00 and 0x20
//
// A change of bank is reported by the Write() and WriteIO() functions so that
// the memory system can invalidate any direct access it has granted.
package cartridge
