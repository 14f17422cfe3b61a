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

// Package bus defines the contracts between the memory system and the devices
// connected to it. For an explanation of how the contracts are used see the
// memory package documentation.
//
// Every access to a device is stamped with the virtual time at which it
// happens. Devices are free to use that time to reconstruct their own history
// (a device that is busy for a period after a command, for example).
//
// A device may offer direct access to its storage by implementing the
// DirectAccessor interface. Direct access is granted one cache line at a time
// and only for lines that have no side effects when accessed. The memory
// system wraps the storage it is given in a Direct token that records the
// bank generation at which it was issued. The token refuses to be used once the
// generation has moved on.
package bus
