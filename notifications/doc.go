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

// Package notifications allow communication from the emulated hardware to
// whatever is hosting the emulation. The most important notification is the
// FinishFrame event, sent by the video renderer at the end of every frame,
// whether or not the frame was drawn.
//
// A Distributor can be used when more than one party is interested in the
// notifications of a single machine.
package notifications
