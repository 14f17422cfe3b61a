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

// Package timing contains the display timing of the GFX9000 video processor
// for the two television specifications it supports.
//
// All horizontal measurements are in UC ticks. The UC clock of the video
// processor runs at six times the frequency of the Z80 and a single line of
// video is 1368 UC ticks long for both specifications.
package timing
