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

// Package realtime keeps the emulation in step with the wall clock.
//
// The RealTime type maps virtual time onto wall time using an anchor: a pair
// of virtual and wall times that are considered to be the same moment. The
// anchor is moved whenever the emulation falls too far behind, or when
// throttling is disabled, so that the emulation never tries to catch up on
// lost time.
//
// The TimeLeft() function is used by the video renderer to predict whether
// there is time to draw a frame. The Sync() function should be called by the
// owner of the emulation between frames, and never from inside the CPU loop.
package realtime
