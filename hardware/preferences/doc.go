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

// Package preferences contains the preference values that control the
// emulated hardware. The render settings (frame skip bounds, accuracy and
// deinterlacing) are read by the video renderer once per frame as a snapshot
// returned by Live(). A renderer can also subscribe to changes of the frame
// skip bounds, in which case it will find a message waiting on its channel the
// next time it polls.
package preferences
