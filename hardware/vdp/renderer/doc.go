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

// Package renderer implements the incremental rasterization of the GFX9000
// video output. The renderer does not run alongside the CPU. Instead, it is
// asked to catch up to a point in virtual time whenever the video state is
// about to change, and at the end of every frame.
//
// The area of the screen between the last point rendered and the new point is
// divided into rectangles of border and display. The rectangles are sent to a
// Rasterizer, which is responsible for the actual pixels.
//
// Once per frame the renderer decides whether the frame should be drawn at
// all. The decision is made by the frameskip package. A frame that is not
// drawn costs nothing other than the decision.
//
// The renderer is not safe for concurrent use. It must only be used by the
// goroutine that runs the emulation.
package renderer
