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

// Package vdp implements the GFX9000 video display processor (a V9990). The
// processor is attached to sixteen IO ports starting at PortBase. Only the
// parts of the processor that affect the timing of the video output are
// emulated: the registers, the VRAM and palette access ports, the status port
// and the frame boundaries. The command engine and the sprite and pattern
// generators are not.
//
// Every change to the processor state that is visible in the video output
// calls the renderer before the change takes effect, so that everything up to
// the time of the change is drawn with the old state.
//
// The owner of the VDP is responsible for the frame boundaries. The time of
// the next frame boundary is returned by NextFrameTime() and the owner must
// call FrameEnd() and FrameStart() at that time:
//
//	next := vdp.NextFrameTime()
//	_ = cpu.RunUntil(next)
//	_ = vdp.FrameEnd(next)
//	vdp.FrameStart(next)
package vdp
