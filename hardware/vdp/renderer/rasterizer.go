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

package renderer

import (
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
)

// Rasterizer is the pixel sink used by the renderer. All coordinates are in UC
// ticks horizontally and in lines vertically, relative to the start of the
// frame. Rectangles are half open: toX and toY are not included.
type Rasterizer interface {
	// the rasterizer is producing output. if it is not active every frame is
	// skipped
	IsActive() bool

	// output is being recorded. recordings never skip frames
	IsRecording() bool

	Reset()
	FrameStart()

	// the frame is complete. the cost of this function is measured and used
	// to predict whether there is time to draw the next frame
	FrameEnd(t clocks.Time)

	SetDisplayMode(m mode.DisplayMode)
	SetColorMode(m mode.ColorMode)
	SetPalette(index int, r, g, b uint8)

	DrawBorder(fromX, fromY, toX, toY int)

	// draw part of the display area. displayX and displayY are the position
	// relative to the top-left of the display area. displayYA and displayYB
	// take into account the vertical scroll offset latched for layers A and B
	DrawDisplay(fromX, fromY, displayX, displayY, displayYA, displayYB, width, height int)
}

// VDP is the video processor state read by the renderer.
type VDP interface {
	IsDisplayEnabled() bool
	DisplayMode() mode.DisplayMode
	ColorMode() mode.ColorMode
	IsInterlaced() bool
	EvenOdd() bool
	IsEvenOddEnabled() bool
	IsPalTiming() bool
	HorizontalTiming() timing.Zones
	VerticalTiming() timing.Zones

	// the 5 bit red, green and blue components of a palette entry
	Palette(index int) (uint8, uint8, uint8)

	// the number of UC ticks between the start of the current frame and t
	UCTicksThisFrame(t clocks.Time) int
}

// Zone is the kind of a rectangle produced by subdivision.
type Zone int

// List of valid Zone values.
const (
	ZoneBorder Zone = iota
	ZoneDisplay
)

func (z Zone) String() string {
	switch z {
	case ZoneBorder:
		return "border"
	case ZoneDisplay:
		return "display"
	}
	return "unknown"
}

// Subdivide the span from (fromX, fromY) up to but not including (toX, toY)
// into rectangles clipped to the columns clipL to clipR. The span is in raster
// order and so it covers the end of the first line, every line in between and
// the start of the last line.
//
// At most three rectangles are emitted: a partial first line, a block of full
// lines and a partial last line.
func Subdivide(fromX, fromY, toX, toY, clipL, clipR int, zone Zone, emit func(zone Zone, fromX, fromY, toX, toY int)) {
	// partial first line
	if fromX > clipL {
		if fromX < clipR {
			atEnd := fromY != toY || toX >= clipR
			if atEnd {
				emit(zone, fromX, fromY, clipR, fromY+1)
			} else if toX > fromX {
				emit(zone, fromX, fromY, toX, fromY+1)
			}
		}
		if fromY == toY {
			return
		}
		fromY++
	}

	drawLast := false
	if toX >= clipR {
		toY++
	} else if toX > clipL {
		drawLast = true
	}

	// full middle lines
	if fromY < toY {
		emit(zone, clipL, fromY, clipR, toY)
	}

	// partial last line
	if drawLast {
		emit(zone, clipL, toY, toX, toY+1)
	}
}
